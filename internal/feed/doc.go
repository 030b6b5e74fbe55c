// Package feed provides the HTTP client and wire types for the sports feed.
//
// # Overview
//
// The feed is a single JSON document: an array of sports, each carrying its
// scheduled events. This package fetches it and reports the outcome as a
// tagged Result instead of a bare error, so callers can tell a server answer
// apart from a transport failure.
//
// # Architecture
//
//   - client.go: Client, NewClient, Fetch, FetchStream and the transport setup
//   - result.go: Result and its kinds (Success, Error, Failure, Loading)
//   - types.go: Sport, Event, Collection and their helpers
//
// # Client Usage
//
//	client, err := feed.NewClient(feed.Options{
//		BaseURL: "https://ios-kaizen.github.io",
//		Path:    feed.DefaultPath,
//	})
//	if err != nil {
//		return fmt.Errorf("init feed client: %w", err)
//	}
//
//	res := client.Fetch(ctx)
//	if sports, ok := res.Value(); ok {
//		// use sports.Sports
//	}
//
// # Transport
//
// Requests go through go-retryablehttp, which retries transport errors, 429
// and 5xx answers with jittered exponential backoff. After the last attempt
// the final response is handed back, so a persistent 503 still ends up as a
// KindError carrying the status. Beneath the retry layer sits an in-memory
// httpcache transport that revalidates with ETag and Last-Modified. A cookie
// jar is attached to the client.
//
// Every request carries:
//
//   - Accept and Content-Type: application/json
//   - User-Agent: matchday/<version>
//   - X-Client-Platform and X-App-Version
//   - X-Session-ID: one uuid per process
//
// # Wire Format
//
// Field names are short codes:
//
//	sport: i (id), d (display name), e (events)
//	event: i (id), d (name), sh (short name), si (sport id), tt (start, unix seconds)
//
// Unknown fields are ignored and a missing e decodes to an empty slice.
//
// # Result Kinds
//
//   - KindSuccess: HTTP 200 with a decodable body
//   - KindError: any other final status, with code and message
//   - KindFailure: request or decode failure, with the cause
//   - KindLoading: only emitted first by FetchStream
package feed
