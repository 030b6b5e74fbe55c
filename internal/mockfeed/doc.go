// Package mockfeed serves a sports feed file over HTTP so matchday can run
// against a local, editable copy of the feed.
//
// # Routes
//
//	GET /MockSports/sports.json   the feed file, re-read on every request
//	GET /healthz                  "OK"
//
// Adding ?fail=<status> to the feed route answers with that status instead,
// which is handy for exercising the error and retry paths of the client.
// Only 4xx and 5xx codes are accepted; anything else is a 400.
//
// A file that is missing or does not decode as a feed yields a 500, so a
// half-saved edit shows up as a server error rather than a partial list.
// With no file configured the embedded sample is served.
//
// Every response passes through chi's RequestID and Recoverer middleware,
// a request logger and a permissive CORS handler for GET, HEAD and OPTIONS.
package mockfeed
