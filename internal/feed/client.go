package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher defines the interface for loading the sports feed.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context) Result
	FetchStream(ctx context.Context) <-chan Result
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL  = "https://ios-kaizen.github.io"
	DefaultPath     = "/MockSports/sports.json"
	defaultPlatform = "Terminal"
	defaultVersion  = "0.1"
	defaultTimeout  = 15 * time.Second
	defaultRetries  = 3
	defaultWaitMin  = time.Second
	defaultWaitMax  = 30 * time.Second
)

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Path       string
	Timeout    time.Duration
	MaxRetries int // negative disables retries
	Platform   string
	AppVersion string
	Logger     *slog.Logger

	// RetryWaitMin is the base delay of the exponential backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client fetches the sports feed over HTTP.
type Client struct {
	baseURL   *url.URL
	path      string
	http      *http.Client
	logger    *slog.Logger
	userAgent string
	platform  string
	version   string
	sessionID string
}

// NewClient builds a Client with retrying, caching and cookie-aware transport.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retrying := retryablehttp.NewClient()
	retrying.HTTPClient = &http.Client{
		Transport: httpcache.NewMemoryCacheTransport(),
		Jar:       jar,
		Timeout:   timeout,
	}
	switch {
	case opts.MaxRetries < 0:
		retrying.RetryMax = 0
	case opts.MaxRetries == 0:
		retrying.RetryMax = defaultRetries
	default:
		retrying.RetryMax = opts.MaxRetries
	}
	retrying.RetryWaitMin = opts.RetryWaitMin
	if retrying.RetryWaitMin <= 0 {
		retrying.RetryWaitMin = defaultWaitMin
	}
	retrying.RetryWaitMax = opts.RetryWaitMax
	if retrying.RetryWaitMax <= 0 {
		retrying.RetryWaitMax = defaultWaitMax
	}
	retrying.Backoff = jitterBackoff
	retrying.CheckRetry = retryablehttp.DefaultRetryPolicy
	// Hand the last response back after the final attempt so callers see the status.
	retrying.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retrying.Logger = logger

	platform := strings.TrimSpace(opts.Platform)
	if platform == "" {
		platform = defaultPlatform
	}
	version := strings.TrimSpace(opts.AppVersion)
	if version == "" {
		version = defaultVersion
	}

	return &Client{
		baseURL:   base,
		path:      path,
		http:      retrying.StandardClient(),
		logger:    logger,
		userAgent: "matchday/" + version,
		platform:  platform,
		version:   version,
		sessionID: uuid.NewString(),
	}, nil
}

// SessionID identifies this process to the feed server.
func (c *Client) SessionID() string {
	if c == nil {
		return ""
	}
	return c.sessionID
}

// Fetch performs one logical GET of the feed. Retries happen inside the
// transport; the returned Result reflects the final outcome.
func (c *Client) Fetch(ctx context.Context) Result {
	if c == nil {
		return Failure(fmt.Errorf("client is nil"))
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: c.path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Failure(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Client-Platform", c.platform)
	req.Header.Set("X-App-Version", c.version)
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("sports feed request failed", "url", reqURL.String(), "error", err)
		return Failure(fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("sports feed response",
		"status", resp.StatusCode,
		"cached", resp.Header.Get(httpcache.XFromCache) != "")

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Error("sports feed api error", "status", resp.StatusCode)
		return Error(resp.StatusCode, "Error fetching sports data: "+statusDescription(resp))
	}

	var sports []Sport
	if err := json.NewDecoder(resp.Body).Decode(&sports); err != nil {
		c.logger.Error("sports feed decode failed", "error", err)
		return Failure(fmt.Errorf("decode response: %w", err))
	}
	for i := range sports {
		if sports[i].Events == nil {
			sports[i].Events = []Event{}
		}
	}
	c.logger.Debug("sports feed loaded", "sports", len(sports))
	return Success(Collection{Sports: sports})
}

// FetchStream emits Loading followed by exactly one terminal Result, then
// closes the channel.
func (c *Client) FetchStream(ctx context.Context) <-chan Result {
	out := make(chan Result, 2)
	go func() {
		defer close(out)
		out <- Loading()
		out <- c.Fetch(ctx)
	}()
	return out
}

// jitterBackoff doubles the wait per attempt and scales it by a random factor
// in [0.5, 1.0).
func jitterBackoff(min, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
	if attemptNum > 16 {
		attemptNum = 16
	}
	base := min * time.Duration(1<<attemptNum)
	wait := time.Duration(float64(base) * (0.5 + rand.Float64()*0.5))
	if wait > max {
		wait = max
	}
	return wait
}

func statusDescription(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	status := strings.TrimSpace(resp.Status)
	if idx := strings.IndexByte(status, ' '); idx >= 0 {
		return strings.TrimSpace(status[idx+1:])
	}
	if status == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return status
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
