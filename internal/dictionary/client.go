// internal/dictionary/client.go
//
// HTTP client for the external dictionary lookup service.
//
// Contract of the service: GET {base}/{lowercase word}
//   - 2xx → the word exists (Valid)
//   - 404 → the word does not exist (Invalid)
//   - anything else, transport errors, timeouts → Unverified
//
// Every call runs under its own timeout and waits on a token bucket so a burst
// of guesses cannot hammer the upstream. Concurrent lookups of the same word
// share one request that no single caller can cancel, and definite verdicts
// are cached when a Cache is set.

package dictionary

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const defaultTimeout = 3 * time.Second

// Cache stores definite verdicts. Implementations must never be handed
// Unverified.
type Cache interface {
	Get(ctx context.Context, word string) (Verdict, bool)
	Put(ctx context.Context, word string, v Verdict)
}

// Client queries the dictionary service.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	cache   Cache
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithTimeout bounds each lookup.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithLimiter throttles outbound requests.
func WithLimiter(l *rate.Limiter) Option { return func(c *Client) { c.limiter = l } }

// WithCache enables verdict caching.
func WithCache(cache Cache) Option { return func(c *Client) { c.cache = cache } }

// New builds a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup reports whether word is a dictionary entry. The query is
// case-insensitive.
func (c *Client) Lookup(ctx context.Context, word string) Verdict {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return Invalid
	}
	if c.cache != nil {
		if v, ok := c.cache.Get(ctx, w); ok {
			return v
		}
	}

	// The shared fetch ignores the cancellation of whichever caller started
	// it. Each caller stops waiting on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(w, func() (any, error) {
		v := c.fetch(shared, w)
		if c.cache != nil && v != Unverified {
			c.cache.Put(shared, w, v)
		}
		return v, nil
	})
	select {
	case res := <-ch:
		return res.Val.(Verdict)
	case <-ctx.Done():
		return Unverified
	}
}

func (c *Client) fetch(ctx context.Context, w string) Verdict {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Warn().Err(err).Str("word", w).Msg("dictionary lookup throttled")
			return Unverified
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(w), nil)
	if err != nil {
		log.Warn().Err(err).Str("word", w).Msg("build dictionary request")
		return Unverified
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("word", w).Msg("dictionary lookup failed")
		return Unverified
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Valid
	case resp.StatusCode == http.StatusNotFound:
		return Invalid
	default:
		log.Warn().Int("status", resp.StatusCode).Str("word", w).Msg("dictionary lookup unexpected status")
		return Unverified
	}
}
