// internal/words/provider.go
//
// Word-candidate provider: the external service that proposes target words.
//
// Contract of the service: GET {base}/word?length=5 → JSON array ["word"].
// Transport errors, timeouts, non-2xx statuses and malformed bodies are
// provider failures and come back as errors. An empty list is ErrNoCandidate.

package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNoCandidate is returned when the provider answers with an empty list.
var ErrNoCandidate = errors.New("words: provider returned no candidate")

// Provider proposes a random candidate target word.
type Provider interface {
	Candidate(ctx context.Context) (string, error)
}

// HTTPProvider talks to a random-word service:
// GET {base}/word?length=5 → ["word"].
type HTTPProvider struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewHTTPProvider builds a provider. A nil hc uses http.DefaultClient.
func NewHTTPProvider(baseURL string, timeout time.Duration, hc *http.Client) *HTTPProvider {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		timeout: timeout,
	}
}

func (p *HTTPProvider) Candidate(ctx context.Context) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/word?length=%d", p.baseURL, WordLength)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("words: provider status %d", resp.StatusCode)
	}

	var list []string
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", fmt.Errorf("words: decode provider response: %w", err)
	}
	if len(list) == 0 {
		return "", ErrNoCandidate
	}
	return list[0], nil
}
