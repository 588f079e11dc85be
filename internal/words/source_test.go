package words

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robalobadob/wordle-clone/internal/dictionary"
)

type scriptedProvider struct {
	words []string
	err   error
	calls int
}

func (p *scriptedProvider) Candidate(context.Context) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	if len(p.words) == 0 {
		return "", ErrNoCandidate
	}
	w := p.words[0]
	p.words = p.words[1:]
	return w, nil
}

type verdicts map[string]dictionary.Verdict

func (v verdicts) Lookup(_ context.Context, w string) dictionary.Verdict {
	if got, ok := v[w]; ok {
		return got
	}
	return dictionary.Invalid
}

func testFallback(t *testing.T) *Fallback {
	t.Helper()
	fb, err := NewFallback([]string{"REACT", "WORLD", "CLONE", "BUILD"})
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

func TestSelectTargetWordValidCandidate(t *testing.T) {
	p := &scriptedProvider{words: []string{"crane"}}
	s := NewSource(p, verdicts{"CRANE": dictionary.Valid}, testFallback(t), 5)

	if got := s.SelectTargetWord(context.Background()); got != "CRANE" {
		t.Errorf("SelectTargetWord() = %q, want CRANE", got)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
}

func TestSelectTargetWordRetriesRejectedCandidates(t *testing.T) {
	p := &scriptedProvider{words: []string{"xqzvk", "toolong", "flaky", "grape"}}
	checker := verdicts{"FLAKY": dictionary.Unverified, "GRAPE": dictionary.Valid}
	s := NewSource(p, checker, testFallback(t), 5)

	if got := s.SelectTargetWord(context.Background()); got != "GRAPE" {
		t.Errorf("SelectTargetWord() = %q, want GRAPE", got)
	}
	if p.calls != 4 {
		t.Errorf("provider called %d times, want 4", p.calls)
	}
}

func TestSelectTargetWordBoundedRetry(t *testing.T) {
	p := &scriptedProvider{words: []string{"aaaaa", "bbbbb", "ccccc", "ddddd", "eeeee"}}
	fb := testFallback(t)
	s := NewSource(p, verdicts{}, fb, 3)

	got := s.SelectTargetWord(context.Background())
	if !fb.Contains(got) {
		t.Errorf("SelectTargetWord() = %q, want a fallback word", got)
	}
	if p.calls != 3 {
		t.Errorf("provider called %d times, want 3", p.calls)
	}
}

func TestSelectTargetWordProviderFailure(t *testing.T) {
	p := &scriptedProvider{err: errors.New("network down")}
	fb := testFallback(t)
	// The checker would reject everything; the fallback path must bypass it.
	s := NewSource(p, verdicts{}, fb, 5)

	got := s.SelectTargetWord(context.Background())
	if !fb.Contains(got) {
		t.Errorf("SelectTargetWord() = %q, want a fallback word", got)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
}

func TestSelectTargetWordCancelled(t *testing.T) {
	p := &scriptedProvider{words: []string{"crane"}}
	fb := testFallback(t)
	s := NewSource(p, verdicts{"CRANE": dictionary.Valid}, fb, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := s.SelectTargetWord(ctx); !fb.Contains(got) {
		t.Errorf("SelectTargetWord() = %q, want a fallback word", got)
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times after cancellation", p.calls)
	}
}

func TestIsValidWord(t *testing.T) {
	s := NewSource(&scriptedProvider{}, verdicts{"CRANE": dictionary.Valid, "FLAKY": dictionary.Unverified}, testFallback(t), 1)
	ctx := context.Background()
	if !s.IsValidWord(ctx, "CRANE") {
		t.Error("IsValidWord(CRANE) = false")
	}
	if s.IsValidWord(ctx, "FLAKY") {
		t.Error("unverifiable word must not be valid")
	}
	if s.IsValidWord(ctx, "XQZVK") {
		t.Error("unknown word must not be valid")
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/word" || r.URL.Query().Get("length") != "5" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`["plant"]`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", time.Second, nil)
	got, err := p.Candidate(context.Background())
	if err != nil {
		t.Fatalf("Candidate() error = %v", err)
	}
	if got != "plant" {
		t.Errorf("Candidate() = %q, want plant", got)
	}
}

func TestHTTPProviderFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		"body":   func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`not json`)) },
		"empty":  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) },
		"slow": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			p := NewHTTPProvider(srv.URL, 50*time.Millisecond, nil)
			if _, err := p.Candidate(context.Background()); err == nil {
				t.Error("Candidate() should fail")
			}
		})
	}
}

func TestSourceEndToEndFallsBackWhenProviderDown(t *testing.T) {
	p := NewHTTPProvider("http://127.0.0.1:1", 100*time.Millisecond, nil)
	fb := testFallback(t)
	s := NewSource(p, verdicts{}, fb, 5)
	if got := s.SelectTargetWord(context.Background()); !fb.Contains(got) {
		t.Errorf("SelectTargetWord() = %q, want a fallback word", got)
	}
}
