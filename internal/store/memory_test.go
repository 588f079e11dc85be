package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/wordle-clone/internal/dictionary"
	"github.com/robalobadob/wordle-clone/internal/game"
)

type constSource string

func (s constSource) SelectTargetWord(context.Context) string { return string(s) }

type acceptAll struct{}

func (acceptAll) Lookup(context.Context, string) dictionary.Verdict { return dictionary.Valid }

func newEngine() *game.Engine {
	return game.New(context.Background(), constSource("CRANE"), acceptAll{})
}

func TestSaveGet(t *testing.T) {
	st := NewMemoryStore(time.Hour)
	ctx := context.Background()
	e := newEngine()

	if err := st.Save(ctx, e); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := st.Get(ctx, e.ID())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != e {
		t.Error("Get() returned a different engine")
	}
	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestExpiry(t *testing.T) {
	st := NewMemoryStore(time.Hour).(*memory)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)
	st.now = func() time.Time { return base }

	stale, fresh := newEngine(), newEngine()
	_ = st.Save(ctx, stale)
	st.now = func() time.Time { return base.Add(50 * time.Minute) }
	_ = st.Save(ctx, fresh)

	if n := st.Sweep(base.Add(90 * time.Minute)); n != 1 {
		t.Errorf("Sweep() removed %d, want 1", n)
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}

	st.now = func() time.Time { return base.Add(3 * time.Hour) }
	if _, err := st.Get(ctx, fresh.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on expired session error = %v, want ErrNotFound", err)
	}
	if st.Len() != 0 {
		t.Errorf("expired session not removed on Get")
	}
}

func TestGetRefreshesLastSeen(t *testing.T) {
	st := NewMemoryStore(time.Hour).(*memory)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)
	st.now = func() time.Time { return base }
	e := newEngine()
	_ = st.Save(ctx, e)

	st.now = func() time.Time { return base.Add(50 * time.Minute) }
	if _, err := st.Get(ctx, e.ID()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n := st.Sweep(base.Add(100 * time.Minute)); n != 0 {
		t.Errorf("Sweep() removed a session used 50 minutes ago")
	}
}
