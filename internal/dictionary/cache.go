// internal/dictionary/cache.go
//
// SQLite-backed verdict cache (table lookup_cache, see assets/migrations).
//
// Only definite verdicts are stored. Entries older than the TTL are treated
// as misses and overwritten by the next confirmed lookup.

package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// SQLiteCache keeps definite verdicts in the lookup_cache table.
// Entries older than ttl are treated as misses.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteCache(db *sql.DB, ttl time.Duration) *SQLiteCache {
	return &SQLiteCache{db: db, ttl: ttl, now: time.Now}
}

func (s *SQLiteCache) Get(ctx context.Context, word string) (Verdict, bool) {
	var raw string
	var checkedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT verdict, checked_at FROM lookup_cache WHERE word=?`, word,
	).Scan(&raw, &checkedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Str("word", word).Msg("read lookup cache")
		}
		return Unverified, false
	}
	if s.ttl > 0 && s.now().Sub(time.Unix(checkedAt, 0)) > s.ttl {
		return Unverified, false
	}
	return parseVerdict(raw)
}

func (s *SQLiteCache) Put(ctx context.Context, word string, v Verdict) {
	if v == Unverified {
		return
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookup_cache (word, verdict, checked_at) VALUES (?,?,?)
		 ON CONFLICT(word) DO UPDATE SET verdict=excluded.verdict, checked_at=excluded.checked_at`,
		word, v.String(), s.now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("write lookup cache")
	}
}
