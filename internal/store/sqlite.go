package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robalobadob/wordle-placer/internal/session"
)

// timeLayout is fixed-width so stored timestamps compare lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore persists session snapshots in the sessions table and keeps
// the live *session.Session for each ID it has handed out, so concurrent
// requests in one process mutate the same value.
type sqliteStore struct {
	db       *sql.DB
	settings session.Settings

	mu   sync.Mutex
	live map[string]*session.Session
}

// NewSQLiteStore returns a Store backed by db. The schema must already be
// migrated (see Migrate). settings are applied to restored sessions.
func NewSQLiteStore(db *sql.DB, settings session.Settings) Store {
	return &sqliteStore{db: db, settings: settings, live: make(map[string]*session.Session)}
}

func (s *sqliteStore) Save(ctx context.Context, sess *session.Session) error {
	snap := sess.Snapshot()
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", snap.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET snapshot=excluded.snapshot, updated_at=excluded.updated_at`,
		snap.ID, string(body), snap.CreatedAt.UTC().Format(timeLayout), snap.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}

	s.mu.Lock()
	s.live[snap.ID] = sess
	s.mu.Unlock()
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	if sess, ok := s.live[id]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM sessions WHERE id=?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	sess, err := session.Restore(snap, s.settings)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.live[id]; ok {
		return existing, nil
	}
	s.live[id] = sess
	return sess, nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
	return nil
}

func (s *sqliteStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`,
		cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, _ := res.RowsAffected()

	s.mu.Lock()
	for id, sess := range s.live {
		if sess.UpdatedAt().Before(cutoff) {
			delete(s.live, id)
		}
	}
	s.mu.Unlock()
	return int(n), nil
}
