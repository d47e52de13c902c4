package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"timeoff/internal/identity"
	"timeoff/internal/leave"
	"timeoff/internal/messaging"
)

// PGStore keeps the whole-document contract on Postgres: each collection
// is one JSONB row in the documents table, loaded and rewritten in full.
type PGStore struct {
	pool       *pgxpool.Pool
	usersMu    sync.Mutex
	requestsMu sync.Mutex
	messagesMu sync.Mutex
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Bootstrap(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
    CREATE TABLE IF NOT EXISTS documents (
      name TEXT PRIMARY KEY,
      body JSONB NOT NULL,
      updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )
  `)
	return err
}

func (s *PGStore) LoadUsers(ctx context.Context) (identity.UsersDocument, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	doc := identity.UsersDocument{}
	s.load(ctx, DocUsers, &doc)
	return doc, nil
}

func (s *PGStore) SaveUsers(ctx context.Context, doc identity.UsersDocument) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.save(ctx, DocUsers, doc)
}

func (s *PGStore) LoadRequests(ctx context.Context) ([]leave.Request, error) {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()
	requests := []leave.Request{}
	s.load(ctx, DocRequests, &requests)
	return requests, nil
}

func (s *PGStore) SaveRequests(ctx context.Context, requests []leave.Request) error {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()
	return s.save(ctx, DocRequests, requests)
}

func (s *PGStore) LoadMessages(ctx context.Context) ([]messaging.Message, error) {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()
	messages := []messaging.Message{}
	s.load(ctx, DocMessages, &messages)
	return messages, nil
}

func (s *PGStore) SaveMessages(ctx context.Context, messages []messaging.Message) error {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()
	return s.save(ctx, DocMessages, messages)
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PGStore) load(ctx context.Context, name string, out any) {
	var body []byte
	err := s.pool.QueryRow(ctx, "SELECT body FROM documents WHERE name = $1", name).Scan(&body)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Warn("document read failed", "collection", name, "err", err)
		}
		return
	}
	if err := json.Unmarshal(body, out); err != nil {
		slog.Warn("document parse failed", "collection", name, "err", err)
	}
}

func (s *PGStore) save(ctx context.Context, name string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.pool.Exec(ctx, `
    INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, now())
    ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
  `, name, body)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
