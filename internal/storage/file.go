package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"timeoff/internal/identity"
	"timeoff/internal/leave"
	"timeoff/internal/messaging"
)

// FileStore keeps each collection as one indented JSON document on disk,
// rewritten atomically (temp file + rename) on every save. A mutex per
// collection serializes file access.
type FileStore struct {
	dir        string
	usersMu    sync.Mutex
	requestsMu sync.Mutex
	messagesMu sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadUsers(ctx context.Context) (identity.UsersDocument, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	doc := identity.UsersDocument{}
	s.load(DocUsers, &doc)
	return doc, nil
}

func (s *FileStore) SaveUsers(ctx context.Context, doc identity.UsersDocument) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.save(DocUsers, doc)
}

func (s *FileStore) LoadRequests(ctx context.Context) ([]leave.Request, error) {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()
	requests := []leave.Request{}
	s.load(DocRequests, &requests)
	return requests, nil
}

func (s *FileStore) SaveRequests(ctx context.Context, requests []leave.Request) error {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()
	return s.save(DocRequests, requests)
}

func (s *FileStore) LoadMessages(ctx context.Context) ([]messaging.Message, error) {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()
	messages := []messaging.Message{}
	s.load(DocMessages, &messages)
	return messages, nil
}

func (s *FileStore) SaveMessages(ctx context.Context, messages []messaging.Message) error {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()
	return s.save(DocMessages, messages)
}

func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// load fills out from the named document, leaving it at its zero value on
// any read or parse failure. A missing file is not an error.
func (s *FileStore) load(name string, out any) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("document read failed", "collection", name, "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("document parse failed", "collection", name, "err", err)
	}
}

func (s *FileStore) save(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
