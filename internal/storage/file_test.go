package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"timeoff/internal/identity"
	"timeoff/internal/leave"
	"timeoff/internal/messaging"
	"timeoff/internal/storage"
)

func newFileStore(t *testing.T) (*storage.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store, dir
}

func TestMissingDocumentsLoadEmpty(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	doc, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if !doc.Empty() {
		t.Fatalf("expected empty users document, got %+v", doc)
	}

	requests, err := store.LoadRequests(ctx)
	if err != nil {
		t.Fatalf("load requests: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected no requests, got %d", len(requests))
	}

	messages, err := store.LoadMessages(ctx)
	if err != nil {
		t.Fatalf("load messages: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestCorruptDocumentLoadsEmpty(t *testing.T) {
	store, dir := newFileStore(t)
	ctx := context.Background()

	path := filepath.Join(dir, "time-off-requests.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	requests, err := store.LoadRequests(ctx)
	if err != nil {
		t.Fatalf("load requests: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected empty collection from corrupt file, got %d", len(requests))
	}
}

func TestRoundTrip(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	users := identity.UsersDocument{
		Employees: []identity.User{{ID: "emp-001", Username: "john.doe", Role: identity.RoleEmployee}},
	}
	if err := store.SaveUsers(ctx, users); err != nil {
		t.Fatalf("save users: %v", err)
	}
	loadedUsers, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(loadedUsers.Employees) != 1 || loadedUsers.Employees[0].ID != "emp-001" {
		t.Fatalf("unexpected users: %+v", loadedUsers)
	}

	requests := []leave.Request{{
		ID:          "req-1",
		EmployeeID:  "emp-001",
		StartDate:   "2025-04-01",
		EndDate:     "2025-04-02",
		Status:      leave.StatusPending,
		SubmittedAt: now,
	}}
	if err := store.SaveRequests(ctx, requests); err != nil {
		t.Fatalf("save requests: %v", err)
	}
	loadedRequests, err := store.LoadRequests(ctx)
	if err != nil {
		t.Fatalf("load requests: %v", err)
	}
	if len(loadedRequests) != 1 || loadedRequests[0].ID != "req-1" {
		t.Fatalf("unexpected requests: %+v", loadedRequests)
	}

	messages := []messaging.Message{{ID: "msg-1", FromID: "admin-001", ToID: "emp-001", Subject: "Hi", Body: "hello", SentAt: now}}
	if err := store.SaveMessages(ctx, messages); err != nil {
		t.Fatalf("save messages: %v", err)
	}
	loadedMessages, err := store.LoadMessages(ctx)
	if err != nil {
		t.Fatalf("load messages: %v", err)
	}
	if len(loadedMessages) != 1 || loadedMessages[0].Body != "hello" {
		t.Fatalf("unexpected messages: %+v", loadedMessages)
	}
}

func TestSaveOverwritesWholeDocument(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	if err := store.SaveRequests(ctx, []leave.Request{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveRequests(ctx, []leave.Request{{ID: "c"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	requests, err := store.LoadRequests(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(requests) != 1 || requests[0].ID != "c" {
		t.Fatalf("expected full replacement, got %+v", requests)
	}
}

func TestSeedIdempotent(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := storage.Seed(ctx, store, "changeme", 7, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	doc, err := store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(doc.Employees) != 2 || len(doc.Managers) != 1 || len(doc.Admins) != 1 {
		t.Fatalf("unexpected seed layout: %+v", doc)
	}
	if doc.Managers[0].PTOBalance != 7 || doc.Managers[0].PTOYear != now.Year() {
		t.Fatalf("unexpected manager balance: %+v", doc.Managers[0])
	}
	if err := identity.CheckPassword(doc.Employees[0].PasswordHash, "changeme"); err != nil {
		t.Fatalf("seed password does not verify: %v", err)
	}

	// A second run must not touch the existing document.
	doc.Employees[0].Name = "Edited"
	if err := store.SaveUsers(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := storage.Seed(ctx, store, "other", 7, now); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	doc, err = store.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if doc.Employees[0].Name != "Edited" {
		t.Fatal("seed overwrote an existing document")
	}
}
