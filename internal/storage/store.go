package storage

import (
	"context"

	"timeoff/internal/identity"
	"timeoff/internal/leave"
	"timeoff/internal/messaging"
)

// Collection document names, shared by the file and Postgres stores.
const (
	DocUsers    = "users"
	DocRequests = "time-off-requests"
	DocMessages = "messages"
)

// Store is the whole-document persistence contract: each collection is
// loaded in full, mutated in memory, and written back in full. Loads
// return the default empty structure on any read or parse failure.
type Store interface {
	LoadUsers(ctx context.Context) (identity.UsersDocument, error)
	SaveUsers(ctx context.Context, doc identity.UsersDocument) error
	LoadRequests(ctx context.Context) ([]leave.Request, error)
	SaveRequests(ctx context.Context, requests []leave.Request) error
	LoadMessages(ctx context.Context) ([]messaging.Message, error)
	SaveMessages(ctx context.Context, messages []messaging.Message) error
	Ping(ctx context.Context) error
}
