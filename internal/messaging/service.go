package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeoff/internal/identity"
)

var (
	ErrNotFound          = errors.New("message not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrNotRecipient      = errors.New("only the recipient can mark a message read")
	ErrMissingFields     = errors.New("missing required fields")
)

// Message is a directed note between two users. The body is serialized
// under "message" to match existing documents.
type Message struct {
	ID       string    `json:"id"`
	FromID   string    `json:"fromId"`
	FromName string    `json:"fromName"`
	ToID     string    `json:"toId"`
	ToName   string    `json:"toName"`
	Subject  string    `json:"subject"`
	Body     string    `json:"message"`
	SentAt   time.Time `json:"sentAt"`
	Read     bool      `json:"read"`
}

type Store interface {
	LoadMessages(ctx context.Context) ([]Message, error)
	SaveMessages(ctx context.Context, messages []Message) error
	LoadUsers(ctx context.Context) (identity.UsersDocument, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Send creates an unread message from the sender to a recipient resolved
// among employees and managers.
func (s *Service) Send(ctx context.Context, from identity.Identity, recipientID, subject, body string, now time.Time) (Message, error) {
	if strings.TrimSpace(recipientID) == "" || strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return Message{}, ErrMissingFields
	}

	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return Message{}, err
	}
	var recipient *identity.User
	for _, user := range doc.Recipients() {
		if user.ID == recipientID {
			found := user
			recipient = &found
			break
		}
	}
	if recipient == nil {
		return Message{}, ErrRecipientNotFound
	}

	message := Message{
		ID:       uuid.NewString(),
		FromID:   from.ID,
		FromName: from.Name,
		ToID:     recipient.ID,
		ToName:   recipient.Name,
		Subject:  subject,
		Body:     body,
		SentAt:   now,
		Read:     false,
	}

	messages, err := s.store.LoadMessages(ctx)
	if err != nil {
		return Message{}, err
	}
	messages = append(messages, message)
	if err := s.store.SaveMessages(ctx, messages); err != nil {
		return Message{}, err
	}
	return message, nil
}

// ListFor returns messages where the user is sender or recipient.
func (s *Service) ListFor(ctx context.Context, userID string) ([]Message, error) {
	messages, err := s.store.LoadMessages(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]Message, 0)
	for _, message := range messages {
		if message.ToID == userID || message.FromID == userID {
			mine = append(mine, message)
		}
	}
	return mine, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, messageID string) error {
	messages, err := s.store.LoadMessages(ctx)
	if err != nil {
		return err
	}
	for i, message := range messages {
		if message.ID != messageID {
			continue
		}
		if message.ToID != userID {
			return ErrNotRecipient
		}
		messages[i].Read = true
		return s.store.SaveMessages(ctx, messages)
	}
	return ErrNotFound
}
