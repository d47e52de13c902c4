package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrMissingFields      = errors.New("missing required fields")
)

type Store interface {
	LoadUsers(ctx context.Context) (UsersDocument, error)
	SaveUsers(ctx context.Context, doc UsersDocument) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Authenticate verifies a username/password pair against the stored users.
// The same error is returned whether the username is unknown or the
// password is wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return Identity{}, err
	}

	user, ok := doc.FindByUsername(username)
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		Email:    user.Email,
	}, nil
}

type EmployeeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Service) ListEmployees(ctx context.Context) ([]EmployeeSummary, error) {
	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]EmployeeSummary, 0, len(doc.Employees))
	for _, emp := range doc.Employees {
		summaries = append(summaries, EmployeeSummary{ID: emp.ID, Name: emp.Name, Email: emp.Email})
	}
	return summaries, nil
}

// DirectoryEntry is the flattened employee+manager view used by the admin
// messaging screen and returned when an employee is created.
type DirectoryEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

func (s *Service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	recipients := doc.Recipients()
	entries := make([]DirectoryEntry, 0, len(recipients))
	for _, user := range recipients {
		entries = append(entries, DirectoryEntry{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			Username: user.Username,
		})
	}
	return entries, nil
}

type NewEmployee struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) CreateEmployee(ctx context.Context, params NewEmployee) (DirectoryEntry, error) {
	if strings.TrimSpace(params.Username) == "" || strings.TrimSpace(params.Name) == "" ||
		strings.TrimSpace(params.Email) == "" || params.Password == "" {
		return DirectoryEntry{}, ErrMissingFields
	}

	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return DirectoryEntry{}, err
	}
	for _, user := range doc.Recipients() {
		if user.Username == params.Username {
			return DirectoryEntry{}, ErrUsernameTaken
		}
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return DirectoryEntry{}, err
	}

	employee := User{
		ID:           NewEmployeeID(),
		Username:     params.Username,
		PasswordHash: hash,
		Name:         params.Name,
		Role:         RoleEmployee,
		Email:        params.Email,
	}
	doc.Employees = append(doc.Employees, employee)
	if err := s.store.SaveUsers(ctx, doc); err != nil {
		return DirectoryEntry{}, err
	}

	return DirectoryEntry{
		ID:       employee.ID,
		Name:     employee.Name,
		Email:    employee.Email,
		Role:     employee.Role,
		Username: employee.Username,
	}, nil
}

// NewEmployeeID returns an id of the form emp-xxxxxxxx. The same shape is
// used for the synthetic ids on unauthenticated submissions.
func NewEmployeeID() string {
	return "emp-" + uuid.NewString()[:8]
}
