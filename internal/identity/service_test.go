package identity_test

import (
	"context"
	"strings"
	"testing"

	"timeoff/internal/identity"
	"timeoff/internal/storage"
)

func newStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := identity.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return hash
}

func seed(t *testing.T, store *storage.FileStore, doc identity.UsersDocument) {
	t.Helper()
	if err := store.SaveUsers(context.Background(), doc); err != nil {
		t.Fatalf("save users: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	store := newStore(t)
	seed(t, store, identity.UsersDocument{
		Employees: []identity.User{{
			ID:           "emp-001",
			Username:     "john.doe",
			PasswordHash: mustHash(t, "password123"),
			Name:         "John Doe",
			Role:         identity.RoleEmployee,
			Email:        "john.doe@company.com",
		}},
	})
	service := identity.NewService(store)

	ident, err := service.Authenticate(context.Background(), "john.doe", "password123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if ident.ID != "emp-001" || ident.Role != identity.RoleEmployee || ident.Name != "John Doe" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

// Unknown usernames and wrong passwords must be indistinguishable.
func TestAuthenticateRejects(t *testing.T) {
	store := newStore(t)
	seed(t, store, identity.UsersDocument{
		Employees: []identity.User{{
			ID:           "emp-001",
			Username:     "john.doe",
			PasswordHash: mustHash(t, "password123"),
			Role:         identity.RoleEmployee,
		}},
	})
	service := identity.NewService(store)

	if _, err := service.Authenticate(context.Background(), "john.doe", "wrong"); err != identity.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "nobody", "password123"); err != identity.ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

// The same username in two groups resolves in employees, managers,
// admins order.
func TestFindByUsernameOrder(t *testing.T) {
	doc := identity.UsersDocument{
		Employees: []identity.User{{ID: "emp-001", Username: "sam", Role: identity.RoleEmployee}},
		Managers:  []identity.User{{ID: "mgr-001", Username: "sam", Role: identity.RoleManager}},
	}
	user, ok := doc.FindByUsername("sam")
	if !ok || user.ID != "emp-001" {
		t.Fatalf("expected employee match first, got %+v ok=%v", user, ok)
	}
}

func TestRecipientsExcludeAdmins(t *testing.T) {
	doc := identity.UsersDocument{
		Employees: []identity.User{{ID: "emp-001"}},
		Managers:  []identity.User{{ID: "mgr-001"}},
		Admins:    []identity.User{{ID: "admin-001"}},
	}
	recipients := doc.Recipients()
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(recipients))
	}
	for _, user := range recipients {
		if user.ID == "admin-001" {
			t.Fatal("admins must not be recipients")
		}
	}
}

func TestCreateEmployee(t *testing.T) {
	store := newStore(t)
	service := identity.NewService(store)

	entry, err := service.CreateEmployee(context.Background(), identity.NewEmployee{
		Username: "new.hire",
		Name:     "New Hire",
		Email:    "new.hire@company.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(entry.ID, "emp-") || entry.Role != identity.RoleEmployee {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	doc, err := store.LoadUsers(context.Background())
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(doc.Employees) != 1 {
		t.Fatalf("expected 1 stored employee, got %d", len(doc.Employees))
	}
	stored := doc.Employees[0]
	if stored.PasswordHash == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if err := identity.CheckPassword(stored.PasswordHash, "secret123"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateEmployeeDuplicateUsername(t *testing.T) {
	store := newStore(t)
	seed(t, store, identity.UsersDocument{
		Managers: []identity.User{{ID: "mgr-001", Username: "taken", Role: identity.RoleManager}},
	})
	service := identity.NewService(store)

	_, err := service.CreateEmployee(context.Background(), identity.NewEmployee{
		Username: "taken",
		Name:     "Someone",
		Email:    "someone@company.com",
		Password: "secret123",
	})
	if err != identity.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCreateEmployeeMissingFields(t *testing.T) {
	service := identity.NewService(newStore(t))

	_, err := service.CreateEmployee(context.Background(), identity.NewEmployee{
		Username: "new.hire",
		Name:     "New Hire",
	})
	if err != identity.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestNewEmployeeID(t *testing.T) {
	id := identity.NewEmployeeID()
	if !strings.HasPrefix(id, "emp-") || len(id) != len("emp-")+8 {
		t.Fatalf("unexpected id shape: %q", id)
	}
	if id == identity.NewEmployeeID() {
		t.Fatal("ids must not repeat")
	}
}
