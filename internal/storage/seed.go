package storage

import (
	"context"
	"log/slog"
	"time"

	"timeoff/internal/identity"
)

// Seed creates the default accounts on first run. An existing users
// document is left untouched.
func Seed(ctx context.Context, store Store, seedPassword string, annualPTODays int, now time.Time) error {
	doc, err := store.LoadUsers(ctx)
	if err != nil {
		return err
	}
	if !doc.Empty() {
		return nil
	}

	hash, err := identity.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	doc = identity.UsersDocument{
		Employees: []identity.User{
			{
				ID:           "emp-001",
				Username:     "john.doe",
				PasswordHash: hash,
				Name:         "John Doe",
				Role:         identity.RoleEmployee,
				Email:        "john.doe@company.com",
			},
			{
				ID:           "emp-002",
				Username:     "jane.smith",
				PasswordHash: hash,
				Name:         "Jane Smith",
				Role:         identity.RoleEmployee,
				Email:        "jane.smith@company.com",
			},
		},
		Managers: []identity.User{
			{
				ID:           "mgr-001",
				Username:     "manager1",
				PasswordHash: hash,
				Name:         "Manager One",
				Role:         identity.RoleManager,
				Email:        "manager1@company.com",
				PTOBalance:   annualPTODays,
				PTOYear:      now.Year(),
			},
		},
		Admins: []identity.User{
			{
				ID:           "admin-001",
				Username:     "Yvonne.Cullen",
				PasswordHash: hash,
				Name:         "Yvonne Cullen",
				Role:         identity.RoleAdmin,
				Email:        "yvonne.cullen@company.com",
			},
		},
	}

	if err := store.SaveUsers(ctx, doc); err != nil {
		return err
	}
	slog.Info("seeded default accounts", "employees", len(doc.Employees), "managers", len(doc.Managers), "admins", len(doc.Admins))
	return nil
}
