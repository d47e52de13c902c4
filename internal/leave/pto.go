package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeoff/internal/identity"
)

var ErrManagerNotFound = errors.New("manager not found")

// InsufficientBalanceError rejects a PTO request that exceeds the
// manager's remaining balance. The message states the shortfall.
type InsufficientBalanceError struct {
	Remaining int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient PTO balance. You have %d days remaining, but requested %d days.", e.Remaining, e.Requested)
}

type BalanceInfo struct {
	Balance int `json:"balance"`
	Year    int `json:"year"`
}

// Balance returns a manager's PTO balance, resetting it to the annual
// allotment when the stored year is not the current one. The rollover is
// persisted immediately.
func (s *Service) Balance(ctx context.Context, managerID string, now time.Time) (BalanceInfo, error) {
	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return BalanceInfo{}, err
	}

	year := now.Year()
	for i, manager := range doc.Managers {
		if manager.ID != managerID {
			continue
		}
		if manager.PTOYear != year {
			doc.Managers[i].PTOBalance = s.annualPTODays
			doc.Managers[i].PTOYear = year
			if err := s.store.SaveUsers(ctx, doc); err != nil {
				return BalanceInfo{}, err
			}
		}
		return BalanceInfo{Balance: doc.Managers[i].PTOBalance, Year: year}, nil
	}
	return BalanceInfo{}, ErrManagerNotFound
}

type PTOParams struct {
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Reason        string `json:"reason"`
	StoreLocation string `json:"storeLocation"`
}

// RequestPTO files a pending PTO request for a manager. The balance is
// checked but not debited; the debit happens when an admin approves.
func (s *Service) RequestPTO(ctx context.Context, actor identity.Identity, params PTOParams, now time.Time) (Request, error) {
	if strings.TrimSpace(params.StartDate) == "" || strings.TrimSpace(params.EndDate) == "" ||
		strings.TrimSpace(params.Reason) == "" {
		return Request{}, ErrMissingFields
	}

	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		return Request{}, err
	}
	var manager *identity.User
	for i := range doc.Managers {
		if doc.Managers[i].ID == actor.ID {
			manager = &doc.Managers[i]
			break
		}
	}
	if manager == nil {
		return Request{}, ErrManagerNotFound
	}

	start, err := ParseDate(params.StartDate)
	if err != nil {
		return Request{}, ErrInvalidDates
	}
	end, err := ParseDate(params.EndDate)
	if err != nil {
		return Request{}, ErrInvalidDates
	}
	days, err := CalculateDays(start, end)
	if err != nil {
		return Request{}, ErrInvalidDates
	}

	if days > manager.PTOBalance {
		return Request{}, &InsufficientBalanceError{Remaining: manager.PTOBalance, Requested: days}
	}

	storeLocation := params.StoreLocation
	if storeLocation == "" {
		storeLocation = defaultStoreLocation
	}
	comments := "Awaiting admin approval"
	request := Request{
		ID:            uuid.NewString(),
		EmployeeID:    manager.ID,
		EmployeeName:  manager.Name,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		Reason:        params.Reason,
		Type:          TypePTO,
		StoreLocation: storeLocation,
		Status:        StatusPending,
		SubmittedAt:   now,
		Comments:      &comments,
		DaysRequested: days,
	}

	requests, err := s.store.LoadRequests(ctx)
	if err != nil {
		return Request{}, err
	}
	requests = append(requests, request)
	if err := s.store.SaveRequests(ctx, requests); err != nil {
		return Request{}, err
	}
	return request, nil
}
