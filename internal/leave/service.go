package leave

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeoff/internal/identity"
)

var (
	ErrNotFound      = errors.New("request not found")
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidStatus = errors.New("status must be approved or denied")
	ErrInvalidDates  = errors.New("invalid date range")
)

type Store interface {
	LoadRequests(ctx context.Context) ([]Request, error)
	SaveRequests(ctx context.Context, requests []Request) error
	LoadUsers(ctx context.Context) (identity.UsersDocument, error)
	SaveUsers(ctx context.Context, doc identity.UsersDocument) error
}

type Service struct {
	store         Store
	annualPTODays int
}

func NewService(store Store, annualPTODays int) *Service {
	return &Service{store: store, annualPTODays: annualPTODays}
}

type SubmitParams struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	EmployeeName  string `json:"employeeName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Reason        string `json:"reason"`
	Type          string `json:"type"`
	StoreLocation string `json:"storeLocation"`
}

// Submit records a new request from the public intake form. No session is
// involved, so the request gets a synthetic employee id that is never
// matched to a real account.
func (s *Service) Submit(ctx context.Context, params SubmitParams, now time.Time) (Request, error) {
	if strings.TrimSpace(params.FirstName) == "" || strings.TrimSpace(params.LastName) == "" ||
		strings.TrimSpace(params.StartDate) == "" || strings.TrimSpace(params.EndDate) == "" ||
		strings.TrimSpace(params.Reason) == "" || strings.TrimSpace(params.Type) == "" {
		return Request{}, ErrMissingFields
	}

	employeeName := params.EmployeeName
	if employeeName == "" {
		employeeName = params.FirstName + " " + params.LastName
	}
	storeLocation := params.StoreLocation
	if storeLocation == "" {
		storeLocation = defaultStoreLocation
	}

	request := Request{
		ID:            uuid.NewString(),
		EmployeeID:    identity.NewEmployeeID(),
		EmployeeName:  employeeName,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		StartTime:     optional(params.StartTime),
		EndTime:       optional(params.EndTime),
		Reason:        params.Reason,
		Type:          params.Type,
		StoreLocation: storeLocation,
		Status:        StatusPending,
		SubmittedAt:   now,
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

// ListFor applies the role filter: employees see only requests carrying
// their own employee id, managers and admins see everything.
func (s *Service) ListFor(ctx context.Context, ident identity.Identity) ([]Request, error) {
	requests, err := s.store.LoadRequests(ctx)
	if err != nil {
		return nil, err
	}
	if ident.Role != identity.RoleEmployee {
		return requests, nil
	}
	own := make([]Request, 0)
	for _, request := range requests {
		if request.EmployeeID == ident.ID {
			own = append(own, request)
		}
	}
	return own, nil
}

func (s *Service) ListByName(ctx context.Context, firstName, lastName string) ([]Request, error) {
	requests, err := s.store.LoadRequests(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Request, 0)
	for _, request := range requests {
		if request.FirstName == firstName && request.LastName == lastName {
			matched = append(matched, request)
		}
	}
	return matched, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.store.LoadRequests(ctx)
}

// Decide sets the status of a request to approved or denied. A request
// that was already decided may be decided again; the decision fields are
// overwritten as a unit. When an admin approves a PTO request the owning
// manager's balance is debited.
func (s *Service) Decide(ctx context.Context, actor identity.Identity, requestID, status string, comments *string, now time.Time) (Request, error) {
	if status != StatusApproved && status != StatusDenied {
		return Request{}, ErrInvalidStatus
	}

	requests, err := s.store.LoadRequests(ctx)
	if err != nil {
		return Request{}, err
	}
	index := -1
	for i, request := range requests {
		if request.ID == requestID {
			index = i
			break
		}
	}
	if index == -1 {
		return Request{}, ErrNotFound
	}

	approvedAt := now
	requests[index].Status = status
	requests[index].Comments = comments
	requests[index].ApprovedBy = &actor.ID
	requests[index].ApprovedAt = &approvedAt

	if status == StatusApproved && requests[index].Type == TypePTO && actor.Role == identity.RoleAdmin {
		s.debitManagerPTO(ctx, requests[index])
	}

	if err := s.store.SaveRequests(ctx, requests); err != nil {
		return Request{}, err
	}
	return requests[index], nil
}

// debitManagerPTO charges an approved PTO request against the owning
// manager's balance. A request whose employee id matches no manager is
// skipped; the balance may go negative when a stale pending request is
// approved, which is logged but allowed.
func (s *Service) debitManagerPTO(ctx context.Context, request Request) {
	if request.DaysRequested <= 0 {
		return
	}
	doc, err := s.store.LoadUsers(ctx)
	if err != nil {
		slog.Warn("pto debit user load failed", "requestId", request.ID, "err", err)
		return
	}
	for i, manager := range doc.Managers {
		if manager.ID != request.EmployeeID {
			continue
		}
		doc.Managers[i].PTOBalance = manager.PTOBalance - request.DaysRequested
		if doc.Managers[i].PTOBalance < 0 {
			slog.Warn("pto balance went negative",
				"managerId", manager.ID,
				"balance", doc.Managers[i].PTOBalance,
				"requestId", request.ID,
			)
		}
		if err := s.store.SaveUsers(ctx, doc); err != nil {
			slog.Warn("pto debit save failed", "managerId", manager.ID, "requestId", request.ID, "err", err)
		}
		return
	}
}

func (s *Service) Delete(ctx context.Context, requestID string) error {
	requests, err := s.store.LoadRequests(ctx)
	if err != nil {
		return err
	}
	for i, request := range requests {
		if request.ID == requestID {
			requests = append(requests[:i], requests[i+1:]...)
			return s.store.SaveRequests(ctx, requests)
		}
	}
	return ErrNotFound
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
