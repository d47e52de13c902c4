package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

const (
	TypeFullDay       = "full-day"
	TypeHalfDay       = "half-day"
	TypeSpecificHours = "specific-hours"
	TypePTO           = "pto"
)

const defaultStoreLocation = "Not specified"

// Request is a single time-off request. Dates are kept as the submitted
// strings; only PTO requests need them parsed (for the day count).
type Request struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	FirstName     string     `json:"firstName,omitempty"`
	LastName      string     `json:"lastName,omitempty"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	StartTime     *string    `json:"startTime"`
	EndTime       *string    `json:"endTime"`
	Reason        string     `json:"reason"`
	Type          string     `json:"type"`
	StoreLocation string     `json:"storeLocation"`
	Status        string     `json:"status"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	ApprovedBy    *string    `json:"approvedBy"`
	ApprovedAt    *time.Time `json:"approvedAt"`
	Comments      *string    `json:"comments"`
	DaysRequested int        `json:"daysRequested,omitempty"`
}
