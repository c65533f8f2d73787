package balance

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Status constants
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

var (
	// ErrNoRoomAssignment is returned for tenants that were never assigned
	// a room. A missing assignment is an error condition, not a zero balance.
	ErrNoRoomAssignment = errors.New("tenant has no room assignment")

	// ErrInconsistentRoomRef is returned when a tenant points at a room
	// that no longer exists. Unreachable under foreign-key discipline;
	// treated as a data-integrity fault, not a user error.
	ErrInconsistentRoomRef = errors.New("tenant references a room that does not exist")
)

// Result is the computed, non-persisted outcome of comparing a tenant's
// expected rent to their recorded payments. It exists only as a return
// value; nothing stores or caches it.
type Result struct {
	TenantID           string          `json:"tenant_id"`
	MonthlyRent        decimal.Decimal `json:"monthly_rent"`
	TotalPayments      decimal.Decimal `json:"total_payments"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Status             string          `json:"status"`
}

// Failure reports a tenant that was skipped during a batch calculation.
type Failure struct {
	TenantID string `json:"tenant_id"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}
