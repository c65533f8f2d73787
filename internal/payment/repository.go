package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("payment amount must be positive")
	ErrFuturePaymentDate = errors.New("payment date cannot be in the future")
)

// Repository defines the interface for payment storage
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByTenant(ctx context.Context, tenantID string) ([]*Payment, error)
	// SumByTenant returns the total of all payments for a tenant.
	// A tenant with no payments sums to zero, not an error.
	SumByTenant(ctx context.Context, tenantID string) (decimal.Decimal, error)
	// SumByTenants returns per-tenant totals in a single grouped query.
	// Tenants without payments are absent from the map.
	SumByTenants(ctx context.Context, tenantIDs []string) (map[string]decimal.Decimal, error)
}
