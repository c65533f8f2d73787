package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an immutable record of a rent payment made by a tenant.
// There is no update or delete: a mistaken entry is corrected by the
// bookkeeping around it, never by rewriting history.
type Payment struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
