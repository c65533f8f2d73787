package postgres

import (
	"context"
	"fmt"

	"github.com/ekost/ekost/internal/payment"
	"github.com/shopspring/decimal"
)

// PaymentRepository implements payment.Repository. Payments are
// append-only; there is deliberately no update or delete here.
type PaymentRepository struct {
	db *DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment record
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO payments (id, tenant_id, amount, payment_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.TenantID, p.Amount, p.PaymentDate, p.Note, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListByTenant returns a tenant's payment history, newest first
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*payment.Payment, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, amount, payment_date, note, created_at
		FROM payments
		WHERE tenant_id = $1
		ORDER BY payment_date DESC, created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Amount, &p.PaymentDate, &p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, rows.Err()
}

// SumByTenant returns the exact decimal total of a tenant's payments.
// COALESCE keeps the no-payments case a zero, not a NULL.
func (r *PaymentRepository) SumByTenant(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE tenant_id = $1
	`, tenantID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

// SumByTenants returns per-tenant payment totals in one grouped query
func (r *PaymentRepository) SumByTenants(ctx context.Context, tenantIDs []string) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal, len(tenantIDs))
	if len(tenantIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT tenant_id, SUM(amount)
		FROM payments
		WHERE tenant_id = ANY($1)
		GROUP BY tenant_id
	`, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tenantID string
		var total decimal.Decimal
		if err := rows.Scan(&tenantID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan payment sum: %w", err)
		}
		result[tenantID] = total
	}

	return result, rows.Err()
}
