// Copyright 2026 The E-Kost Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ekost/ekost/internal/audit"
	"github.com/ekost/ekost/internal/observability/logger"
	"github.com/ekost/ekost/internal/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides payment logging business logic
type Service struct {
	repo        Repository
	tenants     tenant.Repository
	auditLogger audit.Logger
	loc         *time.Location
}

// NewService creates a new payment service. loc sets the business-day
// boundary for the future-date check; nil falls back to the server's
// local zone.
func NewService(repo Repository, tenants tenant.Repository, auditLogger audit.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:        repo,
		tenants:     tenants,
		auditLogger: auditLogger,
		loc:         loc,
	}
}

// RecordPayment appends a payment to a tenant's history. Payments are
// accepted for moved-out tenants too, settling an outstanding balance
// after move-out is a normal case.
func (s *Service) RecordPayment(ctx context.Context, tenantID string, amount decimal.Decimal, paymentDate time.Time, note string) (*Payment, error) {
	if _, err := s.tenants.GetByID(ctx, tenantID); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// Date-only comparison against the business zone's calendar date;
	// a payment dated today is valid at any hour, also in zones ahead
	// of UTC.
	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	pd := time.Date(paymentDate.Year(), paymentDate.Month(), paymentDate.Day(), 0, 0, 0, 0, time.UTC)
	if pd.After(today) {
		return nil, ErrFuturePaymentDate
	}

	p := &Payment{
		ID:          uuid.Must(uuid.NewV7()).String(),
		TenantID:    tenantID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Note:        note,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	slog.InfoContext(ctx, "payment recorded",
		logger.PaymentID(p.ID),
		logger.TenantID(p.TenantID),
		logger.Amount(p.Amount.String()),
		logger.Component("payment"),
	)

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePaymentLogged,
		Resource: "payment",
		Metadata: map[string]any{
			"payment_id": p.ID,
			"tenant_id":  p.TenantID,
			"amount":     p.Amount.String(),
		},
	})

	return p, nil
}

// ListPayments returns a tenant's full payment history
func (s *Service) ListPayments(ctx context.Context, tenantID string) ([]*Payment, error) {
	if _, err := s.tenants.GetByID(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListByTenant(ctx, tenantID)
}
