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

package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ekost/ekost/internal/observability/logger"
	"github.com/ekost/ekost/internal/payment"
	"github.com/ekost/ekost/internal/room"
	"github.com/ekost/ekost/internal/tenant"
	"github.com/shopspring/decimal"
)

// Engine computes outstanding balances on demand. It is stateless: every
// call recomputes from the tenant, room and payment stores, so a balance
// read is never staler than the reads it was derived from. No lock is
// held across the collaborator reads; a payment landing between them is
// picked up by the next read.
type Engine struct {
	tenants  tenant.Repository
	rooms    room.Repository
	payments payment.Repository
}

// NewEngine creates a new balance engine
func NewEngine(tenants tenant.Repository, rooms room.Repository, payments payment.Repository) *Engine {
	return &Engine{
		tenants:  tenants,
		rooms:    rooms,
		payments: payments,
	}
}

// Calculate produces a tenant's rent position. Preconditions, in order:
// the tenant exists, the tenant has a room reference, the room exists.
// Moved-out tenants keep their last room reference and remain computable.
func (e *Engine) Calculate(ctx context.Context, tenantID string) (*Result, error) {
	t, err := e.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if t.RoomID == nil {
		return nil, ErrNoRoomAssignment
	}

	r, err := e.rooms.GetByID(ctx, *t.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			slog.ErrorContext(ctx, "tenant references missing room",
				logger.TenantID(t.ID),
				logger.RoomID(*t.RoomID),
				logger.Component("balance"),
			)
			return nil, fmt.Errorf("%w: room %s", ErrInconsistentRoomRef, *t.RoomID)
		}
		return nil, err
	}

	total, err := e.payments.SumByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	return compute(tenantID, r.MonthlyRent, total), nil
}

// CalculateAll is the batch variant for list views. It issues one grouped
// read per collaborator instead of N single calls. Tenants that fail a
// precondition are reported in the failure list; the batch itself never
// aborts on them.
func (e *Engine) CalculateAll(ctx context.Context, tenantIDs []string) (map[string]*Result, []Failure, error) {
	results := make(map[string]*Result, len(tenantIDs))
	if len(tenantIDs) == 0 {
		return results, nil, nil
	}

	tenants, err := e.tenants.GetByIDs(ctx, tenantIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tenants: %w", err)
	}

	roomIDs := make([]string, 0, len(tenants))
	seen := make(map[string]bool, len(tenants))
	for _, t := range tenants {
		if t.RoomID != nil && !seen[*t.RoomID] {
			seen[*t.RoomID] = true
			roomIDs = append(roomIDs, *t.RoomID)
		}
	}

	rooms, err := e.rooms.GetByIDs(ctx, roomIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	sums, err := e.payments.SumByTenants(ctx, tenantIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	var failures []Failure
	for _, id := range tenantIDs {
		t, ok := tenants[id]
		if !ok {
			failures = append(failures, Failure{TenantID: id, Reason: "tenant not found", Err: tenant.ErrTenantNotFound})
			continue
		}
		if t.RoomID == nil {
			failures = append(failures, Failure{TenantID: id, Reason: "no room assignment", Err: ErrNoRoomAssignment})
			continue
		}
		r, ok := rooms[*t.RoomID]
		if !ok {
			slog.ErrorContext(ctx, "tenant references missing room",
				logger.TenantID(t.ID),
				logger.RoomID(*t.RoomID),
				logger.Component("balance"),
			)
			failures = append(failures, Failure{TenantID: id, Reason: "inconsistent room reference", Err: ErrInconsistentRoomRef})
			continue
		}

		total, ok := sums[id]
		if !ok {
			total = decimal.Zero
		}
		results[id] = compute(id, r.MonthlyRent, total)
	}

	return results, failures, nil
}

// compute assembles a Result from exact decimal inputs. The outstanding
// amount is clamped at zero; overpayment still reads as paid.
func compute(tenantID string, monthlyRent, totalPayments decimal.Decimal) *Result {
	status := StatusUnpaid
	if totalPayments.GreaterThanOrEqual(monthlyRent) {
		status = StatusPaid
	}

	outstanding := monthlyRent.Sub(totalPayments)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	return &Result{
		TenantID:           tenantID,
		MonthlyRent:        monthlyRent,
		TotalPayments:      totalPayments,
		OutstandingBalance: outstanding,
		Status:             status,
	}
}
