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

package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ekost/ekost/internal/audit"
	"github.com/ekost/ekost/internal/room"
	"github.com/google/uuid"
)

// Service provides tenant management business logic
type Service struct {
	repo        Repository
	rooms       room.Repository
	auditLogger audit.Logger
}

// NewService creates a new tenant service
func NewService(repo Repository, rooms room.Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		rooms:       rooms,
		auditLogger: auditLogger,
	}
}

// CreateTenant creates a new tenant without a room assignment
func (s *Service) CreateTenant(ctx context.Context, name, phone, email string) (*Tenant, error) {
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}
	if phone == "" {
		return nil, fmt.Errorf("tenant phone is required")
	}

	now := time.Now()
	t := &Tenant{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantCreated,
		Resource: "tenant",
		Metadata: map[string]any{"tenant_id": t.ID},
	})

	return t, nil
}

// GetTenant retrieves a tenant by ID
func (s *Service) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateTenant updates a tenant's contact details. Empty name and phone
// keep the stored values; email is a pointer so an omitted field keeps
// the stored address while an explicit empty string clears it.
func (s *Service) UpdateTenant(ctx context.Context, id, name, phone string, email *string) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		t.Name = name
	}
	if phone != "" {
		t.Phone = phone
	}
	if email != nil {
		t.Email = *email
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantUpdated,
		Resource: "tenant",
		Metadata: map[string]any{"tenant_id": t.ID},
	})

	return t, nil
}

// ListTenants lists tenants with pagination
func (s *Service) ListTenants(ctx context.Context, limit, offset int) ([]*Tenant, int, error) {
	tenants, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// AssignRoom moves a tenant into a room. The previous room, if any, is
// freed. A room holds at most one active tenant at a time.
func (s *Service) AssignRoom(ctx context.Context, tenantID, roomID string) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !t.Active() {
		return nil, ErrTenantMovedOut
	}

	r, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Status == room.StatusUnderRenovation {
		return nil, room.ErrRoomUnavailable
	}

	occupant, err := s.repo.GetActiveByRoom(ctx, roomID)
	if err != nil && !errors.Is(err, ErrTenantNotFound) {
		return nil, fmt.Errorf("failed to check room occupancy: %w", err)
	}
	if occupant != nil && occupant.ID != t.ID {
		return nil, ErrRoomOccupied
	}

	previousRoom := t.RoomID
	t.RoomID = &roomID
	t.UpdatedAt = time.Now()

	// One transactional write covers the tenant row and both room rows;
	// a failure never strands a room in the wrong status.
	roomStatus := map[string]string{roomID: room.StatusOccupied}
	if previousRoom != nil && *previousRoom != roomID {
		roomStatus[*previousRoom] = room.StatusAvailable
	}
	if err := s.repo.UpdateWithRoomStatus(ctx, t, roomStatus); err != nil {
		return nil, fmt.Errorf("failed to assign room: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomAssigned,
		Resource: "tenant",
		Metadata: map[string]any{"tenant_id": t.ID, "room_id": roomID},
	})

	return t, nil
}

// MoveOut soft-deletes a tenant. The room reference is retained so the
// tenant's final balance stays computable; the room itself becomes
// available again.
func (s *Service) MoveOut(ctx context.Context, tenantID string) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !t.Active() {
		return nil, ErrTenantMovedOut
	}

	now := time.Now()
	t.MovedOutAt = &now
	t.UpdatedAt = now

	roomStatus := map[string]string{}
	if t.RoomID != nil {
		roomStatus[*t.RoomID] = room.StatusAvailable
	}
	if err := s.repo.UpdateWithRoomStatus(ctx, t, roomStatus); err != nil {
		return nil, fmt.Errorf("failed to move out tenant: %w", err)
	}

	// Audited at the transport layer, which knows the acting user.

	return t, nil
}
