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

package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ekost/ekost/internal/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides room management business logic
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new room service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// CreateRoom creates a new room in available state
func (s *Service) CreateRoom(ctx context.Context, number, roomType string, monthlyRent decimal.Decimal) (*Room, error) {
	if number == "" {
		return nil, fmt.Errorf("room number is required")
	}
	if !monthlyRent.IsPositive() {
		return nil, ErrInvalidRent
	}

	// Room numbers are unique across the property
	if _, err := s.repo.GetByNumber(ctx, number); err == nil {
		return nil, ErrRoomNumberTaken
	} else if !errors.Is(err, ErrRoomNotFound) {
		return nil, fmt.Errorf("failed to check room number: %w", err)
	}

	now := time.Now()
	r := &Room{
		ID:          uuid.Must(uuid.NewV7()).String(),
		RoomNumber:  number,
		RoomType:    roomType,
		MonthlyRent: monthlyRent,
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomCreated,
		Resource: "room",
		Metadata: map[string]any{"room_id": r.ID, "room_number": r.RoomNumber},
	})

	return r, nil
}

// GetRoom retrieves a room by ID
func (s *Service) GetRoom(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateRoom updates a room's type, rent and status. Rent changes take
// effect on the next balance calculation; nothing is recomputed eagerly.
func (s *Service) UpdateRoom(ctx context.Context, id, roomType string, monthlyRent decimal.Decimal, status string) (*Room, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !monthlyRent.IsPositive() {
		return nil, ErrInvalidRent
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	r.RoomType = roomType
	r.MonthlyRent = monthlyRent
	r.Status = status
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomUpdated,
		Resource: "room",
		Metadata: map[string]any{"room_id": r.ID, "status": r.Status},
	})

	return r, nil
}

// DeleteRoom removes a room. Occupied rooms cannot be deleted.
func (s *Service) DeleteRoom(ctx context.Context, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if r.Status == StatusOccupied {
		return ErrRoomOccupied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomDeleted,
		Resource: "room",
		Metadata: map[string]any{"room_id": id, "room_number": r.RoomNumber},
	})

	return nil
}

// ListRooms lists rooms with pagination
func (s *Service) ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	rooms, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}
