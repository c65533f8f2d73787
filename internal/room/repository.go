package room

import (
	"context"
	"errors"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNumberTaken = errors.New("room number already in use")
	ErrRoomOccupied    = errors.New("room has an active tenant")
	ErrRoomReferenced  = errors.New("room is referenced by tenant history")
	ErrRoomUnavailable = errors.New("room is not available for assignment")
	ErrInvalidRent     = errors.New("monthly rent must be a positive amount")
	ErrInvalidStatus   = errors.New("unknown room status")
)

// Repository defines the interface for room storage
type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByNumber(ctx context.Context, number string) (*Room, error)
	// GetByIDs returns the rooms found for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*Room, error)
	Count(ctx context.Context) (int, error)
}
