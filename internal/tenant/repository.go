package tenant

import (
	"context"
	"errors"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrTenantMovedOut = errors.New("tenant already moved out")
	ErrRoomOccupied   = errors.New("room already has an active tenant")
)

// Repository defines the interface for tenant storage
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	// GetByIDs returns the tenants found for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Tenant, error)
	// GetActiveByRoom returns the active (non-moved-out) tenant of a room,
	// or ErrTenantNotFound when the room is free.
	GetActiveByRoom(ctx context.Context, roomID string) (*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) error
	// UpdateWithRoomStatus persists the tenant and applies the given room
	// status changes in a single transaction, so a room assignment or
	// move-out never leaves the tenant row and the room rows half-written.
	UpdateWithRoomStatus(ctx context.Context, tenant *Tenant, roomStatus map[string]string) error
	List(ctx context.Context, limit, offset int) ([]*Tenant, error)
	Count(ctx context.Context) (int, error)
}
