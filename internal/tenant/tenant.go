package tenant

import (
	"time"
)

// Tenant represents a renter, optionally linked to a room.
//
// Move-out is a soft delete: MovedOutAt is set and the room is freed, but
// RoomID is retained so the tenant's last balance stays computable.
type Tenant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email,omitempty"`
	RoomID     *string    `json:"room_id,omitempty"`
	MovedOutAt *time.Time `json:"moved_out_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Active reports whether the tenant still lives in the property.
func (t *Tenant) Active() bool {
	return t.MovedOutAt == nil
}
