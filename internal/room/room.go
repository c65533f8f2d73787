package room

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room represents a rentable unit with a fixed monthly rent
type Room struct {
	ID          string          `json:"id"`
	RoomNumber  string          `json:"room_number"`
	RoomType    string          `json:"room_type"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Status constants
const (
	StatusAvailable       = "available"
	StatusOccupied        = "occupied"
	StatusUnderRenovation = "under_renovation"
)

// ValidStatus reports whether s is a known room status.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusOccupied || s == StatusUnderRenovation
}
