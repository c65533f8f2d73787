package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekost/ekost/internal/room"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RoomRepository implements room.Repository
type RoomRepository struct {
	db *DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO rooms (id, room_number, room_type, monthly_rent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rm.ID, rm.RoomNumber, rm.RoomType, rm.MonthlyRent, rm.Status, rm.CreatedAt, rm.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return room.ErrRoomNumberTaken
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, room_number, room_type, monthly_rent, status, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`, id)

	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return rm, nil
}

// GetByNumber retrieves a room by its unique room number
func (r *RoomRepository) GetByNumber(ctx context.Context, number string) (*room.Room, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, room_number, room_type, monthly_rent, status, created_at, updated_at
		FROM rooms
		WHERE room_number = $1
	`, number)

	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by number: %w", err)
	}
	return rm, nil
}

// GetByIDs retrieves rooms in bulk, keyed by id
func (r *RoomRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*room.Room, error) {
	result := make(map[string]*room.Room, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, room_number, room_type, monthly_rent, status, created_at, updated_at
		FROM rooms
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		result[rm.ID] = rm
	}

	return result, rows.Err()
}

// Update updates a room
func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE rooms
		SET room_type = $2, monthly_rent = $3, status = $4, updated_at = $5
		WHERE id = $1
	`, rm.ID, rm.RoomType, rm.MonthlyRent, rm.Status, rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

// Delete removes a room. Rooms still referenced by moved-out tenants
// cannot be deleted; their balance history depends on the rent.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return room.ErrRoomReferenced
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

// List lists rooms with pagination, ordered by room number
func (r *RoomRepository) List(ctx context.Context, limit, offset int) ([]*room.Room, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, room_number, room_type, monthly_rent, status, created_at, updated_at
		FROM rooms
		ORDER BY room_number
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*room.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, rm)
	}

	return rooms, rows.Err()
}

// Count returns the total number of rooms
func (r *RoomRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

func scanRoom(row pgx.Row) (*room.Room, error) {
	var rm room.Room
	if err := row.Scan(&rm.ID, &rm.RoomNumber, &rm.RoomType, &rm.MonthlyRent, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, err
	}
	return &rm, nil
}
