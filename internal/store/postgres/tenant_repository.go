package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ekost/ekost/internal/room"
	"github.com/ekost/ekost/internal/tenant"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TenantRepository implements tenant.Repository
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO tenants (id, name, phone, email, room_id, moved_out_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.Name, t.Phone, nullString(t.Email), t.RoomID, t.MovedOutAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, room_id, moved_out_at, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`, id)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return t, nil
}

// GetByIDs retrieves tenants in bulk, keyed by id
func (r *TenantRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*tenant.Tenant, error) {
	result := make(map[string]*tenant.Tenant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, phone, email, room_id, moved_out_at, created_at, updated_at
		FROM tenants
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		result[t.ID] = t
	}

	return result, rows.Err()
}

// GetActiveByRoom returns the active tenant of a room
func (r *TenantRepository) GetActiveByRoom(ctx context.Context, roomID string) (*tenant.Tenant, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, room_id, moved_out_at, created_at, updated_at
		FROM tenants
		WHERE room_id = $1 AND moved_out_at IS NULL
	`, roomID)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get room occupant: %w", err)
	}
	return t, nil
}

// Update updates a tenant
func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE tenants
		SET name = $2, phone = $3, email = $4, room_id = $5, moved_out_at = $6, updated_at = $7
		WHERE id = $1
	`, t.ID, t.Name, t.Phone, nullString(t.Email), t.RoomID, t.MovedOutAt, t.UpdatedAt)
	if err != nil {
		// The partial unique index on active room assignments backstops
		// the occupancy check under concurrent assignment.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return tenant.ErrRoomOccupied
		}
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// UpdateWithRoomStatus persists the tenant and the given room status
// changes in one transaction. Room assignment and move-out go through
// here so the tenant row and the room rows can never diverge.
func (r *TenantRepository) UpdateWithRoomStatus(ctx context.Context, t *tenant.Tenant, roomStatus map[string]string) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE tenants
		SET name = $2, phone = $3, email = $4, room_id = $5, moved_out_at = $6, updated_at = $7
		WHERE id = $1
	`, t.ID, t.Name, t.Phone, nullString(t.Email), t.RoomID, t.MovedOutAt, t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return tenant.ErrRoomOccupied
		}
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}

	for roomID, status := range roomStatus {
		result, err := tx.Exec(ctx, `
			UPDATE rooms
			SET status = $2, updated_at = $3
			WHERE id = $1
		`, roomID, status, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}
		if result.RowsAffected() == 0 {
			return room.ErrRoomNotFound
		}
	}

	return tx.Commit(ctx)
}

// List lists tenants with pagination, newest first
func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, phone, email, room_id, moved_out_at, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	return tenants, rows.Err()
}

// Count returns the total number of tenants
func (r *TenantRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var email sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.Phone, &email, &t.RoomID, &t.MovedOutAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		t.Email = email.String
	}
	return &t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
