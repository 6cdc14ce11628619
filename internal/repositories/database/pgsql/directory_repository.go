package pgsql

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/atk_inventory_app/internal/models"
	"github.com/SscSPs/atk_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	unitColumns = `unit_id, name, created_at, created_by, last_updated_at, last_updated_by`
	userColumns = `user_id, username, password_hash, name, email, role, unit_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`
)

type PgxUnitRepository struct {
	BaseRepository
}

func newPgxUnitRepository(pool *pgxpool.Pool) *PgxUnitRepository {
	return &PgxUnitRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitRepositoryFacade = (*PgxUnitRepository)(nil)

func (r *PgxUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	query := `INSERT INTO units (` + unitColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query, unit.UnitID, unit.Name, unit.CreatedAt, unit.CreatedBy, unit.LastUpdatedAt, unit.LastUpdatedBy)
	if err != nil {
		return mapError(err, "unit", unit.Name, apperrors.ErrUnitNotFound)
	}
	return nil
}

func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+unitColumns+` FROM units WHERE unit_id = $1`, unitID)
	if err != nil {
		return nil, mapError(err, "unit", unitID, apperrors.ErrUnitNotFound)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Unit])
	if err != nil {
		return nil, mapError(err, "unit", unitID, apperrors.ErrUnitNotFound)
	}
	unit := mapping.ToDomainUnit(m)
	return &unit, nil
}

func (r *PgxUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+unitColumns+` FROM units ORDER BY LOWER(name)`)
	if err != nil {
		return nil, mapError(err, "units", "list", apperrors.ErrNotFound)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Unit])
	if err != nil {
		return nil, mapError(err, "units", "list", apperrors.ErrNotFound)
	}
	return mapping.ToDomainUnitSlice(ms), nil
}

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err, "user", arg, apperrors.ErrNotFound)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "user", arg, apperrors.ErrNotFound)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// SaveUser inserts a new user. Usernames are unique.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.PasswordHash, m.Name, m.Email, m.Role, m.UnitID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		return mapError(err, "user", m.Username, apperrors.ErrNotFound)
	}
	return nil
}

// FindUserByID returns a user that has not been deleted.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1 AND deleted_at IS NULL`, userID)
}

// FindUserByUsername returns a user that has not been deleted.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1) AND deleted_at IS NULL`, username)
}

// ListActiveUsers filters on role and unit when they are not empty.
func (r *PgxUserRepository) ListActiveUsers(ctx context.Context, role domain.UserRole, unitID string) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE is_active AND deleted_at IS NULL
			AND ($1 = '' OR role = $1)
			AND ($2 = '' OR unit_id::text = $2)
		ORDER BY username;
	`
	rows, err := r.Pool.Query(ctx, query, string(role), unitID)
	if err != nil {
		return nil, mapError(err, "users", "list", apperrors.ErrNotFound)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "users", "list", apperrors.ErrNotFound)
	}
	return mapping.ToDomainUserSlice(ms), nil
}
