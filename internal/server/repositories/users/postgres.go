// Package users provides the PostgreSQL-backed repository for user rows.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/passvault/internal/dbx"
	"github.com/avolkov/passvault/internal/server/models"
	"github.com/avolkov/passvault/internal/vaulterr"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to this table.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// PostgresRepository implements user storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a user row. A duplicate email surfaces as a constraint
// error; a collision on the generated id escalates to a system defect.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, vault_key_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.VaultKeyHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				if pgErr.ConstraintName == "users_pkey" {
					return nil, vaulterr.ConstraintDefect("user id collision", err)
				}
				return nil, vaulterr.Constraint("email is already registered", err)
			case pgNotNullViolation:
				return nil, vaulterr.Constraint("missing required user field", err)
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByID loads a user by identifier.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, vault_key_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail loads a user by case-normalized email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, vault_key_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.VaultKeyHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaulterr.NotFound("user not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
