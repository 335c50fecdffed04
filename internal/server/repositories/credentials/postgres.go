// Package credentials provides the PostgreSQL-backed repository for
// credential rows and the domain queries over them.
package credentials

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

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// PostgresRepository implements credential storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Mutations are expected to run on a transactional
// handle supplied by the caller.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists a credential row. Relational violations map to constraint
// errors; a collision on the generated id escalates to a system defect.
func (r *PostgresRepository) Insert(ctx context.Context, row *models.Credential) (*models.Credential, error) {
	query := `
		INSERT INTO credentials (id, owner_id, shared_to_id, url, login, secret, label)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		row.ID, row.OwnerID, row.SharedToID, row.URL, row.Login, row.Secret, row.Label,
	).Scan(&row.CreatedAt, &row.UpdatedAt)

	if err != nil {
		return nil, translateInsertError(err)
	}

	return row, nil
}

func translateInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return vaulterr.ConstraintDefect("credential id collision", err)
		case pgForeignKeyViolation:
			return vaulterr.Constraint("referenced user does not exist", err)
		case pgNotNullViolation:
			return vaulterr.Constraint("missing required credential field", err)
		case pgCheckViolation:
			return vaulterr.Constraint("owner cannot equal the share recipient", err)
		}
	}
	return fmt.Errorf("db error: %w", err)
}

// FindByID loads a full credential row.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Credential, error) {
	query := `
		SELECT id, owner_id, shared_to_id, url, login, secret, label, created_at, updated_at
		FROM credentials
		WHERE id = $1
	`
	row := &models.Credential{}
	var sharedTo sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.OwnerID, &sharedTo, &row.URL, &row.Login, &row.Secret,
		&row.Label, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vaulterr.NotFound("credential not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if sharedTo.Valid {
		row.SharedToID = &sharedTo.String
	}

	return row, nil
}

// FindOwned returns the owner's original entries. Bookkeeping columns
// (owner, shared-to, timestamps) are left out of the projection.
func (r *PostgresRepository) FindOwned(ctx context.Context, ownerID string) ([]*models.Credential, error) {
	query := `
		SELECT id, url, login, secret, label
		FROM credentials
		WHERE owner_id = $1 AND shared_to_id IS NULL
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Credential
	for rows.Next() {
		item := &models.Credential{}
		if err := rows.Scan(&item.ID, &item.URL, &item.Login, &item.Secret, &item.Label); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindSharedByOwner returns the owner's shared copies joined with the
// recipient's email.
func (r *PostgresRepository) FindSharedByOwner(ctx context.Context, ownerID string) ([]*models.SharedCredential, error) {
	query := `
		SELECT c.id, c.url, c.login, c.secret, c.label, u.email
		FROM credentials c
		JOIN users u ON u.id = c.shared_to_id
		WHERE c.owner_id = $1 AND c.shared_to_id IS NOT NULL
	`
	return r.selectShared(ctx, query, ownerID, func(item *models.SharedCredential, email string) {
		item.RecipientEmail = email
	})
}

// FindSharedWithUser returns the copies shared with the user joined with the
// owner's email.
func (r *PostgresRepository) FindSharedWithUser(ctx context.Context, userID string) ([]*models.SharedCredential, error) {
	query := `
		SELECT c.id, c.url, c.login, c.secret, c.label, u.email
		FROM credentials c
		JOIN users u ON u.id = c.owner_id
		WHERE c.shared_to_id = $1
	`
	return r.selectShared(ctx, query, userID, func(item *models.SharedCredential, email string) {
		item.OwnerEmail = email
	})
}

func (r *PostgresRepository) selectShared(ctx context.Context, query string, arg string, setEmail func(*models.SharedCredential, string)) ([]*models.SharedCredential, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SharedCredential
	for rows.Next() {
		item := &models.SharedCredential{}
		var email string
		if err := rows.Scan(&item.ID, &item.URL, &item.Login, &item.Secret, &item.Label, &email); err != nil {
			return nil, err
		}
		setEmail(item, email)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
