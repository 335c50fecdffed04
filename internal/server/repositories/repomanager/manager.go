package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov/passvault/internal/dbx"
	"github.com/avolkov/passvault/internal/server/repositories/credentials"
	"github.com/avolkov/passvault/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a plain connection or a
// transactional handle, so services can run any repository call inside a
// transaction they control.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Credentials(db dbx.DBTX) credentials.Repository
}
