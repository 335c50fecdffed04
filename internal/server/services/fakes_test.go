package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkov/passvault/internal/dbx"
	"github.com/avolkov/passvault/internal/server/models"
	credentialsrepo "github.com/avolkov/passvault/internal/server/repositories/credentials"
	"github.com/avolkov/passvault/internal/server/repositories/repomanager"
	usersrepo "github.com/avolkov/passvault/internal/server/repositories/users"
	"github.com/avolkov/passvault/internal/vaulterr"
)

// --- in-memory fakes ---

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, vaulterr.Constraint("email is already registered", nil)
		}
	}
	copied := *u
	f.users[u.ID] = &copied
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, vaulterr.NotFound("user not found")
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, vaulterr.NotFound("user not found")
}

type fakeCredentialsRepo struct {
	mu    sync.Mutex
	rows  map[string]*models.Credential
	users *fakeUsersRepo

	insertErr error
}

func newFakeCredentialsRepo(users *fakeUsersRepo) *fakeCredentialsRepo {
	return &fakeCredentialsRepo{rows: make(map[string]*models.Credential), users: users}
}

func (f *fakeCredentialsRepo) Insert(ctx context.Context, row *models.Credential) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if _, ok := f.rows[row.ID]; ok {
		return nil, vaulterr.ConstraintDefect("credential id collision", nil)
	}
	copied := *row
	f.rows[row.ID] = &copied
	return row, nil
}

func (f *fakeCredentialsRepo) FindByID(ctx context.Context, id string) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, vaulterr.NotFound("credential not found")
}

func (f *fakeCredentialsRepo) FindOwned(ctx context.Context, ownerID string) ([]*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Credential
	for _, row := range f.rows {
		if row.OwnerID == ownerID && row.SharedToID == nil {
			copied := *row
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeCredentialsRepo) FindSharedByOwner(ctx context.Context, ownerID string) ([]*models.SharedCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.SharedCredential
	for _, row := range f.rows {
		if row.OwnerID == ownerID && row.SharedToID != nil {
			item := &models.SharedCredential{
				ID: row.ID, URL: row.URL, Login: row.Login, Secret: row.Secret, Label: row.Label,
			}
			if recipient, ok := f.users.users[*row.SharedToID]; ok {
				item.RecipientEmail = recipient.Email
			}
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeCredentialsRepo) FindSharedWithUser(ctx context.Context, userID string) ([]*models.SharedCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.SharedCredential
	for _, row := range f.rows {
		if row.SharedToID != nil && *row.SharedToID == userID {
			item := &models.SharedCredential{
				ID: row.ID, URL: row.URL, Login: row.Login, Secret: row.Secret, Label: row.Label,
			}
			if owner, ok := f.users.users[row.OwnerID]; ok {
				item.OwnerEmail = owner.Email
			}
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeCredentialsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCredentialsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	u := newFakeUsersRepo()
	return &fakeRepoManager{u: u, c: newFakeCredentialsRepo(u)}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error             { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                   { return m.u }
func (m *fakeRepoManager) Credentials(db dbx.DBTX) credentialsrepo.Repository       { return m.c }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// newSQLMockDB returns a DB whose transactions always begin and commit; the
// fakes above ignore the handle.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}
