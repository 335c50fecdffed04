package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/avolkov/passvault/internal/cryptox"
	"github.com/avolkov/passvault/internal/dbx"
	"github.com/avolkov/passvault/internal/idgen"
	"github.com/avolkov/passvault/internal/server/config"
	"github.com/avolkov/passvault/internal/server/models"
	"github.com/avolkov/passvault/internal/server/repositories/repomanager"
	"github.com/avolkov/passvault/internal/vaulterr"
)

// VaultService orchestrates credential create/read/share operations. Rows
// with no recipient are encrypted under the owner's vault key; shared copies
// are encrypted under the injected system secret so any authenticated
// recipient can be served without knowing the owner's key. Each mutation is
// one insert inside one transaction.
type VaultService struct {
	db           *sql.DB
	repos        repomanager.RepositoryManager
	systemSecret string
}

// NewVaultService constructs a VaultService. The system secret is taken from
// config once here; deeper call paths receive it explicitly.
func NewVaultService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config) *VaultService {
	return &VaultService{
		db:           db,
		repos:        repos,
		systemSecret: cfg.SystemSecret,
	}
}

// CreateCredentialRequest carries the save-password payload.
type CreateCredentialRequest struct {
	OwnerID  string
	VaultKey string
	URL      string
	Login    string
	Secret   string
	Label    string
}

// ShareCredentialRequest carries the share-password payload.
type ShareCredentialRequest struct {
	OwnerID        string
	VaultKey       string
	RecipientEmail string
	CredentialID   string
}

// ListSharesResult groups both directions of sharing for one user, with
// login/secret decrypted under the system secret.
type ListSharesResult struct {
	SharedByOwner   []*models.SharedCredential
	SharedWithOwner []*models.SharedCredential
}

// CreateCredential validates the caller's vault key against the stored hash,
// encrypts login and secret under the vault key (url and label stay
// cleartext), and inserts the original row in a single transaction. Any
// failure surfaces unchanged; a failed transaction leaves no partial state.
func (s *VaultService) CreateCredential(ctx context.Context, req CreateCredentialRequest) (*models.Credential, error) {
	if req.OwnerID == "" {
		return nil, vaulterr.Validation("owner id must not be empty")
	}
	if req.VaultKey == "" {
		return nil, vaulterr.Validation("key must not be empty")
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, vaulterr.Validation("url must not be empty")
	}
	if strings.TrimSpace(req.Login) == "" {
		return nil, vaulterr.Validation("login must not be empty")
	}
	if req.Secret == "" {
		return nil, vaulterr.Validation("password must not be empty")
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if !cryptox.VerifySecret(req.VaultKey, user.VaultKeyHash) {
		return nil, vaulterr.Validation("invalid key")
	}

	row := &models.Credential{
		OwnerID: req.OwnerID,
		URL:     strings.TrimSpace(req.URL),
		Login:   strings.TrimSpace(req.Login),
		Secret:  req.Secret,
		Label:   strings.TrimSpace(req.Label),
	}

	return s.insertCredential(ctx, row, req.VaultKey)
}

// GetOwnedCredential loads one row and decrypts login and secret with the
// supplied vault key. A wrong key surfaces as a crypto-kind error, distinct
// from not-found.
func (s *VaultService) GetOwnedCredential(ctx context.Context, id string, vaultKey string) (*models.Credential, error) {
	if id == "" {
		return nil, vaulterr.Validation("credential id must not be empty")
	}
	if vaultKey == "" {
		return nil, vaulterr.Validation("key must not be empty")
	}

	row, err := s.repos.Credentials(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := decryptCredential(row, vaultKey); err != nil {
		return nil, err
	}
	return row, nil
}

// ListOwnedCredentials returns the owner's originals with login and secret
// decrypted under the vault key. The first row that fails to decrypt aborts
// the whole call.
func (s *VaultService) ListOwnedCredentials(ctx context.Context, ownerID string, vaultKey string) ([]*models.Credential, error) {
	if ownerID == "" {
		return nil, vaulterr.Validation("owner id must not be empty")
	}
	if vaultKey == "" {
		return nil, vaulterr.Validation("key must not be empty")
	}

	rows, err := s.repos.Credentials(s.db).FindOwned(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := decryptCredential(row, vaultKey); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// ShareCredential runs the re-encryption protocol: decrypt the original
// under the owner's vault key, then persist a new row for the recipient
// re-encrypted under the system secret. Plaintext exists only between those
// two steps, inside this call. Nothing is written until every check has
// passed; repeating the call creates another independent copy.
func (s *VaultService) ShareCredential(ctx context.Context, req ShareCredentialRequest) (*models.Credential, error) {
	if req.OwnerID == "" {
		return nil, vaulterr.Validation("owner id must not be empty")
	}
	if req.VaultKey == "" {
		return nil, vaulterr.Validation("key must not be empty")
	}
	if req.RecipientEmail == "" {
		return nil, vaulterr.Validation("recipient email must not be empty")
	}
	if req.CredentialID == "" {
		return nil, vaulterr.Validation("credential id must not be empty")
	}

	email := strings.ToLower(strings.TrimSpace(req.RecipientEmail))
	recipient, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	original, err := s.repos.Credentials(s.db).FindByID(ctx, req.CredentialID)
	if err != nil {
		return nil, err
	}
	if err := decryptCredential(original, req.VaultKey); err != nil {
		return nil, err
	}

	if req.OwnerID == recipient.ID {
		return nil, vaulterr.Validation("owner cannot equal the share recipient")
	}

	copyRow := &models.Credential{
		OwnerID:    req.OwnerID,
		SharedToID: &recipient.ID,
		URL:        original.URL,
		Login:      original.Login,
		Secret:     original.Secret,
		Label:      original.Label,
	}

	return s.insertCredential(ctx, copyRow, s.systemSecret)
}

// ListShares returns the credentials the user shared out and the ones shared
// with them, both decrypted under the system secret.
func (s *VaultService) ListShares(ctx context.Context, ownerID string) (*ListSharesResult, error) {
	if ownerID == "" {
		return nil, vaulterr.Validation("owner id must not be empty")
	}

	repo := s.repos.Credentials(s.db)

	byOwner, err := repo.FindSharedByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	withOwner, err := repo.FindSharedWithUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, item := range byOwner {
		if err := decryptSharedCredential(item, s.systemSecret); err != nil {
			return nil, err
		}
	}
	for _, item := range withOwner {
		if err := decryptSharedCredential(item, s.systemSecret); err != nil {
			return nil, err
		}
	}

	return &ListSharesResult{SharedByOwner: byOwner, SharedWithOwner: withOwner}, nil
}

// insertCredential is the single write path for credential rows: the
// before-insert pipeline runs on the plaintext row, then the row is
// persisted inside one transaction. The key is whichever encryption domain
// the caller picked — the owner's vault key for originals, the system secret
// for shared copies.
func (s *VaultService) insertCredential(ctx context.Context, row *models.Credential, key string) (*models.Credential, error) {
	if err := beforeInsert(row, key); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repos.Credentials(tx).Insert(ctx, row)
		return err
	})
	if err != nil {
		return nil, err
	}

	return row, nil
}

// beforeInsert is the explicit, ordered pipeline applied to every credential
// row ahead of persistence: invariant checks, identifier assignment, then
// encryption of the sensitive fields in place.
func beforeInsert(row *models.Credential, key string) error {
	if row.OwnerID == "" {
		return vaulterr.Validation("owner id must not be empty")
	}
	if row.SharedToID != nil && *row.SharedToID == row.OwnerID {
		return vaulterr.Validation("owner cannot equal the share recipient")
	}

	row.ID = idgen.New(idgen.CredentialPrefix)

	encLogin, err := cryptox.Encrypt(row.Login, key)
	if err != nil {
		return err
	}
	encSecret, err := cryptox.Encrypt(row.Secret, key)
	if err != nil {
		return err
	}
	row.Login = encLogin
	row.Secret = encSecret

	return nil
}

// decryptCredential replaces the row's login and secret ciphertext with
// plaintext decrypted under key.
func decryptCredential(row *models.Credential, key string) error {
	login, err := cryptox.Decrypt(row.Login, key)
	if err != nil {
		return err
	}
	secret, err := cryptox.Decrypt(row.Secret, key)
	if err != nil {
		return err
	}
	row.Login = login
	row.Secret = secret
	return nil
}

func decryptSharedCredential(item *models.SharedCredential, key string) error {
	login, err := cryptox.Decrypt(item.Login, key)
	if err != nil {
		return err
	}
	secret, err := cryptox.Decrypt(item.Secret, key)
	if err != nil {
		return err
	}
	item.Login = login
	item.Secret = secret
	return nil
}
