// Package services contains the server-side business logic: the user
// signup/login flow and the vault operations over encrypted credentials.
package services

import (
	"context"
	"database/sql"
	"net/mail"
	"strings"
	"time"

	"github.com/avolkov/passvault/internal/cryptox"
	"github.com/avolkov/passvault/internal/idgen"
	"github.com/avolkov/passvault/internal/server/auth"
	"github.com/avolkov/passvault/internal/server/config"
	"github.com/avolkov/passvault/internal/server/models"
	"github.com/avolkov/passvault/internal/server/repositories/repomanager"
	"github.com/avolkov/passvault/internal/vaulterr"
)

// Vault keys are user-chosen; the accepted length is bounded so they stay
// memorable without being trivially guessable.
const (
	minVaultKeyLen = 6
	maxVaultKeyLen = 10
)

// UserService handles registration and login. The vault key is hashed
// exactly once here, at signup; nothing ever updates it afterwards.
type UserService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	hashCost      int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repos:         repos,
		jwtSecret:     []byte(cfg.JWTSecret),
		tokenValidity: cfg.TokenValidityDuration,
		hashCost:      cfg.HashCost,
	}
}

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	VaultKey  string
}

// Register creates a new user: names and email are trimmed and lower-cased,
// the login password and the vault key are bcrypt-hashed independently.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	firstName := strings.ToLower(strings.TrimSpace(req.FirstName))
	lastName := strings.ToLower(strings.TrimSpace(req.LastName))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	switch {
	case firstName == "":
		return nil, vaulterr.Validation("first name must not be empty")
	case lastName == "":
		return nil, vaulterr.Validation("last name must not be empty")
	case email == "":
		return nil, vaulterr.Validation("email must not be empty")
	case req.Password == "":
		return nil, vaulterr.Validation("password must not be empty")
	case req.VaultKey == "":
		return nil, vaulterr.Validation("key must not be empty")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, vaulterr.Validation("email is not a valid address")
	}
	if len(req.VaultKey) < minVaultKeyLen || len(req.VaultKey) > maxVaultKeyLen {
		return nil, vaulterr.Validation("key does not meet length requirement. key must be 6 to 10 characters!")
	}

	passwordHash, err := cryptox.HashSecretCost(req.Password, s.hashCost)
	if err != nil {
		return nil, err
	}
	vaultKeyHash, err := cryptox.HashSecretCost(req.VaultKey, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           idgen.New(idgen.UserPrefix),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		VaultKeyHash: vaultKeyHash,
	}

	return s.repos.Users(s.db).Create(ctx, user)
}

// Login verifies email+password and mints a signed token carrying the user
// id. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, vaulterr.Validation("email and password must not be empty")
	}

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if vaulterr.IsKind(err, vaulterr.KindNotFound) {
			return "", nil, vaulterr.Unauthorized("invalid email or password")
		}
		return "", nil, err
	}

	if !cryptox.VerifySecret(password, user.PasswordHash) {
		return "", nil, vaulterr.Unauthorized("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, vaulterr.Validation("user id must not be empty")
	}
	user, err := s.repos.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
