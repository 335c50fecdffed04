package httpapi

import (
	"context"

	"github.com/avolkov/passvault/internal/server/models"
	"github.com/avolkov/passvault/internal/server/services"
)

// UserProvider is the slice of the user service the transport needs.
type UserProvider interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email string, password string) (string, *models.User, error)
}

// VaultProvider is the slice of the vault service the transport needs.
type VaultProvider interface {
	CreateCredential(ctx context.Context, req services.CreateCredentialRequest) (*models.Credential, error)
	ListOwnedCredentials(ctx context.Context, ownerID string, vaultKey string) ([]*models.Credential, error)
	ShareCredential(ctx context.Context, req services.ShareCredentialRequest) (*models.Credential, error)
	ListShares(ctx context.Context, ownerID string) (*services.ListSharesResult, error)
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Key       string `json:"key"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type savePasswordRequest struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Label    string `json:"label"`
}

type listSavedPasswordsRequest struct {
	Key string `json:"key"`
}

type sharePasswordRequest struct {
	Key           string `json:"key"`
	SharedToEmail string `json:"sharedToEmail"`
	PasswordID    string `json:"passwordId"`
}

type credentialBody struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Login      string `json:"login"`
	Secret     string `json:"password"`
	Label      string `json:"label"`
	SharedToID string `json:"sharedToId,omitempty"`
}

type sharedCredentialBody struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	Login          string `json:"login"`
	Secret         string `json:"password"`
	Label          string `json:"label"`
	OwnerEmail     string `json:"ownerEmail,omitempty"`
	RecipientEmail string `json:"sharedToEmail,omitempty"`
}

type listSharesBody struct {
	SharedByOwner   []sharedCredentialBody `json:"sharedByOwner"`
	SharedWithOwner []sharedCredentialBody `json:"sharedWithOwner"`
}

func toCredentialBody(c *models.Credential) credentialBody {
	body := credentialBody{
		ID:     c.ID,
		URL:    c.URL,
		Login:  c.Login,
		Secret: c.Secret,
		Label:  c.Label,
	}
	if c.SharedToID != nil {
		body.SharedToID = *c.SharedToID
	}
	return body
}

func toSharedCredentialBodies(items []*models.SharedCredential) []sharedCredentialBody {
	result := make([]sharedCredentialBody, 0, len(items))
	for _, item := range items {
		result = append(result, sharedCredentialBody{
			ID:             item.ID,
			URL:            item.URL,
			Login:          item.Login,
			Secret:         item.Secret,
			Label:          item.Label,
			OwnerEmail:     item.OwnerEmail,
			RecipientEmail: item.RecipientEmail,
		})
	}
	return result
}
