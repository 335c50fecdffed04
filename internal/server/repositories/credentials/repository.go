package credentials

import (
	"context"

	"github.com/avolkov/passvault/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, row *models.Credential) (*models.Credential, error)
	FindByID(ctx context.Context, id string) (*models.Credential, error)
	FindOwned(ctx context.Context, ownerID string) ([]*models.Credential, error)
	FindSharedByOwner(ctx context.Context, ownerID string) ([]*models.SharedCredential, error)
	FindSharedWithUser(ctx context.Context, userID string) ([]*models.SharedCredential, error)
}
