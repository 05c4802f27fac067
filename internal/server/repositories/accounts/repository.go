package accounts

import (
	"context"

	"github.com/dmitrijs2005/userhub/internal/server/models"
)

// Repository is the persistence contract for account records. GetByEmail
// must reflect the latest committed write so uniqueness checks stay correct.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]*models.Account, error)
}
