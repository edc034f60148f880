package repository

import (
	"context"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// ReclamationRepository defines the interface for the complaint store.
// Reply is conditional on status=unanswered, mirroring the credit status update.
type ReclamationRepository interface {
	Create(ctx context.Context, r *entity.Reclamation) error
	GetByID(ctx context.Context, id string) (*entity.Reclamation, error)
	List(ctx context.Context, search string) ([]*entity.Reclamation, error)
	Reply(ctx context.Context, id string, response string) (*entity.Reclamation, error)
}
