package repository

import (
	"context"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// CreditFilter narrows admin listings. Zero values mean "no constraint".
// Search matches case-insensitively against id, credit type and the
// applicant's first name, last name, CIN and email.
type CreditFilter struct {
	Status entity.CreditStatus
	Search string
}

// CreditRepository defines the interface for the credit application store.
//
// UpdateStatus is a conditional write: it succeeds only while the stored
// status is still pending, so two racing transitions cannot both win.
type CreditRepository interface {
	Create(ctx context.Context, a *entity.CreditApplication) error
	GetByID(ctx context.Context, id string) (*entity.CreditApplication, error)
	List(ctx context.Context, f CreditFilter) ([]*entity.CreditApplication, error)
	ListByCIN(ctx context.Context, cin string) ([]*entity.CreditApplication, error)
	UpdateStatus(ctx context.Context, id string, status entity.CreditStatus, rejectionReason string) (*entity.CreditApplication, error)
	MarkEmailSent(ctx context.Context, id string) error
	UpdateContractStatus(ctx context.Context, id string, status entity.ContractStatus) error
}
