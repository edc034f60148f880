package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/repository"
)

// CreditRepository stores applications with the wizard sections as JSONB.
// Status transitions go through a conditional UPDATE keyed on status='pending'
// so concurrent transitions cannot both win.
type CreditRepository struct {
	pool *pgxpool.Pool
}

func NewCreditRepository(pool *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{pool: pool}
}

const creditColumns = `
	id, credit_type, credit_amount, duration, monthly_payment,
	personal_info, professional_info, financial_info, agency_info, documents,
	status, COALESCE(rejection_reason, ''), email_sent, email_sent_date,
	contract_status, contract_updated_at, created_at`

func (r *CreditRepository) Create(ctx context.Context, a *entity.CreditApplication) error {
	personal, err := json.Marshal(a.Personal)
	if err != nil {
		return err
	}
	professional, err := json.Marshal(a.Professional)
	if err != nil {
		return err
	}
	financial, err := json.Marshal(a.Financial)
	if err != nil {
		return err
	}
	agency, err := json.Marshal(a.Agency)
	if err != nil {
		return err
	}
	documents, err := json.Marshal(a.Documents)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO credits (
			credit_type, credit_amount, duration, monthly_payment,
			personal_info, professional_info, financial_info, agency_info, documents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, contract_status, created_at
	`, a.CreditType, a.CreditAmount, a.Duration, a.MonthlyPayment,
		personal, professional, financial, agency, documents)

	return row.Scan(&a.ID, &a.Status, &a.ContractStatus, &a.CreatedAt)
}

func (r *CreditRepository) GetByID(ctx context.Context, id string) (*entity.CreditApplication, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+creditColumns+` FROM credits WHERE id = $1`, id)
	a, err := scanCredit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *CreditRepository) List(ctx context.Context, f repository.CreditFilter) ([]*entity.CreditApplication, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE 1=1`
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (
			id::text ILIKE $%d OR credit_type ILIKE $%d
			OR personal_info->>'firstName' ILIKE $%d
			OR personal_info->>'lastName' ILIKE $%d
			OR personal_info->>'cin' ILIKE $%d
			OR personal_info->>'email' ILIKE $%d
		)`, n, n, n, n, n, n)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCredits(rows)
}

func (r *CreditRepository) ListByCIN(ctx context.Context, cin string) ([]*entity.CreditApplication, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+creditColumns+` FROM credits
		WHERE personal_info->>'cin' = $1
		ORDER BY created_at DESC
	`, cin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCredits(rows)
}

// UpdateStatus is the optimistic-concurrency write: the row must still be
// pending at write time. The losing racer gets ErrConflict; a missing row
// gets ErrNotFound.
func (r *CreditRepository) UpdateStatus(ctx context.Context, id string, status entity.CreditStatus, rejectionReason string) (*entity.CreditApplication, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE credits
		SET status = $2, rejection_reason = NULLIF($3, '')
		WHERE id = $1 AND status = 'pending'
		RETURNING `+creditColumns, id, status, rejectionReason)

	a, err := scanCredit(row)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Disambiguate: row gone vs row no longer pending.
	var exists bool
	if qErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM credits WHERE id = $1)`, id).Scan(&exists); qErr != nil {
		return nil, qErr
	}
	if exists {
		return nil, repository.ErrConflict
	}
	return nil, repository.ErrNotFound
}

func (r *CreditRepository) MarkEmailSent(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE credits
		SET email_sent = TRUE, email_sent_date = now(), contract_status = 'sent', contract_updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CreditRepository) UpdateContractStatus(ctx context.Context, id string, status entity.ContractStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE credits
		SET contract_status = $2, contract_updated_at = now()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanCredit(row pgx.Row) (*entity.CreditApplication, error) {
	a := &entity.CreditApplication{}
	var personal, professional, financial, agency, documents []byte
	if err := row.Scan(
		&a.ID, &a.CreditType, &a.CreditAmount, &a.Duration, &a.MonthlyPayment,
		&personal, &professional, &financial, &agency, &documents,
		&a.Status, &a.RejectionReason, &a.EmailSent, &a.EmailSentDate,
		&a.ContractStatus, &a.ContractUpdated, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		raw []byte
		dst any
	}{
		{personal, &a.Personal},
		{professional, &a.Professional},
		{financial, &a.Financial},
		{agency, &a.Agency},
		{documents, &a.Documents},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func collectCredits(rows pgx.Rows) ([]*entity.CreditApplication, error) {
	out := []*entity.CreditApplication{}
	for rows.Next() {
		a, err := scanCredit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.CreditRepository = (*CreditRepository)(nil)
