package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/repository"
)

type ReclamationRepository struct {
	pool *pgxpool.Pool
}

func NewReclamationRepository(pool *pgxpool.Pool) *ReclamationRepository {
	return &ReclamationRepository{pool: pool}
}

const reclamationColumns = `id, name, email, message, COALESCE(response, ''), status, created_at`

func (r *ReclamationRepository) Create(ctx context.Context, rec *entity.Reclamation) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reclamations (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at
	`, rec.Name, rec.Email, rec.Message)
	return row.Scan(&rec.ID, &rec.Status, &rec.CreatedAt)
}

func (r *ReclamationRepository) GetByID(ctx context.Context, id string) (*entity.Reclamation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reclamationColumns+` FROM reclamations WHERE id = $1`, id)
	rec, err := scanReclamation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *ReclamationRepository) List(ctx context.Context, search string) ([]*entity.Reclamation, error) {
	query := `SELECT ` + reclamationColumns + ` FROM reclamations`
	args := []any{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1 OR message ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Reclamation{}
	for rows.Next() {
		rec, err := scanReclamation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Reply answers a complaint exactly once: the conditional update only matches
// while status is still unanswered.
func (r *ReclamationRepository) Reply(ctx context.Context, id string, response string) (*entity.Reclamation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reclamations
		SET response = $2, status = 'answered'
		WHERE id = $1 AND status = 'unanswered'
		RETURNING `+reclamationColumns, id, response)

	rec, err := scanReclamation(row)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if qErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM reclamations WHERE id = $1)`, id).Scan(&exists); qErr != nil {
		return nil, qErr
	}
	if exists {
		return nil, repository.ErrConflict
	}
	return nil, repository.ErrNotFound
}

func scanReclamation(row pgx.Row) (*entity.Reclamation, error) {
	rec := &entity.Reclamation{}
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Message,
		&rec.Response, &rec.Status, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

var _ repository.ReclamationRepository = (*ReclamationRepository)(nil)
