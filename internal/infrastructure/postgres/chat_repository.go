package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/repository"
)

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) Record(ctx context.Context, m *entity.ChatMessage) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (question, answer, date)
		VALUES ($1, $2, COALESCE($3, now()))
		RETURNING id, date
	`, m.Question, m.Answer, nullableTime(m.Date))
	return row.Scan(&m.ID, &m.Date)
}

func (r *ChatRepository) List(ctx context.Context, limit, offset int) ([]*entity.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, answer, date
		FROM chat_messages
		ORDER BY date DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.ChatMessage{}
	for rows.Next() {
		m := &entity.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.Question, &m.Answer, &m.Date); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ChatRepository) Corpus(ctx context.Context) ([]entity.QAPair, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, question, answer FROM chat_corpus ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.QAPair{}
	for rows.Next() {
		var qa entity.QAPair
		if err := rows.Scan(&qa.ID, &qa.Question, &qa.Answer); err != nil {
			return nil, err
		}
		out = append(out, qa)
	}
	return out, rows.Err()
}

func (r *ChatRepository) AddQAPair(ctx context.Context, q *entity.QAPair) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO chat_corpus (question, answer)
		VALUES ($1, $2)
		ON CONFLICT (question) DO UPDATE SET answer = EXCLUDED.answer
		RETURNING id
	`, q.Question, q.Answer)
	return row.Scan(&q.ID)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

var _ repository.ChatRepository = (*ChatRepository)(nil)
