package repository

import (
	"context"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// ChatRepository persists support-widget transcripts and the QA corpus
// the retrieval engine answers from.
type ChatRepository interface {
	Record(ctx context.Context, m *entity.ChatMessage) error
	List(ctx context.Context, limit, offset int) ([]*entity.ChatMessage, error)
	Corpus(ctx context.Context) ([]entity.QAPair, error)
	AddQAPair(ctx context.Context, q *entity.QAPair) error
}
