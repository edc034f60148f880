package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/retrieval"
)

var ErrEmptyQuestion = errors.New("question text is required")

// ChatService answers support-widget questions from the QA corpus and records
// every exchange. The retrieval index is rebuilt from the corpus at most once
// per refresh interval; the corpus changes only through seeding or the admin
// AddQAPair, so staleness of a minute is acceptable.
type ChatService struct {
	Repo    repo.ChatRepository
	Logger  *logrus.Logger
	Refresh time.Duration

	mu      sync.Mutex
	index   *retrieval.Index
	builtAt time.Time
}

func NewChatService(r repo.ChatRepository, logger *logrus.Logger) *ChatService {
	return &ChatService{Repo: r, Logger: logger, Refresh: time.Minute}
}

// Ask retrieves the best-matching corpus answer for a question and records the
// exchange. Recording failures are logged, not surfaced; the user still gets
// their answer.
func (s *ChatService) Ask(ctx context.Context, question string) (*entity.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	idx, err := s.currentIndex(ctx)
	if err != nil {
		return nil, err
	}
	answer, _ := idx.Retrieve(question)

	m := &entity.ChatMessage{Question: question, Answer: answer, Date: time.Now().UTC()}
	if err := s.Repo.Record(ctx, m); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("failed to record chat exchange")
		}
	}
	return m, nil
}

// RecordExchange appends an exchange produced outside the retrieval path
// (the conversational widget records its own question/answer pairs).
func (s *ChatService) RecordExchange(ctx context.Context, question, answer string, date *time.Time) (*entity.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	m := &entity.ChatMessage{Question: question, Answer: answer}
	if date != nil {
		m.Date = *date
	}
	if err := s.Repo.Record(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Transcript lists recorded exchanges for the admin view, newest first.
func (s *ChatService) Transcript(ctx context.Context, limit, offset int) ([]*entity.ChatMessage, error) {
	return s.Repo.List(ctx, limit, offset)
}

// AddQAPair extends the corpus and invalidates the cached index.
func (s *ChatService) AddQAPair(ctx context.Context, question, answer string) (*entity.QAPair, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, ErrEmptyQuestion
	}
	q := &entity.QAPair{Question: question, Answer: answer}
	if err := s.Repo.AddQAPair(ctx, q); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
	return q, nil
}

func (s *ChatService) currentIndex(ctx context.Context) (*retrieval.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil && time.Since(s.builtAt) < s.Refresh {
		return s.index, nil
	}
	corpus, err := s.Repo.Corpus(ctx)
	if err != nil {
		if s.index != nil {
			// serve the stale index rather than failing the question
			return s.index, nil
		}
		return nil, err
	}
	s.index = retrieval.NewIndex(corpus)
	s.builtAt = time.Now()
	return s.index, nil
}
