package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
)

var ErrEmptyResponse = errors.New("response text is required")

// ReclamationService handles the public complaint form and the admin reply.
type ReclamationService struct {
	Repo   repo.ReclamationRepository
	Logger *logrus.Logger
}

func NewReclamationService(r repo.ReclamationRepository, logger *logrus.Logger) *ReclamationService {
	return &ReclamationService{Repo: r, Logger: logger}
}

// Submit stores a new complaint as unanswered.
func (s *ReclamationService) Submit(ctx context.Context, name, email, message string) (*entity.Reclamation, error) {
	r := &entity.Reclamation{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
		Status:  entity.ReclamationUnanswered,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReclamationService) List(ctx context.Context, search string) ([]*entity.Reclamation, error) {
	return s.Repo.List(ctx, strings.TrimSpace(search))
}

func (s *ReclamationService) Get(ctx context.Context, id string) (*entity.Reclamation, error) {
	return s.Repo.GetByID(ctx, id)
}

// Reply answers a complaint exactly once. A second reply to the same
// complaint loses the conditional update and comes back as ErrConflict.
func (s *ReclamationService) Reply(ctx context.Context, id, response string) (*entity.Reclamation, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, ErrEmptyResponse
	}
	r, err := s.Repo.Reply(ctx, id, response)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("reclamation_id", r.ID).Info("reclamation answered")
	}
	return r, nil
}
