package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
)

func TestSubmitReclamation(t *testing.T) {
	store := newFakeReclamationRepo()
	svc := NewReclamationService(store, nil)

	r, err := svc.Submit(context.Background(), "  Leila Trabelsi ", "leila@example.tn", " Mon virement n'est pas passé. ")
	require.NoError(t, err)
	assert.Equal(t, "Leila Trabelsi", r.Name)
	assert.Equal(t, "Mon virement n'est pas passé.", r.Message)
	assert.Equal(t, entity.ReclamationUnanswered, r.Status)
	assert.NotEmpty(t, r.ID)
}

func TestReplyOnce(t *testing.T) {
	store := newFakeReclamationRepo()
	svc := NewReclamationService(store, nil)

	r, err := svc.Submit(context.Background(), "Leila", "leila@example.tn", "Problème de virement")
	require.NoError(t, err)

	answered, err := svc.Reply(context.Background(), r.ID, "Le virement a été retraité.")
	require.NoError(t, err)
	assert.Equal(t, entity.ReclamationAnswered, answered.Status)
	assert.Equal(t, "Le virement a été retraité.", answered.Response)

	_, err = svc.Reply(context.Background(), r.ID, "Deuxième réponse")
	assert.ErrorIs(t, err, repo.ErrConflict)
}

func TestReplyValidation(t *testing.T) {
	store := newFakeReclamationRepo()
	svc := NewReclamationService(store, nil)

	_, err := svc.Reply(context.Background(), "rec-1", "   ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = svc.Reply(context.Background(), "no-such-id", "réponse")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListReclamationsSearch(t *testing.T) {
	store := newFakeReclamationRepo()
	svc := NewReclamationService(store, nil)

	_, err := svc.Submit(context.Background(), "Leila Trabelsi", "leila@example.tn", "Virement")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "Ahmed Ben Salah", "ahmed@example.tn", "Carte bloquée")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.List(context.Background(), "leila")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Leila Trabelsi", found[0].Name)
}
