package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/pkg/retrieval"
)

func frenchCorpus() []entity.QAPair {
	return []entity.QAPair{
		{ID: "1", Question: "Quels sont les types de crédit disponibles ?", Answer: "Nous proposons le crédit consommation, aménagement et ordinateur."},
		{ID: "2", Question: "Comment suivre ma demande de crédit ?", Answer: "Connectez-vous à votre espace client pour suivre votre demande."},
		{ID: "3", Question: "Quels documents dois-je fournir ?", Answer: "CIN recto/verso, relevés bancaires, justificatifs de revenus et de résidence."},
	}
}

func TestAskAnswersFromCorpusAndRecords(t *testing.T) {
	store := &fakeChatRepo{corpus: frenchCorpus()}
	svc := NewChatService(store, nil)

	msg, err := svc.Ask(context.Background(), "quels documents fournir pour ma demande ?")
	require.NoError(t, err)
	assert.Contains(t, msg.Answer, "relevés bancaires")

	require.Len(t, store.messages, 1)
	assert.Equal(t, msg.Answer, store.messages[0].Answer)
	assert.False(t, store.messages[0].Date.IsZero())
}

func TestAskFallsBackWhenNothingMatches(t *testing.T) {
	store := &fakeChatRepo{corpus: frenchCorpus()}
	svc := NewChatService(store, nil)

	msg, err := svc.Ask(context.Background(), "zzzz xxxx")
	require.NoError(t, err)
	assert.Equal(t, retrieval.FallbackAnswer, msg.Answer)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := NewChatService(&fakeChatRepo{}, nil)

	_, err := svc.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAskSurvivesRecordFailure(t *testing.T) {
	store := &fakeChatRepo{corpus: frenchCorpus(), recordErr: errFakeDown}
	svc := NewChatService(store, nil)

	msg, err := svc.Ask(context.Background(), "comment suivre ma demande ?")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Answer)
}

func TestAskServesStaleIndexWhenCorpusUnavailable(t *testing.T) {
	store := &fakeChatRepo{corpus: frenchCorpus()}
	svc := NewChatService(store, nil)

	_, err := svc.Ask(context.Background(), "types de crédit ?")
	require.NoError(t, err)

	store.corpusErr = errFakeDown
	svc.Refresh = 0 // force a rebuild attempt on the next call

	msg, err := svc.Ask(context.Background(), "types de crédit ?")
	require.NoError(t, err)
	assert.Contains(t, msg.Answer, "consommation")
}

func TestAddQAPairInvalidatesIndex(t *testing.T) {
	store := &fakeChatRepo{corpus: frenchCorpus()}
	svc := NewChatService(store, nil)

	msg, err := svc.Ask(context.Background(), "quel est le taux d'intérêt appliqué ?")
	require.NoError(t, err)
	assert.Equal(t, retrieval.FallbackAnswer, msg.Answer)

	_, err = svc.AddQAPair(context.Background(), "Quel est le taux d'intérêt appliqué ?", "Le taux dépend du type de crédit et du TMM en vigueur.")
	require.NoError(t, err)

	msg, err = svc.Ask(context.Background(), "quel est le taux d'intérêt appliqué ?")
	require.NoError(t, err)
	assert.Contains(t, msg.Answer, "TMM")
}

func TestTranscriptPaging(t *testing.T) {
	store := &fakeChatRepo{corpus: frenchCorpus()}
	svc := NewChatService(store, nil)

	for _, q := range []string{"question une ?", "question deux ?", "question trois ?"} {
		_, err := svc.Ask(context.Background(), q)
		require.NoError(t, err)
	}

	page, err := svc.Transcript(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.Transcript(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
