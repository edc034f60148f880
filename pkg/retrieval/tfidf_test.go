package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

func corpus() []entity.QAPair {
	return []entity.QAPair{
		{Question: "Comment ouvrir un compte bancaire ?", Answer: "Rendez-vous en agence avec votre CIN et un justificatif de domicile."},
		{Question: "Quels sont les types de crédit disponibles ?", Answer: "Crédit Consommation, Crédit Aménagement et Crédit Ordinateur."},
		{Question: "Comment contacter le service client ?", Answer: "Appelez le +216 71 126 000 ou utilisez le formulaire de contact."},
		{Question: "Quel est le montant maximum du crédit ordinateur ?", Answer: "Le crédit ordinateur est plafonné à 2500 DT."},
	}
}

func TestRetrieveBestOverlap(t *testing.T) {
	idx := NewIndex(corpus())

	answer, score := idx.Retrieve("comment ouvrir un compte")
	assert.Greater(t, score, 0.0)
	assert.Equal(t, "Rendez-vous en agence avec votre CIN et un justificatif de domicile.", answer)
}

func TestRetrieveRanksMostSimilarQuestion(t *testing.T) {
	idx := NewIndex(corpus())

	answer, _ := idx.Retrieve("montant maximum ordinateur")
	assert.Equal(t, "Le crédit ordinateur est plafonné à 2500 DT.", answer)
}

func TestRetrieveFallbackOnEmptyOverlap(t *testing.T) {
	idx := NewIndex(corpus())

	answer, score := idx.Retrieve("zzz xyzzy")
	assert.Zero(t, score)
	assert.Equal(t, FallbackAnswer, answer)

	answer, score = idx.Retrieve("")
	assert.Zero(t, score)
	assert.Equal(t, FallbackAnswer, answer)
}

func TestRetrieveDeterministic(t *testing.T) {
	idx := NewIndex(corpus())
	first, _ := idx.Retrieve("types de crédit")
	for i := 0; i < 10; i++ {
		got, _ := idx.Retrieve("types de crédit")
		assert.Equal(t, first, got)
	}
}

func TestRetrieveAnswerOneShot(t *testing.T) {
	assert.Equal(t, FallbackAnswer, RetrieveAnswer("rien de pertinent ici aaaa", nil))

	got := RetrieveAnswer("contacter le service client", corpus())
	assert.Equal(t, "Appelez le +216 71 126 000 ou utilisez le formulaire de contact.", got)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"comment", "ouvrir", "un", "compte"}, Tokenize("Comment ouvrir un compte ?"))
	assert.Equal(t, []string{"crédit", "2500", "dt"}, Tokenize("Crédit: 2500 DT!"))
	assert.Empty(t, Tokenize("  ...  "))
}
