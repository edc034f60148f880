package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderApproval(t *testing.T) {
	html, err := RenderApproval(ApprovalData{
		RecipientName:  "Amine Ben Salah",
		CreditType:     "Crédit Ordinateur",
		CreditAmount:   2500,
		Duration:       36,
		MonthlyPayment: 81.97,
		Year:           2025,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Félicitations, Amine Ben Salah!")
	assert.Contains(t, html, "Crédit Ordinateur")
	assert.Contains(t, html, "2500.00 DT")
	assert.Contains(t, html, "36 mois")
	assert.Contains(t, html, "81.97 DT/mois")
	assert.Contains(t, html, "2025 BH Bank")
}

func TestRenderApprovalEscapesName(t *testing.T) {
	html, err := RenderApproval(ApprovalData{
		RecipientName: `<script>alert("x")</script>`,
		CreditType:    "Crédit Consommation",
		Year:          2025,
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderHTMLUnknownTemplate(t *testing.T) {
	_, err := RenderHTML("missing", nil)
	assert.Error(t, err)
}
