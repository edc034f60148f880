// Package contract renders the fixed-layout credit contract PDF attached to
// approval emails. Rendering is pure: same input and issue date produce the
// same bytes.
package contract

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/pricing"
)

// Fixed commercial labels printed on every contract.
const (
	annualRateLabel  = "8.5%"
	processingFeePct = 0.01
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Data is the application snapshot a contract is rendered from.
type Data struct {
	RecipientName  string
	CreditType     entity.CreditType
	CreditAmount   float64
	Duration       int // months
	MonthlyPayment float64
	IssueDate      time.Time
}

func frenchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// Render produces the contract PDF. Layout is fixed: title, issue date, client
// block, six credit detail lines, five general-condition clauses, and a
// two-party signature section with a framed box for the client.
func Render(d Data) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCreationDate(d.IssueDate)
	pdf.SetModificationDate(d.IssueDate)
	pdf.SetCompression(false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageH := pdf.GetPageSize()
	left := 50.0

	heading := func(y float64, text string) {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(0, 102, 179)
		pdf.Text(left, y, tr(text))
		pdf.SetTextColor(0, 0, 0)
	}
	line := func(y float64, size float64, text string) {
		pdf.SetFont("Helvetica", "", size)
		pdf.Text(left, y, tr(text))
	}

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 102, 179)
	pdf.Text(left, 50, tr("CONTRAT DE CRÉDIT"))
	pdf.SetTextColor(0, 0, 0)

	line(80, 12, "Date: "+frenchDate(d.IssueDate))

	heading(120, "INFORMATIONS DU CLIENT")
	line(150, 12, "Nom et prénom: "+d.RecipientName)

	heading(190, "DÉTAILS DU CRÉDIT")
	details := []string{
		"Type de crédit: " + pricing.DisplayName(d.CreditType),
		fmt.Sprintf("Montant du crédit: %.2f DT", d.CreditAmount),
		fmt.Sprintf("Durée du crédit: %d mois", d.Duration),
		fmt.Sprintf("Mensualité: %.2f DT/mois", d.MonthlyPayment),
		"Taux d'intérêt annuel: " + annualRateLabel,
		fmt.Sprintf("Frais de dossier: %.2f DT", d.CreditAmount*processingFeePct),
	}
	for i, detail := range details {
		line(220+float64(i)*25, 12, detail)
	}

	heading(400, "CONDITIONS GÉNÉRALES")
	conditions := []string{
		"1. Le présent contrat est soumis aux conditions générales de la BH Bank.",
		"2. Le client s'engage à rembourser le crédit selon les modalités définies ci-dessus.",
		"3. En cas de retard de paiement, des pénalités seront appliquées conformément à la réglementation en vigueur.",
		"4. Le client peut rembourser par anticipation tout ou partie du crédit moyennant le paiement d'une indemnité.",
		"5. La BH Bank se réserve le droit de résilier le contrat en cas de non-respect des engagements du client.",
	}
	for i, condition := range conditions {
		line(430+float64(i)*25, 10, condition)
	}

	heading(600, "SIGNATURES")
	line(630, 12, "Pour la BH Bank:")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(300, 630, tr("Le client:"))

	// Frame for the client signature
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.Rect(300, 640, 200, 60, "D")

	// Footer
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.Text(220, pageH-30, tr("BH Bank - Tous droits réservés"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contract: %w", err)
	}
	return buf.Bytes(), nil
}
