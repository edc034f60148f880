package pricing

import (
	"fmt"
	"math"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// Per-type pricing rules: margin over the market reference rate (TMM) and
// the amount/term windows the product is sold with.
type Terms struct {
	Margin      float64 // added to TMM, annual percent
	MaxAmount   float64
	MinDuration int // months
	MaxDuration int
}

const insuranceAnnualRate = 0.005 // flat insurance premium, 0.5% of principal per year

var termsByType = map[entity.CreditType]Terms{
	entity.CreditConsommation: {Margin: 5, MaxAmount: 30000, MinDuration: 12, MaxDuration: 36},
	entity.CreditAmenagement:  {Margin: 4, MaxAmount: 20000, MinDuration: 37, MaxDuration: 84},
	entity.CreditOrdinateur:   {Margin: 3, MaxAmount: 2500, MinDuration: 12, MaxDuration: 36},
}

// TermsFor returns the product terms for a credit type.
func TermsFor(t entity.CreditType) (Terms, bool) {
	terms, ok := termsByType[t]
	return terms, ok
}

// AnnualRate returns the annual percent rate for a credit type given the
// market reference rate.
func AnnualRate(t entity.CreditType, referenceRate float64) (float64, error) {
	terms, ok := termsByType[t]
	if !ok {
		return 0, fmt.Errorf("unknown credit type %q", t)
	}
	return referenceRate + terms.Margin, nil
}

// MonthlyPayment computes the level monthly payment for a loan using the
// standard annuity formula, plus the flat monthly insurance premium, rounded
// to 2 decimals.
//
//	r = annualRatePercent/100/12
//	P = principal * (r*(1+r)^n) / ((1+r)^n - 1)
//
// A zero rate degenerates to straight-line principal/n.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	n := float64(termMonths)
	var base float64
	r := annualRatePercent / 100 / 12
	if r == 0 {
		base = principal / n
	} else {
		pow := math.Pow(1+r, n)
		base = principal * (r * pow) / (pow - 1)
	}
	insurance := principal * insuranceAnnualRate / 12
	return math.Round((base+insurance)*100) / 100
}

// Validate checks an amount/duration pair against the product terms.
func Validate(t entity.CreditType, amount float64, durationMonths int) error {
	terms, ok := termsByType[t]
	if !ok {
		return fmt.Errorf("unknown credit type %q", t)
	}
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	if amount > terms.MaxAmount {
		return fmt.Errorf("credit amount exceeds the %s maximum of %.0f", t, terms.MaxAmount)
	}
	if durationMonths < terms.MinDuration || durationMonths > terms.MaxDuration {
		return fmt.Errorf("duration must be between %d and %d months for %s", terms.MinDuration, terms.MaxDuration, t)
	}
	return nil
}

// DisplayName is the marketing label used on contracts and emails.
func DisplayName(t entity.CreditType) string {
	switch t {
	case entity.CreditConsommation:
		return "Crédit Consommation"
	case entity.CreditAmenagement:
		return "Crédit Aménagement"
	case entity.CreditOrdinateur:
		return "Crédit Ordinateur"
	default:
		return string(t)
	}
}
