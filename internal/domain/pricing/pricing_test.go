package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// closed-form annuity + insurance, unrounded
func annuity(principal, annualRate float64, months int) float64 {
	r := annualRate / 100 / 12
	n := float64(months)
	pow := math.Pow(1+r, n)
	return principal*(r*pow)/(pow-1) + principal*0.005/12
}

func TestMonthlyPaymentMatchesAnnuityFormula(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"consommation mid-range", 10000, 12.25, 24},
		{"amenagement long", 20000, 11.25, 84},
		{"small principal", 1000, 10.25, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthlyPayment(tc.principal, tc.rate, tc.months)
			want := annuity(tc.principal, tc.rate, tc.months)
			assert.InDelta(t, want, got, 0.005, "rounded to cents")
		})
	}
}

func TestMonthlyPaymentZeroRate(t *testing.T) {
	// r=0 must not divide by zero; straight-line plus insurance
	got := MonthlyPayment(1200, 0, 12)
	want := 1200.0/12 + 1200*0.005/12
	assert.InDelta(t, want, got, 0.005)
}

func TestMonthlyPaymentOrdinateurScenario(t *testing.T) {
	// ORDINATEUR at the amount cap over the longest term, TMM 7.25 + 3
	rate, err := AnnualRate(entity.CreditOrdinateur, 7.25)
	require.NoError(t, err)
	assert.Equal(t, 10.25, rate)

	got := MonthlyPayment(2500, rate, 36)
	want := annuity(2500, rate, 36)
	assert.InDelta(t, want, got, 0.005)
}

func TestMonthlyPaymentZeroTerm(t *testing.T) {
	assert.Zero(t, MonthlyPayment(1000, 10, 0))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		typ      entity.CreditType
		amount   float64
		duration int
		wantErr  bool
	}{
		{"ordinateur at cap", entity.CreditOrdinateur, 2500, 36, false},
		{"ordinateur over cap", entity.CreditOrdinateur, 2501, 36, true},
		{"consommation ok", entity.CreditConsommation, 30000, 12, false},
		{"consommation term too long", entity.CreditConsommation, 5000, 37, true},
		{"amenagement ok", entity.CreditAmenagement, 20000, 84, false},
		{"amenagement term too short", entity.CreditAmenagement, 20000, 36, true},
		{"negative amount", entity.CreditConsommation, -1, 12, true},
		{"unknown type", entity.CreditType("IMMOBILIER"), 1000, 12, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.typ, tc.amount, tc.duration)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnnualRateMargins(t *testing.T) {
	for typ, margin := range map[entity.CreditType]float64{
		entity.CreditConsommation: 5,
		entity.CreditAmenagement:  4,
		entity.CreditOrdinateur:   3,
	} {
		rate, err := AnnualRate(typ, 7.25)
		require.NoError(t, err)
		assert.Equal(t, 7.25+margin, rate)
	}

	_, err := AnnualRate(entity.CreditType("IMMOBILIER"), 7.25)
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Crédit Ordinateur", DisplayName(entity.CreditOrdinateur))
	assert.Equal(t, "AUTRE", DisplayName(entity.CreditType("AUTRE")))
}
