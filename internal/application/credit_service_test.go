package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/pricing"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/mailer"
)

const testTMM = 7.25

func validDraft() *entity.CreditApplication {
	return &entity.CreditApplication{
		CreditType:   entity.CreditOrdinateur,
		CreditAmount: 2500,
		Duration:     36,
		Personal: entity.PersonalInfo{
			FirstName: "Ahmed",
			LastName:  "Ben Salah",
			CIN:       "12345678",
			Email:     "ahmed@example.tn",
		},
		Professional: entity.ProfessionalInfo{Profession: "Ingénieur"},
		Financial:    entity.FinancialInfo{MonthlyIncome: 2200},
		Agency:       entity.AgencyInfo{Governorate: "Tunis", Agency: "Agence Lafayette"},
		Documents: entity.Documents{
			CINRecto:       "https://storage.example/cin-recto.pdf",
			CINVerso:       "https://storage.example/cin-verso.pdf",
			BankStatements: "https://storage.example/releves.pdf",
			IncomeProof:    "https://storage.example/salaire.pdf",
			ResidenceProof: "https://storage.example/residence.pdf",
		},
	}
}

func newCreditService(r repo.CreditRepository, pub Publisher) *CreditService {
	return NewCreditService(r, pub, nil, nil, "", testTMM)
}

func TestSubmitStoresPendingWithServerSidePricing(t *testing.T) {
	store := newFakeCreditRepo()
	svc := newCreditService(store, &fakePublisher{})

	draft := validDraft()
	draft.MonthlyPayment = 1.23 // client-side value must be ignored

	res, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)

	rate, err := pricing.AnnualRate(entity.CreditOrdinateur, testTMM)
	require.NoError(t, err)
	want := pricing.MonthlyPayment(2500, rate, 36)

	assert.Equal(t, entity.StatusPending, res.Application.Status)
	assert.Equal(t, want, res.Application.MonthlyPayment)
	assert.True(t, strings.HasPrefix(res.Reference, "BH-"))
	assert.Len(t, res.Reference, 9)

	stored, err := store.GetByID(context.Background(), res.Application.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored.MonthlyPayment)
}

func TestSubmitRejectsOutOfPolicyDraft(t *testing.T) {
	svc := newCreditService(newFakeCreditRepo(), &fakePublisher{})

	draft := validDraft()
	draft.CreditAmount = 5000 // over the ORDINATEUR cap

	_, err := svc.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestSubmitRejectsMissingDocuments(t *testing.T) {
	svc := newCreditService(newFakeCreditRepo(), &fakePublisher{})

	draft := validDraft()
	draft.Documents.BankStatements = ""
	draft.Documents.ResidenceProof = "  "

	_, err := svc.Submit(context.Background(), draft)
	require.ErrorIs(t, err, ErrMissingDocuments)
	assert.Contains(t, err.Error(), "bankStatements")
	assert.Contains(t, err.Error(), "residenceProof")
}

func TestSubmitRejectsIncompleteSections(t *testing.T) {
	svc := newCreditService(newFakeCreditRepo(), &fakePublisher{})

	draft := validDraft()
	draft.Agency.Agency = ""

	_, err := svc.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestApproveEnqueuesEmailJob(t *testing.T) {
	store := newFakeCreditRepo()
	pub := &fakePublisher{}
	svc := newCreditService(store, pub)

	res, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	upd, err := svc.SetStatus(context.Background(), res.Application.ID, entity.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, upd.Application.Status)
	assert.True(t, upd.EmailQueued)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.ApprovalEmailJob)
	require.True(t, ok)
	assert.Equal(t, res.Application.ID, job.ApplicationID)
	assert.Equal(t, "ahmed@example.tn", job.RecipientEmail)
	assert.Equal(t, "Ahmed Ben Salah", job.RecipientName)
	assert.Equal(t, upd.Application.MonthlyPayment, job.MonthlyPayment)
}

func TestApproveSurvivesPublishFailure(t *testing.T) {
	store := newFakeCreditRepo()
	svc := newCreditService(store, &fakePublisher{err: errFakeDown})

	res, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	upd, err := svc.SetStatus(context.Background(), res.Application.ID, entity.StatusApproved, "")
	require.NoError(t, err)
	assert.False(t, upd.EmailQueued)

	stored, err := store.GetByID(context.Background(), res.Application.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, stored.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	store := newFakeCreditRepo()
	svc := newCreditService(store, &fakePublisher{})

	res, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), res.Application.ID, entity.StatusRejected, "   ")
	assert.ErrorIs(t, err, ErrMissingReason)

	upd, err := svc.SetStatus(context.Background(), res.Application.ID, entity.StatusRejected, "Revenus insuffisants")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, upd.Application.Status)
	assert.Equal(t, "Revenus insuffisants", upd.Application.RejectionReason)
	assert.False(t, upd.EmailQueued)
}

func TestSecondTransitionConflicts(t *testing.T) {
	store := newFakeCreditRepo()
	pub := &fakePublisher{}
	svc := newCreditService(store, pub)

	res, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), res.Application.ID, entity.StatusApproved, "")
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), res.Application.ID, entity.StatusRejected, "trop tard")
	assert.ErrorIs(t, err, repo.ErrConflict)
	assert.Len(t, pub.jobs, 1)
}

func TestSetStatusRejectsPendingTarget(t *testing.T) {
	svc := newCreditService(newFakeCreditRepo(), &fakePublisher{})

	_, err := svc.SetStatus(context.Background(), "whatever", entity.StatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestResendApprovalEmail(t *testing.T) {
	store := newFakeCreditRepo()
	pub := &fakePublisher{}
	svc := newCreditService(store, pub)

	res, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	// not approved yet: resend refused
	_, err = svc.ResendApprovalEmail(context.Background(), res.Application.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.SetStatus(context.Background(), res.Application.ID, entity.StatusApproved, "")
	require.NoError(t, err)

	_, err = svc.ResendApprovalEmail(context.Background(), res.Application.ID)
	require.NoError(t, err)
	assert.Len(t, pub.jobs, 2)
}

func TestListByCINEmptyIsNotFound(t *testing.T) {
	svc := newCreditService(newFakeCreditRepo(), &fakePublisher{})

	_, err := svc.ListByCIN(context.Background(), "00000000")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTrackContractValidatesStatus(t *testing.T) {
	store := newFakeCreditRepo()
	svc := newCreditService(store, &fakePublisher{})

	res, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	err = svc.TrackContract(context.Background(), res.Application.ID, entity.ContractStatus("lost"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, svc.TrackContract(context.Background(), res.Application.ID, entity.ContractSigned))
	stored, err := store.GetByID(context.Background(), res.Application.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ContractSigned, stored.ContractStatus)
}
