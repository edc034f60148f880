package application

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/pricing"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/mailer"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingReason     = errors.New("rejection reason is required")
	ErrMissingDocuments  = errors.New("required documents are missing")
	ErrInvalidDraft      = errors.New("invalid application draft")
)

// Publisher enqueues JSON jobs. Satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// CreditService is the application lifecycle controller. It is the only
// component that mutates a CreditApplication after submission, and the only
// transitions it performs are pending->approved and pending->rejected.
type CreditService struct {
	Repo           repo.CreditRepository
	Pub            Publisher
	Logger         *logrus.Logger
	ES             *elasticsearch.Client
	ESCreditsIndex string
	ReferenceRate  float64 // TMM, annual percent
}

func NewCreditService(r repo.CreditRepository, pub Publisher, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, referenceRate float64) *CreditService {
	return &CreditService{
		Repo:           r,
		Pub:            pub,
		Logger:         logger,
		ES:             es,
		ESCreditsIndex: esIndex,
		ReferenceRate:  referenceRate,
	}
}

// SubmitResult pairs the stored application with the display-only reference
// number handed to the customer on the confirmation page.
type SubmitResult struct {
	Application *entity.CreditApplication
	Reference   string
}

// Submit validates a draft, prices it server-side, and persists it as pending.
// The submitted monthly payment is recomputed here; the client's simulation
// value is advisory only.
func (s *CreditService) Submit(ctx context.Context, draft *entity.CreditApplication) (*SubmitResult, error) {
	if err := pricing.Validate(draft.CreditType, draft.CreditAmount, draft.Duration); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	if err := validateSections(draft); err != nil {
		return nil, err
	}
	if missing := missingDocuments(draft.Documents); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingDocuments, strings.Join(missing, ", "))
	}

	rate, err := pricing.AnnualRate(draft.CreditType, s.ReferenceRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	draft.MonthlyPayment = pricing.MonthlyPayment(draft.CreditAmount, rate, draft.Duration)
	draft.Status = entity.StatusPending

	if err := s.Repo.Create(ctx, draft); err != nil {
		return nil, err
	}
	s.indexApplication(ctx, draft)

	ref, err := referenceNumber()
	if err != nil {
		// The reference is display-only; losing it is not worth failing the submission.
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("reference number generation failed")
		}
		ref = "BH-000000"
	}
	return &SubmitResult{Application: draft, Reference: ref}, nil
}

// StatusUpdate is the outcome of a SetStatus call. EmailQueued reports whether
// the approval notification job was accepted by the queue; the durable
// email_sent flag on the application flips only after the worker's send.
type StatusUpdate struct {
	Application *entity.CreditApplication
	EmailQueued bool
}

// SetStatus performs a terminal transition on a pending application. On
// approval it publishes the ApplicationApproved job after the write commits;
// a publish failure is logged and surfaced via EmailQueued=false, never rolled
// into the transition result.
func (s *CreditService) SetStatus(ctx context.Context, id string, status entity.CreditStatus, rejectionReason string) (*StatusUpdate, error) {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, ErrInvalidTransition
	}
	if status == entity.StatusRejected && strings.TrimSpace(rejectionReason) == "" {
		return nil, ErrMissingReason
	}
	if status == entity.StatusApproved {
		rejectionReason = ""
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, status, rejectionReason)
	if err != nil {
		return nil, err
	}
	s.indexApplication(ctx, updated)

	res := &StatusUpdate{Application: updated}
	if status == entity.StatusApproved {
		res.EmailQueued = s.enqueueApprovalEmail(ctx, updated)
	}
	return res, nil
}

// ResendApprovalEmail re-enqueues the approval job for an already-approved
// application (the admin retry action after a failed send).
func (s *CreditService) ResendApprovalEmail(ctx context.Context, id string) (*entity.CreditApplication, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != entity.StatusApproved {
		return nil, ErrInvalidTransition
	}
	if !s.enqueueApprovalEmail(ctx, a) {
		return nil, errors.New("failed to enqueue approval email")
	}
	return a, nil
}

func (s *CreditService) Get(ctx context.Context, id string) (*entity.CreditApplication, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CreditService) List(ctx context.Context, f repo.CreditFilter) ([]*entity.CreditApplication, error) {
	return s.Repo.List(ctx, f)
}

// ListByCIN returns the customer's applications; an empty set is ErrNotFound
// so the API can answer 404 the way the legacy endpoint did.
func (s *CreditService) ListByCIN(ctx context.Context, cin string) ([]*entity.CreditApplication, error) {
	apps, err := s.Repo.ListByCIN(ctx, cin)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, repo.ErrNotFound
	}
	return apps, nil
}

func (s *CreditService) TrackContract(ctx context.Context, id string, status entity.ContractStatus) error {
	switch status {
	case entity.ContractSent, entity.ContractViewed, entity.ContractSigned, entity.ContractRejected:
	default:
		return ErrInvalidTransition
	}
	return s.Repo.UpdateContractStatus(ctx, id, status)
}

func (s *CreditService) enqueueApprovalEmail(ctx context.Context, a *entity.CreditApplication) bool {
	if s.Pub == nil {
		return false
	}
	job := mailer.ApprovalEmailJob{
		ApplicationID:  a.ID,
		RecipientEmail: a.Personal.Email,
		RecipientName:  a.ClientName(),
		CreditType:     string(a.CreditType),
		CreditAmount:   a.CreditAmount,
		Duration:       a.Duration,
		MonthlyPayment: a.MonthlyPayment,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("application_id", a.ID).Error("failed to enqueue approval email")
		}
		return false
	}
	return true
}

func validateSections(draft *entity.CreditApplication) error {
	p := draft.Personal
	if p.FirstName == "" || p.LastName == "" || p.CIN == "" || p.Email == "" {
		return fmt.Errorf("%w: incomplete personal section", ErrInvalidDraft)
	}
	if draft.Professional.Profession == "" {
		return fmt.Errorf("%w: incomplete professional section", ErrInvalidDraft)
	}
	if draft.Financial.MonthlyIncome <= 0 {
		return fmt.Errorf("%w: incomplete financial section", ErrInvalidDraft)
	}
	if draft.Agency.Governorate == "" || draft.Agency.Agency == "" {
		return fmt.Errorf("%w: incomplete agency section", ErrInvalidDraft)
	}
	return nil
}

// Minimum document set for submission: both ID faces, bank statements,
// income proof, residence proof. Tax declaration and business registry stay
// optional.
func missingDocuments(d entity.Documents) []string {
	required := []struct {
		name string
		url  string
	}{
		{"cinRecto", d.CINRecto},
		{"cinVerso", d.CINVerso},
		{"bankStatements", d.BankStatements},
		{"incomeProof", d.IncomeProof},
		{"residenceProof", d.ResidenceProof},
	}
	var missing []string
	for _, doc := range required {
		if strings.TrimSpace(doc.url) == "" {
			missing = append(missing, doc.name)
		}
	}
	return missing
}

// referenceNumber builds the display-only confirmation reference: BH- plus
// six random digits. Not persisted, not authoritative.
func referenceNumber() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("BH-%06d", 100000+n%900000), nil
}

func (s *CreditService) indexApplication(ctx context.Context, a *entity.CreditApplication) {
	if s.ES == nil || s.ESCreditsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":              a.ID,
		"credit_type":     a.CreditType,
		"credit_amount":   a.CreditAmount,
		"duration":        a.Duration,
		"monthly_payment": a.MonthlyPayment,
		"status":          a.Status,
		"first_name":      a.Personal.FirstName,
		"last_name":       a.Personal.LastName,
		"cin":             a.Personal.CIN,
		"email":           a.Personal.Email,
		"created_at":      a.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESCreditsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("application_id", a.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("application_id", a.ID).Warn("es index response error")
	}
}

// SearchApplications performs a multi_match full-text search over the admin
// index. Returns an empty slice when Elasticsearch is not configured.
func (s *CreditService) SearchApplications(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESCreditsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"cin^2", "email^2", "first_name", "last_name", "credit_type"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESCreditsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
