package handlers

import (
	"time"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// Wire views. Field names follow the front-end wizard's camelCase payloads.

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CIN       string    `json:"cin"`
	RIB       string    `json:"rib"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		CIN:       u.CIN,
		RIB:       u.RIB,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
	}
}

type creditView struct {
	ID              string                  `json:"id"`
	CreditType      entity.CreditType       `json:"creditType"`
	CreditAmount    float64                 `json:"creditAmount"`
	Duration        int                     `json:"duration"`
	MonthlyPayment  float64                 `json:"monthlyPayment"`
	PersonalInfo    entity.PersonalInfo     `json:"personalInfo"`
	Professional    entity.ProfessionalInfo `json:"professionalInfo"`
	FinancialInfo   entity.FinancialInfo    `json:"financialInfo"`
	AgencyInfo      entity.AgencyInfo       `json:"agencyInfo"`
	Documents       entity.Documents        `json:"documents"`
	Status          entity.CreditStatus     `json:"status"`
	RejectionReason string                  `json:"rejectionReason,omitempty"`
	EmailSent       bool                    `json:"emailSent"`
	EmailSentDate   *time.Time              `json:"emailSentDate,omitempty"`
	ContractStatus  entity.ContractStatus   `json:"contractStatus,omitempty"`
	ContractUpdated *time.Time              `json:"contractUpdatedAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
}

func toCreditView(a *entity.CreditApplication) creditView {
	return creditView{
		ID:              a.ID,
		CreditType:      a.CreditType,
		CreditAmount:    a.CreditAmount,
		Duration:        a.Duration,
		MonthlyPayment:  a.MonthlyPayment,
		PersonalInfo:    a.Personal,
		Professional:    a.Professional,
		FinancialInfo:   a.Financial,
		AgencyInfo:      a.Agency,
		Documents:       a.Documents,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		EmailSent:       a.EmailSent,
		EmailSentDate:   a.EmailSentDate,
		ContractStatus:  a.ContractStatus,
		ContractUpdated: a.ContractUpdated,
		CreatedAt:       a.CreatedAt,
	}
}

func toCreditViews(apps []*entity.CreditApplication) []creditView {
	out := make([]creditView, 0, len(apps))
	for _, a := range apps {
		out = append(out, toCreditView(a))
	}
	return out
}

type reclamationView struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	Message   string                   `json:"message"`
	Response  string                   `json:"response,omitempty"`
	Status    entity.ReclamationStatus `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
}

func toReclamationView(r *entity.Reclamation) reclamationView {
	return reclamationView{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Message:   r.Message,
		Response:  r.Response,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func toReclamationViews(recs []*entity.Reclamation) []reclamationView {
	out := make([]reclamationView, 0, len(recs))
	for _, r := range recs {
		out = append(out, toReclamationView(r))
	}
	return out
}

type chatMessageView struct {
	ID       string    `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Date     time.Time `json:"date"`
}

func toChatViews(msgs []*entity.ChatMessage) []chatMessageView {
	out := make([]chatMessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chatMessageView{ID: m.ID, Question: m.Question, Answer: m.Answer, Date: m.Date})
	}
	return out
}
