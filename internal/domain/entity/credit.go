package entity

import "time"

// CreditType identifies the product a credit application is for.
type CreditType string

const (
	CreditConsommation CreditType = "CONSOMMATION"
	CreditAmenagement  CreditType = "AMENAGEMENT"
	CreditOrdinateur   CreditType = "ORDINATEUR"
)

// CreditStatus is the application lifecycle state.
// pending is the only non-terminal state; approved and rejected are terminal.
type CreditStatus string

const (
	StatusPending  CreditStatus = "pending"
	StatusApproved CreditStatus = "approved"
	StatusRejected CreditStatus = "rejected"
)

// ContractStatus tracks what the client did with the emailed contract.
type ContractStatus string

const (
	ContractSent     ContractStatus = "sent"
	ContractViewed   ContractStatus = "viewed"
	ContractSigned   ContractStatus = "signed"
	ContractRejected ContractStatus = "rejected"
)

type PersonalInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CIN         string `json:"cin"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
}

type ProfessionalInfo struct {
	Profession   string `json:"profession"`
	Company      string `json:"company"`
	ContractType string `json:"contractType"`
	Seniority    string `json:"seniority"`
}

type FinancialInfo struct {
	MonthlyIncome   float64 `json:"monthlyIncome"`
	OtherIncome     float64 `json:"otherIncome"`
	LoanAmount      float64 `json:"loanAmount"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
}

type AgencyInfo struct {
	Governorate string `json:"governorate"`
	City        string `json:"city"`
	Agency      string `json:"agency"`
}

// Documents holds object-storage URLs for the uploaded supporting files.
// Empty string means not provided.
type Documents struct {
	CINRecto         string `json:"cinRecto"`
	CINVerso         string `json:"cinVerso"`
	BankStatements   string `json:"bankStatements"`
	TaxDeclaration   string `json:"taxDeclaration"`
	IncomeProof      string `json:"incomeProof"`
	BusinessRegistry string `json:"businessRegistry"`
	ResidenceProof   string `json:"residenceProof"`
}

// CreditApplication is the aggregate root for the credit application store.
// Only the credit service mutates it after creation, and only through the
// conditional status update.
type CreditApplication struct {
	ID              string
	CreditType      CreditType
	CreditAmount    float64
	Duration        int // months
	MonthlyPayment  float64
	Personal        PersonalInfo
	Professional    ProfessionalInfo
	Financial       FinancialInfo
	Agency          AgencyInfo
	Documents       Documents
	Status          CreditStatus
	RejectionReason string
	EmailSent       bool
	EmailSentDate   *time.Time
	ContractStatus  ContractStatus
	ContractUpdated *time.Time
	CreatedAt       time.Time
}

// ClientName is the "First Last" form used on contracts and emails.
func (a *CreditApplication) ClientName() string {
	return a.Personal.FirstName + " " + a.Personal.LastName
}
