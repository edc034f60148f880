package mailer

// ApprovalEmailJob is the JSON payload put on the RabbitMQ queue after a
// credit application is approved. The worker renders the contract PDF and the
// HTML body from this snapshot, so a send can be retried without re-reading
// the application.
type ApprovalEmailJob struct {
	ApplicationID  string  `json:"application_id"`
	RecipientEmail string  `json:"recipient_email"`
	RecipientName  string  `json:"recipient_name"`
	CreditType     string  `json:"credit_type"`
	CreditAmount   float64 `json:"credit_amount"`
	Duration       int     `json:"duration"`
	MonthlyPayment float64 `json:"monthly_payment"`
}
