package entity

import "time"

type ReclamationStatus string

const (
	ReclamationUnanswered ReclamationStatus = "unanswered"
	ReclamationAnswered   ReclamationStatus = "answered"
)

// Reclamation is a customer complaint from the public contact form.
// It is mutated at most once, by the admin reply.
type Reclamation struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Response  string
	Status    ReclamationStatus
	CreatedAt time.Time
}
