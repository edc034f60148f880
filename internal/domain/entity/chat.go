package entity

import "time"

// ChatMessage is one question/answer exchange from the support widget.
// Records are append-only.
type ChatMessage struct {
	ID       string
	Question string
	Answer   string
	Date     time.Time
}

// QAPair is a corpus entry the retrieval engine matches user questions against.
type QAPair struct {
	ID       string
	Question string
	Answer   string
}
