package chat

import "time"

// Speaker attributes a turn to one side of the exchange. The values double
// as the role strings in the durable record.
type Speaker string

const (
	// SpeakerStudent marks a turn typed by the student.
	SpeakerStudent Speaker = "student"
	// SpeakerPatient marks a turn produced by the simulated patient.
	SpeakerPatient Speaker = "ai"
)

// Turn is one utterance in a chat exchange.
type Turn struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the ordered turn history for one student/persona pairing.
// StudentID is the storage key; PersonaID is bound at session start and
// immutable afterwards.
type Session struct {
	StudentID string    `json:"studentId"`
	PersonaID string    `json:"personaId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Turns     []Turn    `json:"turns"`
}
