package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wzhuang/simpatient/backend/internal/model/chat"
)

// TimestampLayout is the fixed wall-clock format used inside durable records
// and exported transcripts.
const TimestampLayout = "2006-01-02 15:04:05"

// PlaceholderPersona is substituted when a durable record is missing its
// character field, so instructor review still renders something.
const PlaceholderPersona = "未知角色"

// DialogueEntry is one turn in the durable record.
type DialogueEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Record is the on-disk representation of a session: one JSON document per
// student, rewritten in full on every persist.
type Record struct {
	Character string          `json:"character"`
	Timestamp string          `json:"timestamp"`
	Dialogue  []DialogueEntry `json:"dialogue"`
}

// RecordError reports stored bytes that cannot be parsed as a record at all.
// Missing fields are not errors; decodeRecord substitutes defaults for them.
type RecordError struct {
	Key string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed session record for %q: %v", e.Key, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func marshalRecord(record Record) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeRecord(session chat.Session) Record {
	dialogue := make([]DialogueEntry, 0, len(session.Turns))
	for _, turn := range session.Turns {
		dialogue = append(dialogue, DialogueEntry{Role: string(turn.Speaker), Text: turn.Text})
	}
	return Record{
		Character: session.PersonaID,
		Timestamp: session.UpdatedAt.Format(TimestampLayout),
		Dialogue:  dialogue,
	}
}

// decodeRecord rebuilds an in-memory session from stored bytes. Review is
// best-effort: a missing character becomes PlaceholderPersona, a missing or
// unparseable timestamp becomes the zero time, a missing dialogue stays empty.
func decodeRecord(studentID string, data []byte) (chat.Session, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return chat.Session{}, &RecordError{Key: studentID, Err: err}
	}

	session := chat.Session{
		StudentID: studentID,
		PersonaID: record.Character,
		Turns:     make([]chat.Turn, 0, len(record.Dialogue)),
	}
	if session.PersonaID == "" {
		session.PersonaID = PlaceholderPersona
	}
	if record.Timestamp != "" {
		if ts, err := time.ParseInLocation(TimestampLayout, record.Timestamp, time.Local); err == nil {
			session.UpdatedAt = ts
		}
	}
	for _, entry := range record.Dialogue {
		speaker := chat.SpeakerPatient
		if entry.Role == string(chat.SpeakerStudent) {
			speaker = chat.SpeakerStudent
		}
		session.Turns = append(session.Turns, chat.Turn{Speaker: speaker, Text: entry.Text})
	}
	return session, nil
}
