package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	chatmodel "github.com/wzhuang/simpatient/backend/internal/model/chat"
	"github.com/wzhuang/simpatient/backend/internal/model/persona"
	"github.com/wzhuang/simpatient/backend/internal/service/ai"
	"github.com/wzhuang/simpatient/backend/internal/store"
)

var (
	ErrMissingStudentID = errors.New("student id is required")
	ErrMissingPersona   = errors.New("persona id is required")
	ErrUnknownPersona   = errors.New("persona not found")
)

// replyUnavailableText is recorded as the patient turn when the model
// backend fails, so the transcript shows that the exchange happened and
// failed instead of silently dropping it.
const replyUnavailableText = "（系統）模擬病人暫時無法回覆，請稍後再試。"

// Exchange is the outcome of one completed chat exchange. Warning carries
// non-fatal trouble (reply backend down, persistence failure) that the
// caller should display but that does not invalidate the session.
type Exchange struct {
	Session chatmodel.Session `json:"session"`
	Reply   string            `json:"reply"`
	Warning string            `json:"warning,omitempty"`
}

// Controller orchestrates a single chat exchange: validate, append the
// student turn, obtain the patient reply, append it, persist.
type Controller struct {
	store    *store.FileStore
	personas persona.Store
	provider ai.Provider
}

// NewController wires the controller to its collaborators.
func NewController(sessions *store.FileStore, personas persona.Store, provider ai.Provider) *Controller {
	return &Controller{store: sessions, personas: personas, provider: provider}
}

// SubmitTurn runs one exchange to completion. Validation failures leave the
// session untouched. After validation the student turn is always kept, even
// when the reply backend or the persist step fails; those failures surface
// in Exchange.Warning. The whole append, reply, append, persist sequence holds
// the per-student lock so overlapping exchanges for one student cannot
// interleave records.
func (c *Controller) SubmitTurn(ctx context.Context, studentID, personaID, text string) (Exchange, error) {
	if strings.TrimSpace(studentID) == "" {
		return Exchange{}, ErrMissingStudentID
	}
	if strings.TrimSpace(personaID) == "" {
		return Exchange{}, ErrMissingPersona
	}
	patient, ok := c.personas.FindByID(personaID)
	if !ok {
		return Exchange{}, ErrUnknownPersona
	}

	unlock := c.store.LockStudent(studentID)
	defer unlock()

	c.store.Bind(studentID, personaID)
	c.store.Append(studentID, chatmodel.Turn{Speaker: chatmodel.SpeakerStudent, Text: text})

	var warnings []string
	reply, err := c.provider.Reply(ctx, patient, text)
	if err != nil {
		log.Printf("[chat] reply failed for student=%s persona=%s: %v", studentID, personaID, err)
		reply = replyUnavailableText
		warnings = append(warnings, "模擬病人回覆失敗，已記錄占位訊息")
	}
	c.store.Append(studentID, chatmodel.Turn{Speaker: chatmodel.SpeakerPatient, Text: reply})

	if err := c.store.Persist(studentID); err != nil {
		log.Printf("[chat] persist failed for student=%s: %v", studentID, err)
		warnings = append(warnings, "對話已更新，但寫入存檔失敗")
	}

	session, _ := c.store.Session(studentID)
	return Exchange{
		Session: session,
		Reply:   reply,
		Warning: strings.Join(warnings, "；"),
	}, nil
}

// History reloads a student's durable record for instructor review.
func (c *Controller) History(studentID string) (chatmodel.Session, error) {
	return c.store.Load(studentID)
}
