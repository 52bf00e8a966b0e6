package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/wzhuang/simpatient/backend/internal/model/chat"
	"github.com/wzhuang/simpatient/backend/internal/store"
)

// ErrNoSuchSession indicates the student has no persisted session to export.
var ErrNoSuchSession = errors.New("no session to export")

// Speaker labels shown in exported transcripts.
const (
	labelStudent = "學生"
	labelPatient = "病人"
)

// PDFExporter renders a student's persisted session into a transcript PDF
// for instructor review. Exports are repeatable: the document's creation
// date is pinned to the record's timestamp, so exporting unchanged data
// twice produces identical bytes.
type PDFExporter struct {
	store    *store.FileStore
	dir      string
	fontPath string
}

// NewPDFExporter creates the export directory if needed. fontPath may point
// at a UTF-8 TTF for CJK glyphs; when empty the built-in Helvetica is used.
func NewPDFExporter(sessions *store.FileStore, dir, fontPath string) (*PDFExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &PDFExporter{store: sessions, dir: dir, fontPath: fontPath}, nil
}

// Export renders the durable record for studentID and returns the path of
// the generated PDF, one file per student, overwritten on re-export.
func (e *PDFExporter) Export(studentID string) (string, error) {
	session, err := e.store.Load(studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNoSuchSession, studentID)
		}
		return "", err
	}

	path := e.Path(studentID)
	if err := e.render(session, path); err != nil {
		return "", fmt.Errorf("render transcript for %q: %w", studentID, err)
	}
	return path, nil
}

// Path returns the deterministic artifact location for a student.
func (e *PDFExporter) Path(studentID string) string {
	return filepath.Join(e.dir, store.SafeKey(studentID)+".pdf")
}

func (e *PDFExporter) render(session chat.Session, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Pinning both document dates to the record timestamp keeps repeated
	// exports of unchanged data byte-identical. A degraded record with no
	// usable timestamp gets the epoch; fpdf would substitute the current
	// time for a zero date and break determinism.
	stamp := session.UpdatedAt
	if stamp.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)

	family := "Helvetica"
	if e.fontPath != "" {
		family = "transcript"
		pdf.AddUTF8Font(family, "", e.fontPath)
	}
	pdf.SetFont(family, "", 12)
	pdf.AddPage()

	for _, line := range RenderLines(session) {
		pdf.MultiCell(0, 7, line, "", "L", false)
	}

	return pdf.OutputFileAndClose(path)
}

// RenderLines produces the transcript content: student id, persona id, the
// record timestamp, then each turn as "<label>: <text>" in session order.
func RenderLines(session chat.Session) []string {
	lines := []string{
		fmt.Sprintf("學號：%s", session.StudentID),
		fmt.Sprintf("角色：%s", session.PersonaID),
		fmt.Sprintf("時間：%s", session.UpdatedAt.Format(store.TimestampLayout)),
		"",
	}
	for _, turn := range session.Turns {
		lines = append(lines, fmt.Sprintf("%s: %s", speakerLabel(turn.Speaker), turn.Text))
	}
	return lines
}

func speakerLabel(speaker chat.Speaker) string {
	if speaker == chat.SpeakerStudent {
		return labelStudent
	}
	return labelPatient
}
