package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wzhuang/simpatient/backend/internal/model/chat"
)

// ErrNotFound indicates no durable record exists for the student. It is
// distinct from a malformed record (RecordError).
var ErrNotFound = errors.New("session not found")

// PersistError reports a failed write of the durable record. In-memory state
// is not rolled back; the caller decides how to surface the failure.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist session for %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// FileStore owns the in-memory sessions of active students and their durable
// per-student JSON records. Persist rewrites the whole record; the last
// writer wins. Within this process, LockStudent serializes appends and
// persists per student, but a second process writing the same file still
// races. That is a known limitation of the storage contract.
type FileStore struct {
	dir string

	mu       sync.RWMutex
	sessions map[string]*chat.Session

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewFileStore creates the storage directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{
		dir:      dir,
		sessions: make(map[string]*chat.Session),
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Bind returns the active session for the student, creating one bound to
// personaID if none exists. A session created unbound by Append is bound on
// first call; an already-bound persona is never rebound.
func (s *FileStore) Bind(studentID, personaID string) chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[studentID]
	if session == nil {
		session = &chat.Session{
			StudentID: studentID,
			CreatedAt: time.Now(),
		}
		s.sessions[studentID] = session
	}
	if session.PersonaID == "" {
		session.PersonaID = personaID
	}
	return snapshot(session)
}

// Append adds a turn to the student's in-memory session, creating an unbound
// session when absent. Pure in-memory mutation; never fails.
func (s *FileStore) Append(studentID string, turn chat.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[studentID]
	if session == nil {
		session = &chat.Session{
			StudentID: studentID,
			CreatedAt: time.Now(),
		}
		s.sessions[studentID] = session
	}

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	session.Turns = append(session.Turns, turn)
	session.UpdatedAt = turn.CreatedAt
}

// Session returns a snapshot of the in-memory session, if any.
func (s *FileStore) Session(studentID string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[studentID]
	if !ok {
		return chat.Session{}, false
	}
	return snapshot(session), true
}

// Persist writes the student's full session to its durable record,
// overwriting any prior record. Returns ErrNotFound when the student has no
// in-memory session, or a PersistError when the write fails.
func (s *FileStore) Persist(studentID string) error {
	session, ok := s.Session(studentID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, studentID)
	}

	data, err := marshalRecord(encodeRecord(session))
	if err != nil {
		return &PersistError{Key: studentID, Err: err}
	}
	if err := os.WriteFile(s.path(studentID), data, 0o644); err != nil {
		return &PersistError{Key: studentID, Err: err}
	}
	return nil
}

// Load reads and decodes the durable record for the student. ErrNotFound
// when no record exists; RecordError when the bytes are not a record.
func (s *FileStore) Load(studentID string) (chat.Session, error) {
	data, err := os.ReadFile(s.path(studentID))
	if err != nil {
		if os.IsNotExist(err) {
			return chat.Session{}, fmt.Errorf("%w: %s", ErrNotFound, studentID)
		}
		return chat.Session{}, fmt.Errorf("read session record: %w", err)
	}
	return decodeRecord(studentID, data)
}

// LockStudent acquires the per-student mutex and returns its release func.
// The chat controller holds it for the whole exchange so overlapping
// exchanges for one student cannot interleave records.
func (s *FileStore) LockStudent(studentID string) func() {
	s.lockMu.Lock()
	lock, ok := s.locks[studentID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[studentID] = lock
	}
	s.lockMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// path derives the durable record location from the student id. The mapping
// must stay deterministic: one student, one file.
func (s *FileStore) path(studentID string) string {
	return filepath.Join(s.dir, SafeKey(studentID)+".json")
}

// SafeKey makes a student id safe to use as a file name while staying
// deterministic. The exporter uses the same mapping so the record and its
// transcript share a base name.
func SafeKey(studentID string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '.', ' ':
			return '_'
		}
		return r
	}, studentID)
}

func snapshot(session *chat.Session) chat.Session {
	copied := *session
	copied.Turns = make([]chat.Turn, len(session.Turns))
	copy(copied.Turns, session.Turns)
	return copied
}
