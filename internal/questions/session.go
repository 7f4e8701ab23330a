package questions

import "github.com/sat-prep/backend/internal/models"

type SessionState string

const (
	// SessionActive means the cursor points at a question to answer.
	SessionActive SessionState = "active"
	// SessionExhausted means the current batch ran out; a refill may extend it.
	SessionExhausted SessionState = "exhausted"
	// SessionComplete is terminal: the bank had nothing left to serve.
	SessionComplete SessionState = "complete"
)

// Session is the in-memory state of one study run. Not safe for
// concurrent use on its own; the service serializes access.
type Session struct {
	ID        string
	UserID    int64 // 0 for anonymous
	Questions []models.Question
	Cursor    int
	BatchSize int
	done      bool
}

func NewSession(id string, userID int64, batch []models.Question) *Session {
	s := &Session{ID: id, UserID: userID, Questions: batch}
	if len(batch) == 0 {
		s.done = true
	}
	return s
}

func (s *Session) State() SessionState {
	if s.done {
		return SessionComplete
	}
	if s.Cursor < len(s.Questions) {
		return SessionActive
	}
	return SessionExhausted
}

// Current returns the question under the cursor, if the session is active.
func (s *Session) Current() (*models.Question, bool) {
	if s.State() != SessionActive {
		return nil, false
	}
	return &s.Questions[s.Cursor], true
}

// Advance moves past the current question after it has been answered.
func (s *Session) Advance() {
	if s.Cursor < len(s.Questions) {
		s.Cursor++
	}
}

// Extend appends a refill batch. Already-answered positions and the
// cursor stay valid. An empty refill means the bank is spent: the
// session becomes complete and stays that way.
func (s *Session) Extend(batch []models.Question) {
	if s.done {
		return
	}
	if len(batch) == 0 {
		s.done = true
		return
	}
	s.Questions = append(s.Questions, batch...)
}

// SeenIDs lists every question id the session has held, answered or not.
func (s *Session) SeenIDs() []string {
	ids := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}
