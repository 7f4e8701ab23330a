package questions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sat-prep/backend/internal/models"
	"github.com/sat-prep/backend/internal/progress"
)

const DefaultBatchSize = 10

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session has no current question")
)

// Bank is the question source the session flow reads from.
type Bank interface {
	ListServable(ctx context.Context) ([]models.Question, error)
}

// ProgressTracker is the slice of the progress service the sessions need.
type ProgressTracker interface {
	Progress(ctx context.Context, userID int64) (*models.UserProgress, error)
	RecordAnswer(ctx context.Context, userID int64, q *models.Question, userAnswer, rationale string, correct bool) (string, error)
}

// Explainer produces the tutoring explanation for a wrong answer. It
// never fails; on provider trouble it falls back to a templated text.
type Explainer interface {
	Explain(ctx context.Context, q *models.Question, userAnswer, rationale string) string
}

// Service runs study sessions: batch selection, answer judging, and the
// in-process session registry. Sessions are ephemeral; a dropped session
// just ages out of the map when the process restarts.
type Service struct {
	bank      Bank
	progress  ProgressTracker
	explainer Explainer

	mu       sync.RWMutex
	sessions map[string]*Session
	rng      *rand.Rand
}

func NewService(bank Bank, tracker ProgressTracker, explainer Explainer) *Service {
	return &Service{
		bank:      bank,
		progress:  tracker,
		explainer: explainer,
		sessions:  make(map[string]*Session),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// loadProgress fetches the caller's progress for selection. Anonymous
// callers and progress-store failures both degrade to nil, which the
// selector treats as "sample uniformly".
func (s *Service) loadProgress(ctx context.Context, userID int64) *models.UserProgress {
	if userID == 0 {
		return nil
	}
	prog, err := s.progress.Progress(ctx, userID)
	if err != nil {
		log.Printf("WARN: loading progress for user %d failed, selecting without it: %v", userID, err)
		return nil
	}
	return prog
}

// StartSession selects an initial batch and registers a new session.
func (s *Service) StartSession(ctx context.Context, userID int64, count int) (*Session, error) {
	if count <= 0 {
		count = DefaultBatchSize
	}

	bank, err := s.bank.ListServable(ctx)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	prog := s.loadProgress(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := SelectBatch(bank, prog, count, s.rng)
	sess := NewSession(uuid.NewString(), userID, batch)
	sess.BatchSize = count
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *Service) GetSession(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// NextQuestion returns the question under the cursor, refilling the
// batch first when the current one is spent. An empty refill moves the
// session to its terminal state.
func (s *Service) NextQuestion(ctx context.Context, sessionID string) (*models.NextQuestionResponse, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	if sess.State() == SessionExhausted {
		if err := s.refill(ctx, sess); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := &models.NextQuestionResponse{
		SessionID: sess.ID,
		State:     string(sess.State()),
		Position:  sess.Cursor,
		Total:     len(sess.Questions),
	}
	if q, ok := sess.Current(); ok {
		served := q.ToServed()
		resp.Question = &served
		resp.Position = sess.Cursor + 1
	}
	return resp, nil
}

func (s *Service) refill(ctx context.Context, sess *Session) error {
	bank, err := s.bank.ListServable(ctx)
	if err != nil {
		return fmt.Errorf("refill session: %w", err)
	}

	prog := s.loadProgress(ctx, sess.UserID)
	if prog == nil {
		prog = &models.UserProgress{SkillScores: map[string]models.SkillRecord{}}
	}
	// Questions already served this session count as attempted for the
	// refill, whether or not they were persisted.
	prog.AttemptedQuestionIDs = append(prog.AttemptedQuestionIDs, sess.SeenIDs()...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.State() != SessionExhausted {
		return nil
	}
	sess.Extend(SelectBatch(bank, prog, sess.BatchSize, s.rng))
	return nil
}

// SubmitAnswer judges the current question, advances the cursor, and,
// for signed-in users, records the attempt and grants tickets. Progress
// write failures are logged and never fail the submission.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID string, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	current, ok := sess.Current()
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionFinished
	}
	q := *current
	correct := Judge(&q, req.Answer)
	sess.Advance()
	state := sess.State()
	userID := sess.UserID
	s.mu.Unlock()

	resp := &models.SubmitAnswerResponse{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Category:      progress.ResolveCategory(q.SkillCategory, q.Tags, q.QuestionText),
		State:         string(state),
	}

	if userID != 0 {
		if _, err := s.progress.RecordAnswer(ctx, userID, &q, req.Answer, req.Rationale, correct); err != nil {
			log.Printf("WARN: recording answer for user %d question %s failed: %v", userID, q.ID, err)
		} else if correct {
			resp.TicketsEarned = progress.TicketsPerCorrectAnswer
		}
	}

	if !correct && s.explainer != nil {
		resp.AIExplanation = s.explainer.Explain(ctx, &q, req.Answer, req.Rationale)
	}

	return resp, nil
}
