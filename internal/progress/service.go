package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/sat-prep/backend/internal/models"
)

// Store is the persistence surface the aggregator needs. The Postgres
// implementation lives in store.go; tests use an in-memory fake.
type Store interface {
	ApplyAnswer(ctx context.Context, userID int64, rec models.AnswerRecord, tickets int) error
	GetProgress(ctx context.Context, userID int64) (*models.UserProgress, error)
	MissedQuestions(ctx context.Context, userID int64, category string) ([]models.MissedQuestion, error)
}

// Service is the Progress Aggregator: it owns category resolution, the
// ticket grant policy, and the derived-score views over skill records.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecordAnswer resolves the question's category and applies one answer's
// worth of mutations: skill counters, missed-question list for wrong
// answers, the answers log, and the ticket grant for correct ones. The
// resolved category is returned even when the write fails so callers can
// still report it.
func (s *Service) RecordAnswer(ctx context.Context, userID int64, q *models.Question, userAnswer, rationale string, correct bool) (string, error) {
	category := ResolveCategory(q.SkillCategory, q.Tags, q.QuestionText)

	tickets := 0
	if correct {
		tickets = TicketsPerCorrectAnswer
	}

	rec := models.AnswerRecord{
		QuestionID: q.ID,
		UserAnswer: userAnswer,
		Correct:    correct,
		Rationale:  rationale,
		Category:   category,
		AnsweredAt: time.Now(),
	}

	if err := s.store.ApplyAnswer(ctx, userID, rec, tickets); err != nil {
		return category, fmt.Errorf("record answer: %w", err)
	}
	return category, nil
}

func (s *Service) Progress(ctx context.Context, userID int64) (*models.UserProgress, error) {
	return s.store.GetProgress(ctx, userID)
}

func (s *Service) ScoreReport(ctx context.Context, userID int64) (*models.ScoreReport, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("score report: %w", err)
	}
	return BuildScoreReport(progress), nil
}

func (s *Service) WeakCategories(ctx context.Context, userID int64) ([]string, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("weak categories: %w", err)
	}
	return WeakCategoriesOf(progress, DefaultWeakThreshold), nil
}

// IncorrectQuestionIDs returns the missed ids for one category in the
// order they were first missed.
func (s *Service) IncorrectQuestionIDs(ctx context.Context, userID int64, category string) ([]string, error) {
	progress, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("incorrect question ids: %w", err)
	}
	rec, ok := progress.SkillScores[category]
	if !ok {
		return []string{}, nil
	}
	return rec.IncorrectQuestionIDs, nil
}

// Review returns the missed questions for a category joined with the
// answer the user gave, for the per-skill review page.
func (s *Service) Review(ctx context.Context, userID int64, category string) ([]models.MissedQuestion, error) {
	return s.store.MissedQuestions(ctx, userID, category)
}
