package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/sat-prep/backend/internal/models"
)

// memStore mirrors the Postgres store's semantics in memory: increment
// upserts, idempotent missed ids, last-write-wins answer log.
type memStore struct {
	progress models.UserProgress
	failNext error
}

func newMemStore() *memStore {
	return &memStore{
		progress: models.UserProgress{
			SkillScores: make(map[string]models.SkillRecord),
		},
	}
}

func (m *memStore) ApplyAnswer(ctx context.Context, userID int64, rec models.AnswerRecord, tickets int) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}

	sr := m.progress.SkillScores[rec.Category]
	sr.Total++
	if rec.Correct {
		sr.Correct++
	} else {
		seen := false
		for _, id := range sr.IncorrectQuestionIDs {
			if id == rec.QuestionID {
				seen = true
				break
			}
		}
		if !seen {
			sr.IncorrectQuestionIDs = append(sr.IncorrectQuestionIDs, rec.QuestionID)
		}
	}
	m.progress.SkillScores[rec.Category] = sr

	attempted := false
	for _, id := range m.progress.AttemptedQuestionIDs {
		if id == rec.QuestionID {
			attempted = true
			break
		}
	}
	if !attempted {
		m.progress.AttemptedQuestionIDs = append(m.progress.AttemptedQuestionIDs, rec.QuestionID)
	}

	m.progress.Points += tickets
	return nil
}

func (m *memStore) GetProgress(ctx context.Context, userID int64) (*models.UserProgress, error) {
	cp := m.progress
	return &cp, nil
}

func (m *memStore) MissedQuestions(ctx context.Context, userID int64, category string) ([]models.MissedQuestion, error) {
	return nil, nil
}

func algebraQuestion(id string) *models.Question {
	return &models.Question{
		ID:           id,
		QuestionText: "Solve for x.",
		Options:      []string{"1", "2", "3", "4"},
		Tags:         []string{"algebra"},
	}
}

func TestRecordAnswerTicketEconomy(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	answers := []struct {
		id      string
		correct bool
	}{
		{"q1", true},
		{"q2", false},
		{"q3", true},
	}

	for _, a := range answers {
		if _, err := svc.RecordAnswer(ctx, 1, algebraQuestion(a.id), "2", "", a.correct); err != nil {
			t.Fatalf("RecordAnswer(%s): %v", a.id, err)
		}
	}

	if store.progress.Points != 2 {
		t.Errorf("points = %d, want 2 (one per correct answer)", store.progress.Points)
	}

	rec := store.progress.SkillScores[CategoryAlgebra]
	if rec.Correct != 2 || rec.Total != 3 {
		t.Errorf("skill record = %d/%d, want 2/3", rec.Correct, rec.Total)
	}
	if rec.Correct > rec.Total {
		t.Errorf("invariant violated: correct %d > total %d", rec.Correct, rec.Total)
	}
}

func TestRecordAnswerMissedIDsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	// Miss the same question twice.
	for i := 0; i < 2; i++ {
		if _, err := svc.RecordAnswer(ctx, 1, algebraQuestion("q7"), "1", "", false); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	rec := store.progress.SkillScores[CategoryAlgebra]
	if len(rec.IncorrectQuestionIDs) != 1 {
		t.Errorf("missed ids = %v, want exactly one entry", rec.IncorrectQuestionIDs)
	}
	if rec.Total != 2 {
		t.Errorf("total = %d, want 2 (counters still move)", rec.Total)
	}
	if len(store.progress.AttemptedQuestionIDs) != 1 {
		t.Errorf("attempted ids = %v, want one entry", store.progress.AttemptedQuestionIDs)
	}
}

func TestRecordAnswerResolvesCategory(t *testing.T) {
	svc := NewService(newMemStore())

	q := &models.Question{
		ID:           "q9",
		QuestionText: "Which transition best connects the sentences?",
		Tags:         []string{"transitions"},
	}
	category, err := svc.RecordAnswer(context.Background(), 1, q, "However", "", true)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if category != CategoryExpressionIdeas {
		t.Errorf("category = %q, want %q", category, CategoryExpressionIdeas)
	}
}

func TestRecordAnswerStoreFailureStillReturnsCategory(t *testing.T) {
	store := newMemStore()
	store.failNext = errors.New("connection reset")
	svc := NewService(store)

	category, err := svc.RecordAnswer(context.Background(), 1, algebraQuestion("q1"), "2", "", true)
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if category != CategoryAlgebra {
		t.Errorf("category = %q, want %q even on store failure", category, CategoryAlgebra)
	}
}

func TestIncorrectQuestionIDsUnknownCategory(t *testing.T) {
	svc := NewService(newMemStore())

	ids, err := svc.IncorrectQuestionIDs(context.Background(), 1, "Never Studied")
	if err != nil {
		t.Fatalf("IncorrectQuestionIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}
