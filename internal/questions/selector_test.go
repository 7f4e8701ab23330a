package questions

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/sat-prep/backend/internal/models"
	"github.com/sat-prep/backend/internal/progress"
)

func mkQuestion(id string, tags ...string) models.Question {
	return models.Question{
		ID:            id,
		QuestionText:  "Question " + id,
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "A",
		Tags:          tags,
	}
}

func mkBank(n int, tag string) []models.Question {
	bank := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		bank = append(bank, mkQuestion(fmt.Sprintf("%s-%d", tag, i), tag))
	}
	return bank
}

func idsOf(batch []models.Question) map[string]bool {
	ids := make(map[string]bool, len(batch))
	for _, q := range batch {
		ids[q.ID] = true
	}
	return ids
}

func TestSelectBatchAnonymous(t *testing.T) {
	bank := mkBank(20, "algebra")
	rng := rand.New(rand.NewSource(1))

	batch := SelectBatch(bank, nil, 5, rng)

	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5", len(batch))
	}
	if len(idsOf(batch)) != 5 {
		t.Errorf("batch contains duplicates: %v", batch)
	}
}

func TestSelectBatchNoDuplicates(t *testing.T) {
	bank := append(mkBank(8, "algebra"), mkBank(8, "geometry")...)
	prog := &models.UserProgress{
		SkillScores: map[string]models.SkillRecord{
			progress.CategoryAlgebra: {Correct: 1, Total: 4},
		},
		AttemptedQuestionIDs: []string{"algebra-0", "geometry-0"},
	}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		batch := SelectBatch(bank, prog, 10, rng)
		if len(idsOf(batch)) != len(batch) {
			t.Fatalf("seed %d: batch contains duplicates", seed)
		}
	}
}

func TestSelectBatchAvoidsAttempted(t *testing.T) {
	bank := mkBank(10, "algebra")
	prog := &models.UserProgress{
		SkillScores:          map[string]models.SkillRecord{},
		AttemptedQuestionIDs: []string{"algebra-0", "algebra-1", "algebra-2", "algebra-3", "algebra-4"},
	}

	rng := rand.New(rand.NewSource(7))
	batch := SelectBatch(bank, prog, 5, rng)

	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5", len(batch))
	}
	for _, q := range batch {
		for _, seen := range prog.AttemptedQuestionIDs {
			if q.ID == seen {
				t.Errorf("batch repeated attempted question %s with fresh ones available", q.ID)
			}
		}
	}
}

func TestSelectBatchRecyclesMostRecent(t *testing.T) {
	bank := mkBank(23, "algebra")

	// 20 attempted, 3 fresh (ids 20-22). Most recent attempts are at the tail.
	attempted := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		attempted = append(attempted, fmt.Sprintf("algebra-%d", i))
	}
	prog := &models.UserProgress{
		SkillScores:          map[string]models.SkillRecord{},
		AttemptedQuestionIDs: attempted,
	}

	rng := rand.New(rand.NewSource(3))
	batch := SelectBatch(bank, prog, 5, rng)

	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5", len(batch))
	}
	ids := idsOf(batch)
	for _, fresh := range []string{"algebra-20", "algebra-21", "algebra-22"} {
		if !ids[fresh] {
			t.Errorf("fresh question %s missing from near-exhaustion batch", fresh)
		}
	}
	for _, recycled := range []string{"algebra-19", "algebra-18"} {
		if !ids[recycled] {
			t.Errorf("expected most recent attempt %s to be recycled", recycled)
		}
	}
}

func TestSelectBatchWeakSplit(t *testing.T) {
	bank := append(mkBank(10, "algebra"), mkBank(10, "geometry")...)
	prog := &models.UserProgress{
		SkillScores: map[string]models.SkillRecord{
			progress.CategoryAlgebra:  {Correct: 1, Total: 10}, // weak
			progress.CategoryGeometry: {Correct: 9, Total: 10},
		},
	}

	rng := rand.New(rand.NewSource(11))
	batch := SelectBatch(bank, prog, 5, rng)

	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5", len(batch))
	}
	weak := 0
	for _, q := range batch {
		if q.Tags[0] == "algebra" {
			weak++
		}
	}
	if weak != 3 {
		t.Errorf("weak questions in batch = %d, want 3 (ceil of 60%% of 5)", weak)
	}
}

func TestSelectBatchWeakBackfill(t *testing.T) {
	// Only one weak-category question available: the rest backfills.
	bank := append(mkBank(1, "algebra"), mkBank(10, "geometry")...)
	prog := &models.UserProgress{
		SkillScores: map[string]models.SkillRecord{
			progress.CategoryAlgebra: {Correct: 0, Total: 5},
		},
	}

	rng := rand.New(rand.NewSource(5))
	batch := SelectBatch(bank, prog, 5, rng)

	if len(batch) != 5 {
		t.Fatalf("batch size = %d, want 5 via backfill", len(batch))
	}
}

func TestSelectBatchUndersizedBank(t *testing.T) {
	bank := mkBank(3, "algebra")
	rng := rand.New(rand.NewSource(2))

	batch := SelectBatch(bank, nil, 10, rng)
	if len(batch) != 3 {
		t.Errorf("batch size = %d, want all 3 available", len(batch))
	}
}

func TestSelectBatchEmptyBank(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	if batch := SelectBatch(nil, nil, 5, rng); len(batch) != 0 {
		t.Errorf("empty bank produced batch of %d", len(batch))
	}
}

func TestMatchesAnyCategory(t *testing.T) {
	tests := []struct {
		name       string
		question   models.Question
		categories []string
		want       bool
	}{
		{
			name:       "tag is substring of category",
			question:   mkQuestion("q", "geometry"),
			categories: []string{progress.CategoryGeometry},
			want:       true,
		},
		{
			name:       "category is substring of tag",
			question:   mkQuestion("q", "advanced math: quadratics"),
			categories: []string{progress.CategoryAdvancedMath},
			want:       true,
		},
		{
			name:       "case insensitive",
			question:   mkQuestion("q", "ALGEBRA"),
			categories: []string{progress.CategoryAlgebra},
			want:       true,
		},
		{
			name:       "skill category field counts",
			question:   models.Question{ID: "q", SkillCategory: "Craft and Structure"},
			categories: []string{progress.CategoryCraftStructure},
			want:       true,
		},
		{
			name:       "no match",
			question:   mkQuestion("q", "geometry"),
			categories: []string{progress.CategoryAlgebra},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesAnyCategory(&tt.question, tt.categories); got != tt.want {
				t.Errorf("matchesAnyCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}
