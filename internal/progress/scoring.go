package progress

import (
	"fmt"
	"math"

	"github.com/sat-prep/backend/internal/models"
)

// DefaultWeakThreshold is the accuracy cutoff below which a category
// counts as weak. Strictly below: exactly 70% is not weak.
const DefaultWeakThreshold = 0.70

// TicketsPerCorrectAnswer is the reward-currency grant per correct answer.
const TicketsPerCorrectAnswer = 1

// Accuracy returns percent correct, 0 for an unattempted record.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// DerivedScore converts accuracy to the 200-800 scale:
// round(200 + accuracy/100 * 600). Unattempted categories score 0,
// which readers treat as "no data" rather than a floor score.
func DerivedScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(200 + Accuracy(correct, total)/100*600))
}

// AccuracyLabel renders the display form, e.g. "73% (8/11)".
func AccuracyLabel(correct, total int) string {
	pct := 0
	if total > 0 {
		pct = int(math.Round(Accuracy(correct, total)))
	}
	return fmt.Sprintf("%d%% (%d/%d)", pct, correct, total)
}

// PerformanceBand is the ±30 display band clamped to [200, 800].
func PerformanceBand(score int) string {
	if score == 0 {
		return "200-800"
	}
	low := score - 30
	if low < 200 {
		low = 200
	}
	high := score + 30
	if high > 800 {
		high = 800
	}
	return fmt.Sprintf("%d-%d", low, high)
}

// IsWeak reports whether a record's accuracy falls strictly below the
// threshold. Records with no attempts are never weak.
func IsWeak(rec models.SkillRecord, threshold float64) bool {
	if rec.Total == 0 {
		return false
	}
	return float64(rec.Correct)/float64(rec.Total) < threshold
}

// sectionScore is the rounded mean of the attempted category scores in a
// section, or 0 when none were attempted.
func sectionScore(progress *models.UserProgress, categories []string) int {
	sum, n := 0, 0
	for _, cat := range categories {
		rec, ok := progress.SkillScores[cat]
		if !ok || rec.Total == 0 {
			continue
		}
		sum += DerivedScore(rec.Correct, rec.Total)
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// BuildScoreReport derives the full per-category and per-section report.
// Every canonical category appears even with zero attempts, so the
// breakdown page always shows the complete grid.
func BuildScoreReport(progress *models.UserProgress) *models.ScoreReport {
	report := &models.ScoreReport{
		Categories: make([]models.CategoryScore, 0, len(AllCategories)+1),
		Sections:   make(map[string]int, 2),
	}

	categories := AllCategories
	if rec, ok := progress.SkillScores[CategoryOther]; ok && rec.Total > 0 {
		categories = append(append([]string{}, AllCategories...), CategoryOther)
	}

	for _, cat := range categories {
		rec := progress.SkillScores[cat]
		score := DerivedScore(rec.Correct, rec.Total)
		report.Categories = append(report.Categories, models.CategoryScore{
			Category:      cat,
			Score:         score,
			Correct:       rec.Correct,
			Total:         rec.Total,
			AccuracyLabel: AccuracyLabel(rec.Correct, rec.Total),
			Performance:   PerformanceBand(score),
		})
	}

	report.Sections[SectionMath] = sectionScore(progress, MathCategories)
	report.Sections[SectionReadingWriting] = sectionScore(progress, ReadingWritingCategories)
	report.Total = report.Sections[SectionMath] + report.Sections[SectionReadingWriting]

	return report
}

// WeakCategoriesOf lists categories strictly below the threshold, in
// canonical report order.
func WeakCategoriesOf(progress *models.UserProgress, threshold float64) []string {
	weak := []string{}
	ordered := append(append([]string{}, AllCategories...), CategoryOther)
	for _, cat := range ordered {
		if rec, ok := progress.SkillScores[cat]; ok && IsWeak(rec, threshold) {
			weak = append(weak, cat)
		}
	}
	return weak
}
