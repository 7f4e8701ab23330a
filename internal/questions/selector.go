package questions

import (
	"math"
	"math/rand"
	"strings"

	"github.com/sat-prep/backend/internal/models"
	"github.com/sat-prep/backend/internal/progress"
)

// weakShare is the target fraction of a batch drawn from weak categories
// when enough fresh questions exist. The remainder comes from everything
// else, with silent backfill in both directions when a side runs short.
const weakShare = 0.6

// matchesAnyCategory reports whether a question belongs to one of the
// given categories. Tags and the authored skill category are compared to
// category names by case-insensitive substring in either direction, so
// the tag "geometry" matches "Geometry and Trigonometry" and vice versa.
func matchesAnyCategory(q *models.Question, categories []string) bool {
	candidates := make([]string, 0, len(q.Tags)+1)
	if q.SkillCategory != "" {
		candidates = append(candidates, q.SkillCategory)
	}
	candidates = append(candidates, q.Tags...)

	for _, cat := range categories {
		catLower := strings.ToLower(cat)
		for _, c := range candidates {
			cLower := strings.ToLower(c)
			if cLower == "" {
				continue
			}
			if strings.Contains(cLower, catLower) || strings.Contains(catLower, cLower) {
				return true
			}
		}
	}
	return false
}

// sample draws n distinct questions uniformly without replacement.
func sample(pool []models.Question, n int, rng *rand.Rand) []models.Question {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	perm := rng.Perm(len(pool))
	out := make([]models.Question, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// SelectBatch picks up to count questions from the bank for one session.
// With no progress (anonymous callers) it samples uniformly. Otherwise it
// avoids already-attempted questions, targets a 60/40 weak/other split,
// and when fresh questions run short it pads the batch by recycling the
// most recently attempted ones. It never errors: an undersized bank just
// yields a smaller batch.
func SelectBatch(bank []models.Question, userProgress *models.UserProgress, count int, rng *rand.Rand) []models.Question {
	if count <= 0 || len(bank) == 0 {
		return []models.Question{}
	}

	if userProgress == nil {
		batch := sample(bank, count, rng)
		rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
		return batch
	}

	attempted := make(map[string]bool, len(userProgress.AttemptedQuestionIDs))
	for _, id := range userProgress.AttemptedQuestionIDs {
		attempted[id] = true
	}

	var unattempted []models.Question
	byID := make(map[string]models.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
		if !attempted[q.ID] {
			unattempted = append(unattempted, q)
		}
	}

	var batch []models.Question
	if len(unattempted) < count {
		// Near exhaustion: take every fresh question, then recycle the
		// most recent attempts until the batch is full.
		batch = append(batch, unattempted...)
		for i := len(userProgress.AttemptedQuestionIDs) - 1; i >= 0 && len(batch) < count; i-- {
			id := userProgress.AttemptedQuestionIDs[i]
			if q, ok := byID[id]; ok {
				batch = append(batch, q)
				delete(byID, id)
			}
		}
	} else {
		weakCategories := progress.WeakCategoriesOf(userProgress, progress.DefaultWeakThreshold)

		var weakPool, otherPool []models.Question
		for _, q := range unattempted {
			if len(weakCategories) > 0 && matchesAnyCategory(&q, weakCategories) {
				weakPool = append(weakPool, q)
			} else {
				otherPool = append(otherPool, q)
			}
		}

		weakCount := int(math.Ceil(weakShare * float64(count)))
		if weakCount > len(weakPool) {
			weakCount = len(weakPool)
		}
		otherCount := count - weakCount
		if otherCount > len(otherPool) {
			otherCount = len(otherPool)
			if weakCount < count-otherCount {
				weakCount = count - otherCount
				if weakCount > len(weakPool) {
					weakCount = len(weakPool)
				}
			}
		}

		batch = append(batch, sample(weakPool, weakCount, rng)...)
		batch = append(batch, sample(otherPool, otherCount, rng)...)
	}

	rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	return batch
}
