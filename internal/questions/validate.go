package questions

import (
	"fmt"
	"strings"

	"github.com/sat-prep/backend/internal/models"
)

// Validate reports the structural problems that would make a question
// unservable. The session store also filters on correct_answer at query
// time, so a bad row that slips in is still never drawn.
func Validate(q *models.Question) []string {
	var problems []string

	if strings.TrimSpace(q.QuestionText) == "" {
		problems = append(problems, "question text is empty")
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		problems = append(problems, "correct answer is empty")
	}

	if !q.IsFreeResponse() {
		if len(q.Options) < 2 || len(q.Options) > 4 {
			problems = append(problems, fmt.Sprintf("expected 2-4 options, got %d", len(q.Options)))
		}
		seen := make(map[string]bool, len(q.Options))
		matched := false
		for i, opt := range q.Options {
			trimmed := strings.TrimSpace(opt)
			if trimmed == "" {
				problems = append(problems, fmt.Sprintf("option %d is empty", i+1))
				continue
			}
			key := strings.ToLower(trimmed)
			if seen[key] {
				problems = append(problems, fmt.Sprintf("duplicate option %q", trimmed))
			}
			seen[key] = true
			if key == strings.ToLower(strings.TrimSpace(q.CorrectAnswer)) {
				matched = true
			}
		}
		if !matched && strings.TrimSpace(q.CorrectAnswer) != "" {
			problems = append(problems, "correct answer does not match any option")
		}
	}

	return problems
}
