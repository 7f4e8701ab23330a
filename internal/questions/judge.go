package questions

import (
	"strings"

	"github.com/sat-prep/backend/internal/models"
)

// normalizeAnswer trims surrounding whitespace and lowercases. Inner
// whitespace is preserved, so "25 π" and "25π" stay distinct.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Judge compares a submitted answer against the question's correct
// answer. Exact match after normalization; no numeric equivalence.
// Judging is centralized here so a future normalization change is one
// function.
func Judge(q *models.Question, submitted string) bool {
	return normalizeAnswer(submitted) == normalizeAnswer(q.CorrectAnswer)
}
