package models

import "time"

// SkillRecord tracks one user's accuracy within a single skill category.
// Counters only move forward; IncorrectQuestionIDs is insertion-ordered
// with no duplicates.
type SkillRecord struct {
	Correct              int      `json:"correct"`
	Total                int      `json:"total"`
	IncorrectQuestionIDs []string `json:"incorrect_question_ids"`
}

// UserProgress is the aggregate view the selector and score report read.
// AttemptedQuestionIDs is ordered oldest to newest.
type UserProgress struct {
	UserID               int64                  `json:"user_id"`
	SkillScores          map[string]SkillRecord `json:"skill_scores"`
	AttemptedQuestionIDs []string               `json:"attempted_question_ids"`
	Points               int                    `json:"points"`
}

// AnswerRecord is one row of the answers log.
type AnswerRecord struct {
	QuestionID   string    `json:"question_id"`
	UserAnswer   string    `json:"user_answer"`
	Correct      bool      `json:"correct"`
	Rationale    string    `json:"rationale,omitempty"`
	Category     string    `json:"category"`
	AnsweredAt   time.Time `json:"answered_at"`
	AttemptCount int       `json:"attempt_count"`
}

// MissedQuestion pairs a question the user got wrong with what they
// actually answered, for the per-skill review page.
type MissedQuestion struct {
	Question   Question  `json:"question"`
	UserAnswer string    `json:"user_answer"`
	Rationale  string    `json:"rationale,omitempty"`
	MissedAt   time.Time `json:"missed_at"`
}

// ── Score Report Types ────────────────────────────────

type CategoryScore struct {
	Category      string `json:"category"`
	Score         int    `json:"score"`
	Correct       int    `json:"correct"`
	Total         int    `json:"total"`
	AccuracyLabel string `json:"accuracy_label"`
	Performance   string `json:"performance"`
}

type ScoreReport struct {
	Categories []CategoryScore `json:"categories"`
	Sections   map[string]int  `json:"sections"`
	Total      int             `json:"total"`
}

type WeakCategoriesResponse struct {
	Categories []string `json:"categories"`
	Threshold  float64  `json:"threshold"`
}
