package progress

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sat-prep/backend/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ApplyAnswer runs all per-answer mutations in one transaction. The
// counters use increment upserts so concurrent sessions on different
// devices interleave without losing updates.
func (s *PostgresStore) ApplyAnswer(ctx context.Context, userID int64, rec models.AnswerRecord, tickets int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	correctIncrement := 0
	if rec.Correct {
		correctIncrement = 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_skill_scores (user_id, category, correct, total)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id, category)
		 DO UPDATE SET correct = user_skill_scores.correct + $3,
		               total = user_skill_scores.total + 1`,
		userID, rec.Category, correctIncrement,
	)
	if err != nil {
		return fmt.Errorf("upsert skill score: %w", err)
	}

	if !rec.Correct {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_missed_questions (user_id, category, question_id)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, category, question_id) DO NOTHING`,
			userID, rec.Category, rec.QuestionID,
		)
		if err != nil {
			return fmt.Errorf("insert missed question: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_answers (user_id, question_id, user_answer, correct, rationale, category)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, question_id)
		 DO UPDATE SET user_answer = $3, correct = $4, rationale = $5, category = $6,
		               answered_at = NOW(), attempt_count = user_answers.attempt_count + 1`,
		userID, rec.QuestionID, rec.UserAnswer, rec.Correct, rec.Rationale, rec.Category,
	)
	if err != nil {
		return fmt.Errorf("upsert answer log: %w", err)
	}

	if tickets > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET points = points + $1, updated_at = NOW() WHERE id = $2`,
			tickets, userID,
		)
		if err != nil {
			return fmt.Errorf("grant tickets: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) GetProgress(ctx context.Context, userID int64) (*models.UserProgress, error) {
	progress := &models.UserProgress{
		UserID:      userID,
		SkillScores: make(map[string]models.SkillRecord),
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT points FROM users WHERE id = $1`, userID,
	).Scan(&progress.Points); err != nil {
		return nil, fmt.Errorf("get points: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, correct, total FROM user_skill_scores WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get skill scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var rec models.SkillRecord
		if err := rows.Scan(&category, &rec.Correct, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan skill score: %w", err)
		}
		progress.SkillScores[category] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	missedRows, err := s.db.QueryContext(ctx,
		`SELECT category, question_id FROM user_missed_questions
		 WHERE user_id = $1 ORDER BY missed_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get missed questions: %w", err)
	}
	defer missedRows.Close()

	for missedRows.Next() {
		var category, questionID string
		if err := missedRows.Scan(&category, &questionID); err != nil {
			return nil, fmt.Errorf("scan missed question: %w", err)
		}
		rec := progress.SkillScores[category]
		rec.IncorrectQuestionIDs = append(rec.IncorrectQuestionIDs, questionID)
		progress.SkillScores[category] = rec
	}
	if err := missedRows.Err(); err != nil {
		return nil, err
	}

	// Oldest first, so the tail is the most recent attempts.
	answerRows, err := s.db.QueryContext(ctx,
		`SELECT question_id FROM user_answers WHERE user_id = $1 ORDER BY answered_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get attempted ids: %w", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var questionID string
		if err := answerRows.Scan(&questionID); err != nil {
			return nil, fmt.Errorf("scan attempted id: %w", err)
		}
		progress.AttemptedQuestionIDs = append(progress.AttemptedQuestionIDs, questionID)
	}
	return progress, answerRows.Err()
}

func (s *PostgresStore) MissedQuestions(ctx context.Context, userID int64, category string) ([]models.MissedQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.passage, q.question_text, q.options, q.correct_answer,
		        q.explanation, q.tags, q.skill_category, q.created_at,
		        COALESCE(a.user_answer, ''), COALESCE(a.rationale, ''), m.missed_at
		 FROM user_missed_questions m
		 JOIN questions q ON q.id = m.question_id
		 LEFT JOIN user_answers a ON a.user_id = m.user_id AND a.question_id = m.question_id
		 WHERE m.user_id = $1 AND m.category = $2
		 ORDER BY m.missed_at, m.id`,
		userID, category,
	)
	if err != nil {
		return nil, fmt.Errorf("get missed questions: %w", err)
	}
	defer rows.Close()

	missed := []models.MissedQuestion{}
	for rows.Next() {
		var mq models.MissedQuestion
		if err := rows.Scan(
			&mq.Question.ID, &mq.Question.Passage, &mq.Question.QuestionText,
			pq.Array(&mq.Question.Options), &mq.Question.CorrectAnswer,
			&mq.Question.Explanation, pq.Array(&mq.Question.Tags),
			&mq.Question.SkillCategory, &mq.Question.CreatedAt,
			&mq.UserAnswer, &mq.Rationale, &mq.MissedAt,
		); err != nil {
			return nil, fmt.Errorf("scan missed question: %w", err)
		}
		missed = append(missed, mq)
	}
	return missed, rows.Err()
}
