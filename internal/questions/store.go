package questions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sat-prep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const questionCols = `id, passage, question_text, options, correct_answer, explanation, tags, skill_category, created_at`

func scanQuestion(row interface {
	Scan(dest ...interface{}) error
}) (*models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID, &q.Passage, &q.QuestionText, pq.Array(&q.Options),
		&q.CorrectAnswer, &q.Explanation, pq.Array(&q.Tags),
		&q.SkillCategory, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListServable returns the bank as the selector sees it. Questions with
// no recorded correct answer are authored-but-broken; they are excluded
// here rather than erroring mid-session.
func (s *Store) ListServable(ctx context.Context) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM questions WHERE correct_answer <> '' ORDER BY created_at, id`, questionCols),
	)
	if err != nil {
		return nil, fmt.Errorf("list servable questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*models.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionCols), id,
	))
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

// ── Authoring Shim ──────────────────────────────────────

func (s *Store) List(ctx context.Context) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM questions ORDER BY created_at, id`, questionCols),
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (s *Store) Create(ctx context.Context, q *models.Question) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO questions (id, passage, question_text, options, correct_answer, explanation, tags, skill_category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		q.ID, q.Passage, q.QuestionText, pq.Array(q.Options),
		q.CorrectAnswer, q.Explanation, pq.Array(q.Tags), q.SkillCategory,
	).Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
