package models

import "time"

// Question is a bank question. The bank is authored externally and the
// study flow treats it as read-only; the authoring endpoints exist so the
// content pipeline has somewhere to push.
type Question struct {
	ID            string    `json:"id"`
	Passage       string    `json:"passage,omitempty"`
	QuestionText  string    `json:"question_text"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
	Tags          []string  `json:"tags"`
	SkillCategory string    `json:"skill_category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsFreeResponse reports whether the question is graded as typed input
// rather than a choice pick. Zero or one option means free response.
func (q *Question) IsFreeResponse() bool {
	return len(q.Options) <= 1
}

// ── Served Types (strip answers for serving) ───────────

type ServedQuestion struct {
	ID           string   `json:"id"`
	Passage      string   `json:"passage,omitempty"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Tags         []string `json:"tags,omitempty"`
	FreeResponse bool     `json:"free_response"`
}

func (q *Question) ToServed() ServedQuestion {
	return ServedQuestion{
		ID:           q.ID,
		Passage:      q.Passage,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Tags:         q.Tags,
		FreeResponse: q.IsFreeResponse(),
	}
}

// ── Authoring Types ───────────────────────────────────

type CreateQuestionRequest struct {
	ID            string   `json:"id,omitempty"`
	Passage       string   `json:"passage,omitempty"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Tags          []string `json:"tags"`
	SkillCategory string   `json:"skill_category,omitempty"`
}

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
}
