package models

// ── Study Session API Types ───────────────────────────

type StartSessionRequest struct {
	Count int `json:"count"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Total     int    `json:"total"`
}

type NextQuestionResponse struct {
	SessionID string          `json:"session_id"`
	State     string          `json:"state"`
	Question  *ServedQuestion `json:"question,omitempty"`
	Position  int             `json:"position"`
	Total     int             `json:"total"`
}

type SubmitAnswerRequest struct {
	Answer    string `json:"answer"`
	Rationale string `json:"rationale,omitempty"`
}

type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	AIExplanation string `json:"ai_explanation,omitempty"`
	Category      string `json:"category,omitempty"`
	TicketsEarned int    `json:"tickets_earned"`
	State         string `json:"state"`
}
