package questions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sat-prep/backend/internal/middleware"
	"github.com/sat-prep/backend/internal/models"
)

type Handler struct {
	service *Service
	store   *Store
}

func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

// ── Study Sessions ──────────────────────────────────────

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, _ := middleware.UserIDFrom(r.Context())

	sess, err := h.service.StartSession(r.Context(), userID, req.Count)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start session"})
		return
	}

	writeJSON(w, http.StatusCreated, models.SessionResponse{
		SessionID: sess.ID,
		State:     string(sess.State()),
		Total:     len(sess.Questions),
	})
}

func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	resp, err := h.service.NextQuestion(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load next question"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
		case errors.Is(err, ErrSessionFinished):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Session has no current question"})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answer"})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Authoring Shim ──────────────────────────────────────

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, models.QuestionListResponse{Questions: questions, Total: len(questions)})
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	q := models.Question{
		ID:            strings.TrimSpace(req.ID),
		Passage:       req.Passage,
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Tags:          req.Tags,
		SkillCategory: req.SkillCategory,
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}

	if problems := Validate(&q); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question: " + strings.Join(problems, "; ")})
		return
	}

	if err := h.store.Create(r.Context(), &q); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "A question with this id already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create question"})
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete question"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
