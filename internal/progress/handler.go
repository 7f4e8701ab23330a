package progress

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sat-prep/backend/internal/middleware"
	"github.com/sat-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetScores returns the full score report: per-category 200-800 scores
// with accuracy labels, plus section means.
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	report, err := h.service.ScoreReport(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load scores"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) GetWeakCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	weak, err := h.service.WeakCategories(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load weak categories"})
		return
	}

	writeJSON(w, http.StatusOK, models.WeakCategoriesResponse{
		Categories: weak,
		Threshold:  DefaultWeakThreshold,
	})
}

// GetReview returns the missed questions for one category with the
// answer the user originally gave.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	category := mux.Vars(r)["category"]
	if category == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Category is required"})
		return
	}

	missed, err := h.service.Review(r.Context(), userID, category)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load review questions"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category":  category,
		"questions": missed,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
