package rewards

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sat-prep/backend/internal/middleware"
	"github.com/sat-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	inventory, err := h.service.Inventory(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load inventory"})
		return
	}
	writeJSON(w, http.StatusOK, inventory)
}

func (h *Handler) Roll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	result, err := h.service.Roll(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoTickets) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No tickets left — earn more by finishing study sessions!"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to roll reward"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Equip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.EquipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemName == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Item name is required"})
		return
	}

	inventory, err := h.service.Equip(r.Context(), userID, req.ItemName)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownItem):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Unknown item"})
		case errors.Is(err, ErrNotOwned):
			writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Item not in inventory"})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to equip item"})
		}
		return
	}
	writeJSON(w, http.StatusOK, inventory)
}

func (h *Handler) Unequip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UnequipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemType == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Item type is required"})
		return
	}

	inventory, err := h.service.Unequip(r.Context(), userID, req.ItemType)
	if err != nil {
		if errors.Is(err, ErrUnknownItem) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Item type must be avatar or theme"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to unequip item"})
		return
	}
	writeJSON(w, http.StatusOK, inventory)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
