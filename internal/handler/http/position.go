package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/position"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type PositionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type positionHandlerImpl struct {
	positionService position.Service
}

func NewPositionHandler(positionService position.Service) PositionHandler {
	return &positionHandlerImpl{positionService: positionService}
}

// Create implements PositionHandler.
func (h *positionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq position.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create position decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.positionService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created successfully", created)
}

// Get implements PositionHandler.
func (h *positionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Position ID is required", nil)
		return
	}

	found, err := h.positionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements PositionHandler.
func (h *positionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, positions)
}

// Update implements PositionHandler.
func (h *positionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Position ID is required", nil)
		return
	}

	var updateReq position.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update position decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.positionService.Update(r.Context(), id, updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated successfully", updated)
}

// Delete implements PositionHandler.
func (h *positionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Position ID is required", nil)
		return
	}

	if err := h.positionService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted successfully", nil)
}
