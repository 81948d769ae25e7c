package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/announcement"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type AnnouncementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type announcementHandlerImpl struct {
	announcementService announcement.Service
}

func NewAnnouncementHandler(announcementService announcement.Service) AnnouncementHandler {
	return &announcementHandlerImpl{announcementService: announcementService}
}

// Create implements AnnouncementHandler.
func (h *announcementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var createReq announcement.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create announcement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.announcementService.Create(r.Context(), actor, createReq)
	if err != nil {
		slog.Error("Create announcement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Announcement published", "title", created.Title, "by", actor.Username)
	response.Created(w, "Announcement published", created)
}

// Update implements AnnouncementHandler.
func (h *announcementHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Announcement ID is required", nil)
		return
	}

	var updateReq announcement.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update announcement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = id

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.announcementService.Update(r.Context(), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement updated", updated)
}

// Deactivate implements AnnouncementHandler.
func (h *announcementHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Announcement ID is required", nil)
		return
	}

	if err := h.announcementService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement deactivated", nil)
}

// Delete implements AnnouncementHandler.
func (h *announcementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Announcement ID is required", nil)
		return
	}

	if err := h.announcementService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement deleted", nil)
}

// Get implements AnnouncementHandler.
func (h *announcementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Announcement ID is required", nil)
		return
	}

	found, err := h.announcementService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListActive implements AnnouncementHandler.
func (h *announcementHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, announcements)
}

// ListAll implements AnnouncementHandler.
func (h *announcementHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, announcements)
}
