package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type TimelogEditRequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAssigned(w http.ResponseWriter, r *http.Request)
}

type timelogEditRequestHandlerImpl struct {
	editRequestService timelog.EditRequestService
}

func NewTimelogEditRequestHandler(editRequestService timelog.EditRequestService) TimelogEditRequestHandler {
	return &timelogEditRequestHandlerImpl{editRequestService: editRequestService}
}

// Create implements TimelogEditRequestHandler.
func (h *timelogEditRequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var createReq timelog.CreateEditRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create edit request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.editRequestService.Create(r.Context(), actor, createReq)
	if err != nil {
		slog.Error("Create edit request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Edit request submitted", created)
}

func (h *timelogEditRequestHandlerImpl) process(w http.ResponseWriter, r *http.Request, approve bool) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Edit request ID is required", nil)
		return
	}

	var processReq timelog.ProcessEditRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&processReq); err != nil {
			slog.Error("Process edit request decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	processReq.ID = id

	var (
		result timelog.EditRequestResponse
		err    error
	)
	if approve {
		result, err = h.editRequestService.Approve(r.Context(), actor, processReq)
	} else {
		result, err = h.editRequestService.Reject(r.Context(), actor, processReq)
	}
	if err != nil {
		slog.Error("Process edit request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if approve {
		response.SuccessWithMessage(w, "Edit request approved", result)
		return
	}
	response.SuccessWithMessage(w, "Edit request rejected", result)
}

// Approve implements TimelogEditRequestHandler.
func (h *timelogEditRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, true)
}

// Reject implements TimelogEditRequestHandler.
func (h *timelogEditRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, false)
}

// ListMine implements TimelogEditRequestHandler.
func (h *timelogEditRequestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.editRequestService.ListMine(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListAssigned implements TimelogEditRequestHandler.
func (h *timelogEditRequestHandlerImpl) ListAssigned(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.editRequestService.ListAssigned(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
