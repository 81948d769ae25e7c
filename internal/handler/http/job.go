package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/job"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type JobHandler interface {
	// Postings
	CreatePosition(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeactivatePosition(w http.ResponseWriter, r *http.Request)
	ListOpenPositions(w http.ResponseWriter, r *http.Request)
	ListAllPositions(w http.ResponseWriter, r *http.Request)

	// Applications
	Apply(w http.ResponseWriter, r *http.Request)
	ReviewApplication(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
	DownloadResume(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.Service
}

func NewJobHandler(jobService job.Service) JobHandler {
	return &jobHandlerImpl{jobService: jobService}
}

// CreatePosition implements JobHandler.
func (h *jobHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var createReq job.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create job position decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.jobService.CreatePosition(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job position created", created)
}

// UpdatePosition implements JobHandler.
func (h *jobHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Job position ID is required", nil)
		return
	}

	var updateReq job.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update job position decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = id

	updated, err := h.jobService.UpdatePosition(r.Context(), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job position updated", updated)
}

// DeactivatePosition implements JobHandler.
func (h *jobHandlerImpl) DeactivatePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Job position ID is required", nil)
		return
	}

	if err := h.jobService.DeactivatePosition(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job position closed", nil)
}

// ListOpenPositions implements JobHandler. Public.
func (h *jobHandlerImpl) ListOpenPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.jobService.ListOpenPositions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, positions)
}

// ListAllPositions implements JobHandler.
func (h *jobHandlerImpl) ListAllPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.jobService.ListAllPositions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, positions)
}

// Apply implements JobHandler. Public multipart endpoint: the "data" part
// carries the JSON fields, "resume" carries the file.
func (h *jobHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	var applyReq job.ApplyRequest
	data := r.FormValue("data")
	if data == "" {
		response.BadRequest(w, "data part is required", nil)
		return
	}
	if err := json.Unmarshal([]byte(data), &applyReq); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()
		applyReq.File = file
		applyReq.FileHeader = fileHeader
	}

	if err := applyReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.jobService.Apply(r.Context(), applyReq)
	if err != nil {
		slog.Error("Apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Job application received", "application_id", created.ID)
	response.Created(w, "Application submitted", created)
}

// ReviewApplication implements JobHandler.
func (h *jobHandlerImpl) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	var reviewReq job.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review application decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = id

	if err := reviewReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	reviewed, err := h.jobService.ReviewApplication(r.Context(), actor.ID, reviewReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application reviewed", reviewed)
}

// GetApplication implements JobHandler.
func (h *jobHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	found, err := h.jobService.GetApplication(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// DownloadResume implements JobHandler.
func (h *jobHandlerImpl) DownloadResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	data, filename, err := h.jobService.GetResume(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListApplications implements JobHandler.
func (h *jobHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	var positionID *string
	if id := r.URL.Query().Get("position_id"); id != "" {
		positionID = &id
	}

	applications, err := h.jobService.ListApplications(r.Context(), positionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, applications)
}
