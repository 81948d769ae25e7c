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

type TimelogHandler interface {
	// Punches
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)

	// History
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)

	// Corrections
	Adjust(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type timelogHandlerImpl struct {
	timelogService timelog.Service
}

func NewTimelogHandler(timelogService timelog.Service) TimelogHandler {
	return &timelogHandlerImpl{timelogService: timelogService}
}

// ClockIn implements TimelogHandler.
func (h *timelogHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req timelog.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timelogService.ClockIn(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee clocked in", "employee_id", actor.ID)
	response.Created(w, "Clocked in successfully", result)
}

// ClockOut implements TimelogHandler.
func (h *timelogHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req timelog.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timelogService.ClockOut(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee clocked out", "employee_id", actor.ID)
	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

// StartBreak implements TimelogHandler.
func (h *timelogHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.timelogService.StartBreak(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements TimelogHandler.
func (h *timelogHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.timelogService.EndBreak(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// Status implements TimelogHandler.
func (h *timelogHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	status, err := h.timelogService.GetStatus(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// filterFromQuery builds a timelog filter from the query string.
func filterFromQuery(r *http.Request) timelog.Filter {
	filter := timelog.Filter{
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	return filter
}

// ListMine implements TimelogHandler.
func (h *timelogHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := filterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timelogService.GetMyTimelogs(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Timelogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements TimelogHandler.
func (h *timelogHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timelog ID is required", nil)
		return
	}

	found, err := h.timelogService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Search implements TimelogHandler.
func (h *timelogHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timelogService.Search(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Timelogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ExportCSV implements TimelogHandler.
func (h *timelogHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.timelogService.ExportCSV(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=timelogs.csv`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Adjust implements TimelogHandler.
func (h *timelogHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timelog ID is required", nil)
		return
	}

	var adjustReq timelog.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&adjustReq); err != nil {
		slog.Error("Adjust decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	adjustReq.ID = id

	if err := adjustReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timelogService.Adjust(r.Context(), actor, adjustReq)
	if err != nil {
		slog.Error("Adjust service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Timelog adjusted", "timelog_id", id, "by", actor.Username)
	response.SuccessWithMessage(w, "Timelog adjusted successfully", result)
}

// Delete implements TimelogHandler.
func (h *timelogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timelog ID is required", nil)
		return
	}

	if err := h.timelogService.Delete(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timelog deleted successfully", nil)
}
