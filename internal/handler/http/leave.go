package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalances(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// GetMyBalances implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	h.balances(w, r, actor.ID)
}

// GetEmployeeBalances returns another employee's ledger (admin/HR).
func (h *leaveHandlerImpl) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	h.balances(w, r, employeeID)
}

func (h *leaveHandlerImpl) balances(w http.ResponseWriter, r *http.Request, employeeID string) {
	year := getIntQueryParam(r, "year", time.Now().Year())

	balances, err := h.leaveService.GetBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var submitReq leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := submitReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.Submit(r.Context(), actor, submitReq)
	if err != nil {
		slog.Error("Submit leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request submitted", "employee_id", actor.ID, "leave_type", submitReq.LeaveType)
	response.Created(w, "Leave request submitted", created)
}

func (h *leaveHandlerImpl) process(w http.ResponseWriter, r *http.Request, approve bool) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var processReq leave.ProcessRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&processReq); err != nil {
			slog.Error("Process leave decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	processReq.ID = id

	var (
		result leave.RequestResponse
		err    error
	)
	if approve {
		result, err = h.leaveService.Approve(r.Context(), actor, processReq)
	} else {
		result, err = h.leaveService.Reject(r.Context(), actor, processReq)
	}
	if err != nil {
		slog.Error("Process leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if approve {
		response.SuccessWithMessage(w, "Leave request approved", result)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, true)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, false)
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	found, err := h.leaveService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListMine implements LeaveHandler.
func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.leaveService.ListMine(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements LeaveHandler.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListAll implements LeaveHandler.
func (h *leaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
