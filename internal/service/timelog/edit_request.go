package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

type editRequestService struct {
	repo        timelog.EditRequestRepository
	timelogRepo timelog.Repository
	userRepo    user.Repository
	notifier    notification.Service
}

func NewEditRequestService(
	repo timelog.EditRequestRepository,
	timelogRepo timelog.Repository,
	userRepo user.Repository,
	notifier notification.Service,
) timelog.EditRequestService {
	return &editRequestService{
		repo:        repo,
		timelogRepo: timelogRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Create implements timelog.EditRequestService.
func (s *editRequestService) Create(ctx context.Context, actor user.User, req timelog.CreateEditRequest) (timelog.EditRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.EditRequestResponse{}, err
	}

	target, err := s.timelogRepo.GetByID(ctx, req.TimelogID)
	if err != nil {
		return timelog.EditRequestResponse{}, err
	}
	if target.EmployeeID != actor.ID {
		return timelog.EditRequestResponse{}, timelog.ErrTimelogNotFound
	}

	// The assignee must exist; the request routes straight to them
	assignee, err := s.userRepo.GetByID(ctx, req.AssignedHrID)
	if err != nil {
		return timelog.EditRequestResponse{}, err
	}

	entity := timelog.EditRequest{
		TimelogID:    req.TimelogID,
		EmployeeID:   actor.ID,
		AssignedHrID: assignee.ID,
		Reason:       req.Reason,
		Status:       timelog.EditRequestPending,
	}
	if req.RequestedTimeIn != nil {
		parsed, err := time.Parse(time.RFC3339, *req.RequestedTimeIn)
		if err != nil {
			return timelog.EditRequestResponse{}, fmt.Errorf("failed to parse requested_time_in: %w", err)
		}
		entity.RequestedTimeIn = &parsed
	}
	if req.RequestedTimeOut != nil {
		parsed, err := time.Parse(time.RFC3339, *req.RequestedTimeOut)
		if err != nil {
			return timelog.EditRequestResponse{}, fmt.Errorf("failed to parse requested_time_out: %w", err)
		}
		entity.RequestedTimeOut = &parsed
	}
	entity.RequestedBreakMinutes = req.RequestedBreakMinutes

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return timelog.EditRequestResponse{}, fmt.Errorf("failed to create edit request: %w", err)
	}

	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:     assignee.ID,
		SenderID:        &actor.ID,
		Type:            notification.TypeEditRequest,
		Title:           "Timelog edit request",
		Message:         fmt.Sprintf("%s requested a timelog correction: %s", actor.FullName(), req.Reason),
		RelatedEntityID: &created.ID,
	})

	return toEditRequestResponse(created), nil
}

// Approve implements timelog.EditRequestService.
func (s *editRequestService) Approve(ctx context.Context, actor user.User, req timelog.ProcessEditRequest) (timelog.EditRequestResponse, error) {
	return s.process(ctx, actor, req, timelog.EditRequestApproved)
}

// Reject implements timelog.EditRequestService.
func (s *editRequestService) Reject(ctx context.Context, actor user.User, req timelog.ProcessEditRequest) (timelog.EditRequestResponse, error) {
	return s.process(ctx, actor, req, timelog.EditRequestRejected)
}

// process records the decision. Requested values are never auto-applied;
// corrections go through the adjust operation with its own audit trail.
func (s *editRequestService) process(ctx context.Context, actor user.User, req timelog.ProcessEditRequest, decision timelog.EditRequestStatus) (timelog.EditRequestResponse, error) {
	found, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return timelog.EditRequestResponse{}, err
	}

	if !actor.IsAdmin() && found.AssignedHrID != actor.ID {
		return timelog.EditRequestResponse{}, timelog.ErrEditRequestForbidden
	}
	if found.Status != timelog.EditRequestPending {
		return timelog.EditRequestResponse{}, timelog.ErrEditRequestNotPending
	}

	now := time.Now()
	found.Status = decision
	found.HrResponse = req.Response
	found.ProcessedByID = &actor.ID
	found.ProcessedDate = &now

	if err := s.repo.Update(ctx, found); err != nil {
		return timelog.EditRequestResponse{}, fmt.Errorf("failed to update edit request: %w", err)
	}

	verdict := "approved"
	if decision == timelog.EditRequestRejected {
		verdict = "rejected"
	}
	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:     found.EmployeeID,
		SenderID:        &actor.ID,
		Type:            notification.TypeEditRequestProcessed,
		Title:           "Timelog edit request " + verdict,
		Message:         fmt.Sprintf("Your timelog edit request was %s", verdict),
		RelatedEntityID: &found.ID,
	})

	return toEditRequestResponse(found), nil
}

// ListMine implements timelog.EditRequestService.
func (s *editRequestService) ListMine(ctx context.Context, actor user.User) ([]timelog.EditRequestResponse, error) {
	requests, err := s.repo.ListByEmployee(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list edit requests: %w", err)
	}
	return toEditRequestResponses(requests), nil
}

// ListAssigned implements timelog.EditRequestService.
func (s *editRequestService) ListAssigned(ctx context.Context, actor user.User) ([]timelog.EditRequestResponse, error) {
	var (
		requests []timelog.EditRequest
		err      error
	)
	if actor.IsAdmin() {
		requests, err = s.repo.ListAll(ctx)
	} else {
		requests, err = s.repo.ListByAssignedHr(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list edit requests: %w", err)
	}
	return toEditRequestResponses(requests), nil
}

func toEditRequestResponse(req timelog.EditRequest) timelog.EditRequestResponse {
	return timelog.EditRequestResponse{
		ID:                    req.ID,
		TimelogID:             req.TimelogID,
		EmployeeID:            req.EmployeeID,
		EmployeeName:          req.EmployeeName,
		AssignedHrID:          req.AssignedHrID,
		Reason:                req.Reason,
		RequestedTimeIn:       fmtTimePtrRFC(req.RequestedTimeIn),
		RequestedTimeOut:      fmtTimePtrRFC(req.RequestedTimeOut),
		RequestedBreakMinutes: req.RequestedBreakMinutes,
		Status:                string(req.Status),
		HrResponse:            req.HrResponse,
		ProcessedByID:         req.ProcessedByID,
		ProcessedDate:         fmtTimePtrRFC(req.ProcessedDate),
		RequestDate:           req.RequestDate.Format(time.RFC3339),
	}
}

func toEditRequestResponses(requests []timelog.EditRequest) []timelog.EditRequestResponse {
	responses := make([]timelog.EditRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = toEditRequestResponse(r)
	}
	return responses
}
