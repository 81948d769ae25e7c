package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

// Position titles that carry leave-approval authority over HR staff.
const (
	titleHrSupervisor = "HR-Supervisor"
	titleHrManager    = "HR-Manager"
)

type service struct {
	balanceRepo leave.BalanceRepository
	requestRepo leave.RequestRepository
	userRepo    user.Repository
	txm         database.TxManager
	notifier    notification.Service
}

func NewLeaveService(
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	userRepo user.Repository,
	txm database.TxManager,
	notifier notification.Service,
) leave.Service {
	return &service{
		balanceRepo: balanceRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		txm:         txm,
		notifier:    notifier,
	}
}

// GetBalances implements leave.Service. Missing ledger rows are seeded with
// the default allocation, so first access initializes the year.
func (s *service) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	existing, err := s.balanceRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	byType := make(map[leave.Type]leave.Balance, len(existing))
	for _, b := range existing {
		byType[b.LeaveType] = b
	}

	responses := make([]leave.BalanceResponse, 0, len(leave.AllTypes()))
	for _, t := range leave.AllTypes() {
		b, ok := byType[t]
		if !ok {
			seeded := leave.Balance{
				EmployeeID: employeeID,
				LeaveType:  t,
				Year:       year,
				TotalDays:  leave.DefaultAllocation(t),
			}
			seeded.Recompute()
			created, err := s.balanceRepo.Create(ctx, seeded)
			if err != nil {
				return nil, fmt.Errorf("failed to seed leave balance: %w", err)
			}
			b = created
		}
		responses = append(responses, toBalanceResponse(b))
	}

	return responses, nil
}

// Submit implements leave.Service.
func (s *service) Submit(ctx context.Context, actor user.User, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	if start.After(end) {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	now := time.Now()
	todayDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(todayDate) {
		return leave.RequestResponse{}, leave.ErrPastStartDate
	}

	pending := leave.Request{
		EmployeeID: actor.ID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.RequestPending,
	}
	days := pending.DaysRequested()

	var created leave.Request
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requestRepo.LockEmployee(ctx, actor.ID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		overlapping, err := s.requestRepo.HasOverlapping(ctx, actor.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingRequest
		}

		balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, actor.ID, pending.LeaveType, start.Year())
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}
		if balance != nil && balance.RemainingDays < days {
			return leave.ErrInsufficientBalance
		}

		created, err = s.requestRepo.Create(ctx, pending)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.notifyHR(ctx, actor, created)

	return toRequestResponse(created), nil
}

// notifyHR routes the submission notice. Requests from HR staff escalate to
// HR-Supervisor and HR-Manager position holders; everyone else's go to all
// HR-role users plus HR-Supervisor holders.
func (s *service) notifyHR(ctx context.Context, requester user.User, req leave.Request) {
	var recipients []user.User

	if requester.IsHR() {
		holders, err := s.userRepo.GetByPositionTitles(ctx, []string{titleHrSupervisor, titleHrManager})
		if err == nil {
			recipients = holders
		}
	} else {
		hrUsers, err := s.userRepo.GetByRole(ctx, user.RoleHR)
		if err == nil {
			recipients = hrUsers
		}
		holders, err := s.userRepo.GetByPositionTitles(ctx, []string{titleHrSupervisor})
		if err == nil {
			recipients = append(recipients, holders...)
		}
	}

	seen := make(map[string]struct{}, len(recipients))
	reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
	for _, r := range recipients {
		if r.ID == requester.ID {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID:     r.ID,
			SenderID:        &requester.ID,
			Type:            notification.TypeLeaveRequest,
			Title:           "New leave request",
			Message:         fmt.Sprintf("%s requested %s leave from %s to %s", requester.FullName(), req.LeaveType, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02")),
			RelatedEntityID: &req.ID,
		})
	}

	_ = s.notifier.QueueBulkNotification(ctx, reqs)
}

// canProcess applies the approval authorization contract: requests from HR
// staff need an admin or an HR-Supervisor/HR-Manager position holder; all
// other requests can be decided by any HR, admin or HR-Supervisor holder.
func canProcess(actor user.User, owner user.User) bool {
	if owner.IsHR() {
		return actor.IsAdmin() || actor.HasPositionTitle(titleHrSupervisor, titleHrManager)
	}
	return actor.IsAdmin() || actor.IsHR() || actor.HasPositionTitle(titleHrSupervisor)
}

// Approve implements leave.Service.
func (s *service) Approve(ctx context.Context, actor user.User, req leave.ProcessRequest) (leave.RequestResponse, error) {
	found, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if found.Status != leave.RequestPending {
		return leave.RequestResponse{}, leave.ErrRequestNotPending
	}

	owner, err := s.userRepo.GetByID(ctx, found.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !canProcess(actor, owner) {
		return leave.RequestResponse{}, leave.ErrApprovalForbidden
	}

	days := found.DaysRequested()

	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		found.Status = leave.RequestApproved
		found.ApproverID = &actor.ID
		found.ApproverComments = req.Comments
		if err := s.requestRepo.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, found.EmployeeID, found.LeaveType, found.StartDate.Year())
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}
		if balance == nil {
			seeded := leave.Balance{
				EmployeeID: found.EmployeeID,
				LeaveType:  found.LeaveType,
				Year:       found.StartDate.Year(),
				TotalDays:  leave.DefaultAllocation(found.LeaveType),
			}
			seeded.Recompute()
			created, err := s.balanceRepo.Create(ctx, seeded)
			if err != nil {
				return fmt.Errorf("failed to seed leave balance: %w", err)
			}
			balance = &created
		}

		balance.AddUsedDays(days)
		if err := s.balanceRepo.Update(ctx, *balance); err != nil {
			return fmt.Errorf("failed to update leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:     found.EmployeeID,
		SenderID:        &actor.ID,
		Type:            notification.TypeLeaveApproved,
		Title:           "Leave request approved",
		Message:         fmt.Sprintf("Your %s leave from %s to %s was approved", found.LeaveType, found.StartDate.Format("2006-01-02"), found.EndDate.Format("2006-01-02")),
		RelatedEntityID: &found.ID,
	})

	return toRequestResponse(found), nil
}

// Reject implements leave.Service.
func (s *service) Reject(ctx context.Context, actor user.User, req leave.ProcessRequest) (leave.RequestResponse, error) {
	found, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if found.Status != leave.RequestPending {
		return leave.RequestResponse{}, leave.ErrRequestNotPending
	}

	owner, err := s.userRepo.GetByID(ctx, found.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !canProcess(actor, owner) {
		return leave.RequestResponse{}, leave.ErrApprovalForbidden
	}

	found.Status = leave.RequestRejected
	found.ApproverID = &actor.ID
	found.ApproverComments = req.Comments
	if err := s.requestRepo.Update(ctx, found); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:     found.EmployeeID,
		SenderID:        &actor.ID,
		Type:            notification.TypeLeaveRejected,
		Title:           "Leave request rejected",
		Message:         fmt.Sprintf("Your %s leave from %s to %s was rejected", found.LeaveType, found.StartDate.Format("2006-01-02"), found.EndDate.Format("2006-01-02")),
		RelatedEntityID: &found.ID,
	})

	return toRequestResponse(found), nil
}

// Get implements leave.Service.
func (s *service) Get(ctx context.Context, actor user.User, id string) (leave.RequestResponse, error) {
	found, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if !actor.IsAdmin() && !actor.IsHR() && found.EmployeeID != actor.ID {
		return leave.RequestResponse{}, leave.ErrRequestNotFound
	}

	return toRequestResponse(found), nil
}

// ListMine implements leave.Service.
func (s *service) ListMine(ctx context.Context, actor user.User) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepo.ListByEmployee(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), nil
}

// ListPending implements leave.Service.
func (s *service) ListPending(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepo.ListByStatus(ctx, leave.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), nil
}

// ListAll implements leave.Service.
func (s *service) ListAll(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), nil
}

func toBalanceResponse(b leave.Balance) leave.BalanceResponse {
	return leave.BalanceResponse{
		LeaveType:     string(b.LeaveType),
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays,
	}
}

func toRequestResponse(r leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		LeaveType:        string(r.LeaveType),
		StartDate:        r.StartDate.Format("2006-01-02"),
		EndDate:          r.EndDate.Format("2006-01-02"),
		DaysRequested:    r.DaysRequested(),
		Reason:           r.Reason,
		Status:           string(r.Status),
		ApproverID:       r.ApproverID,
		ApproverComments: r.ApproverComments,
		RequestDate:      r.RequestDate.Format(time.RFC3339),
	}
}

func toRequestResponses(requests []leave.Request) []leave.RequestResponse {
	responses := make([]leave.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = toRequestResponse(r)
	}
	return responses
}
