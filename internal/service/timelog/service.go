package timelog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/database"
)

type service struct {
	repo     timelog.Repository
	txm      database.TxManager
	notifier notification.Service
}

func NewTimelogService(
	repo timelog.Repository,
	txm database.TxManager,
	notifier notification.Service,
) timelog.Service {
	return &service{
		repo:     repo,
		txm:      txm,
		notifier: notifier,
	}
}

// today truncates to the calendar day in the server's timezone.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ClockIn implements timelog.Service.
func (s *service) ClockIn(ctx context.Context, actor user.User, req timelog.ClockInRequest) (timelog.Response, error) {
	if strings.TrimSpace(req.Photo) == "" {
		return timelog.Response{}, timelog.ErrMissingPhoto
	}

	var result timelog.Timelog
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockEmployee(ctx, actor.ID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		active, err := s.repo.GetActiveByEmployee(ctx, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to check active timelog: %w", err)
		}
		if active != nil {
			return timelog.ErrAlreadyActive
		}

		now := time.Now()
		existing, err := s.repo.GetByEmployeeAndDate(ctx, actor.ID, today())
		if err != nil {
			return fmt.Errorf("failed to check today's timelog: %w", err)
		}

		if existing != nil {
			// Re-clock-in reuses today's row
			existing.TimeIn = &now
			existing.Status = timelog.StatusClockedIn
			existing.ClockInPhoto = &req.Photo
			if err := s.repo.Update(ctx, *existing); err != nil {
				return fmt.Errorf("failed to update timelog: %w", err)
			}
			result = *existing
			return nil
		}

		created, err := s.repo.Create(ctx, timelog.Timelog{
			EmployeeID:   actor.ID,
			LogDate:      today(),
			TimeIn:       &now,
			Status:       timelog.StatusClockedIn,
			ClockInPhoto: &req.Photo,
		})
		if err != nil {
			return fmt.Errorf("failed to create timelog: %w", err)
		}
		result = created
		return nil
	})
	if err != nil {
		return timelog.Response{}, err
	}

	return toResponse(result), nil
}

// ClockOut implements timelog.Service.
func (s *service) ClockOut(ctx context.Context, actor user.User, req timelog.ClockOutRequest) (timelog.Response, error) {
	if strings.TrimSpace(req.Photo) == "" {
		return timelog.Response{}, timelog.ErrMissingPhoto
	}

	var result timelog.Timelog
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockEmployee(ctx, actor.ID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		active, err := s.repo.GetActiveByEmployee(ctx, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to check active timelog: %w", err)
		}
		if active == nil {
			return timelog.ErrNotActive
		}
		if active.TimeIn == nil {
			return timelog.ErrNeverClockedIn
		}

		now := time.Now()

		// Auto-close an open break before clocking out
		if active.Status == timelog.StatusOnBreak && active.BreakStart != nil {
			active.BreakEnd = &now
			minutes := accumulateBreak(active.BreakDurationMinutes, *active.BreakStart, now)
			active.BreakDurationMinutes = &minutes
		}

		active.TimeOut = &now
		active.Status = timelog.StatusClockedOut
		active.ClockOutPhoto = &req.Photo
		active.TotalWorkedHours = active.WorkedHours()

		if err := s.repo.Update(ctx, *active); err != nil {
			return fmt.Errorf("failed to update timelog: %w", err)
		}
		result = *active
		return nil
	})
	if err != nil {
		return timelog.Response{}, err
	}

	return toResponse(result), nil
}

// StartBreak implements timelog.Service.
func (s *service) StartBreak(ctx context.Context, actor user.User) (timelog.Response, error) {
	var result timelog.Timelog
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockEmployee(ctx, actor.ID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		active, err := s.repo.GetActiveByEmployee(ctx, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to check active timelog: %w", err)
		}
		if active == nil || active.TimeIn == nil {
			return timelog.ErrNotClockedIn
		}
		if active.Status == timelog.StatusOnBreak {
			return timelog.ErrAlreadyOnBreak
		}

		now := time.Now()
		active.BreakStart = &now
		active.BreakEnd = nil
		active.Status = timelog.StatusOnBreak

		if err := s.repo.Update(ctx, *active); err != nil {
			return fmt.Errorf("failed to update timelog: %w", err)
		}
		result = *active
		return nil
	})
	if err != nil {
		return timelog.Response{}, err
	}

	return toResponse(result), nil
}

// EndBreak implements timelog.Service.
func (s *service) EndBreak(ctx context.Context, actor user.User) (timelog.Response, error) {
	var result timelog.Timelog
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockEmployee(ctx, actor.ID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		active, err := s.repo.GetActiveByEmployee(ctx, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to check active timelog: %w", err)
		}
		if active == nil || active.Status != timelog.StatusOnBreak || active.BreakStart == nil {
			return timelog.ErrNotOnBreak
		}

		now := time.Now()
		minutes := accumulateBreak(active.BreakDurationMinutes, *active.BreakStart, now)
		active.BreakEnd = &now
		active.BreakDurationMinutes = &minutes
		active.Status = timelog.StatusClockedIn

		if err := s.repo.Update(ctx, *active); err != nil {
			return fmt.Errorf("failed to update timelog: %w", err)
		}
		result = *active
		return nil
	})
	if err != nil {
		return timelog.Response{}, err
	}

	return toResponse(result), nil
}

func accumulateBreak(existing *int, start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	if existing != nil {
		minutes += *existing
	}
	return minutes
}

// GetStatus implements timelog.Service.
func (s *service) GetStatus(ctx context.Context, actor user.User) (timelog.StatusResponse, error) {
	active, err := s.repo.GetActiveByEmployee(ctx, actor.ID)
	if err != nil {
		return timelog.StatusResponse{}, fmt.Errorf("failed to check active timelog: %w", err)
	}

	todayLog, err := s.repo.GetByEmployeeAndDate(ctx, actor.ID, today())
	if err != nil {
		return timelog.StatusResponse{}, fmt.Errorf("failed to get today's timelog: %w", err)
	}

	status := timelog.StatusClockedOut
	if active != nil {
		status = active.Status
	}

	resp := timelog.StatusResponse{
		Status:      string(status),
		CanClockIn:  active == nil,
		CanClockOut: active != nil,
	}
	if todayLog != nil {
		r := toResponse(*todayLog)
		resp.TodayTimelog = &r
	}

	return resp, nil
}

// GetMyTimelogs implements timelog.Service.
func (s *service) GetMyTimelogs(ctx context.Context, actor user.User, filter timelog.Filter) (timelog.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return timelog.ListResponse{}, err
	}

	timelogs, total, err := s.repo.ListByEmployee(ctx, actor.ID, filter)
	if err != nil {
		return timelog.ListResponse{}, fmt.Errorf("failed to list timelogs: %w", err)
	}

	return toListResponse(timelogs, total, filter), nil
}

// Get implements timelog.Service.
func (s *service) Get(ctx context.Context, actor user.User, id string) (timelog.Response, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return timelog.Response{}, err
	}

	if !actor.IsAdmin() && !actor.IsHR() && found.EmployeeID != actor.ID {
		return timelog.Response{}, timelog.ErrTimelogNotFound
	}

	return toResponse(found), nil
}

// Search implements timelog.Service.
func (s *service) Search(ctx context.Context, filter timelog.Filter) (timelog.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return timelog.ListResponse{}, err
	}

	timelogs, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return timelog.ListResponse{}, fmt.Errorf("failed to search timelogs: %w", err)
	}

	return toListResponse(timelogs, total, filter), nil
}

// ExportCSV implements timelog.Service.
func (s *service) ExportCSV(ctx context.Context, filter timelog.Filter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// Exports ignore pagination and stream the whole filtered range.
	filter.Page = 1
	filter.Limit = 10000

	timelogs, _, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search timelogs: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Employee", "Username", "Date", "Time In", "Time Out", "Break Minutes", "Worked Hours", "Status"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range timelogs {
		record := []string{
			strOrEmpty(t.EmployeeName),
			strOrEmpty(t.EmployeeUsername),
			t.LogDate.Format("2006-01-02"),
			fmtTimePtr(t.EffectiveTimeIn(), "15:04:05"),
			fmtTimePtr(t.EffectiveTimeOut(), "15:04:05"),
			strconv.Itoa(t.EffectiveBreakMinutes()),
			strconv.FormatFloat(t.WorkedHours(), 'f', 2, 64),
			string(t.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// Adjust implements timelog.Service.
func (s *service) Adjust(ctx context.Context, actor user.User, req timelog.AdjustRequest) (timelog.Response, error) {
	if err := req.Validate(); err != nil {
		return timelog.Response{}, err
	}

	if !actor.CanAdjustTimelogs() {
		return timelog.Response{}, timelog.ErrAdjustmentForbidden
	}

	found, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return timelog.Response{}, err
	}

	now := time.Now()
	if req.TimeIn != nil {
		parsed, err := time.Parse(time.RFC3339, *req.TimeIn)
		if err != nil {
			return timelog.Response{}, fmt.Errorf("failed to parse time_in: %w", err)
		}
		found.AdjustedTimeIn = &parsed
	}
	if req.TimeOut != nil {
		parsed, err := time.Parse(time.RFC3339, *req.TimeOut)
		if err != nil {
			return timelog.Response{}, fmt.Errorf("failed to parse time_out: %w", err)
		}
		found.AdjustedTimeOut = &parsed
	}
	if req.BreakDurationMinutes != nil {
		found.AdjustedBreakMinutes = req.BreakDurationMinutes
	}
	found.AdjustmentReason = &req.Reason
	found.AdjustedByID = &actor.ID
	found.AdjustmentDate = &now
	found.TotalWorkedHours = found.WorkedHours()

	if err := s.repo.Update(ctx, found); err != nil {
		return timelog.Response{}, fmt.Errorf("failed to update timelog: %w", err)
	}

	_ = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:     found.EmployeeID,
		SenderID:        &actor.ID,
		Type:            notification.TypeTimelogAdjusted,
		Title:           "Timelog adjusted",
		Message:         fmt.Sprintf("Your timelog for %s was adjusted: %s", found.LogDate.Format("2006-01-02"), req.Reason),
		RelatedEntityID: &found.ID,
	})

	return toResponse(found), nil
}

// Delete implements timelog.Service.
func (s *service) Delete(ctx context.Context, actor user.User, id string) error {
	if !actor.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	return s.repo.Delete(ctx, id)
}

func toResponse(t timelog.Timelog) timelog.Response {
	return timelog.Response{
		ID:                   t.ID,
		EmployeeID:           t.EmployeeID,
		EmployeeName:         t.EmployeeName,
		LogDate:              t.LogDate.Format("2006-01-02"),
		TimeIn:               fmtTimePtrRFC(t.TimeIn),
		TimeOut:              fmtTimePtrRFC(t.TimeOut),
		BreakStart:           fmtTimePtrRFC(t.BreakStart),
		BreakEnd:             fmtTimePtrRFC(t.BreakEnd),
		Status:               string(t.Status),
		BreakDurationMinutes: t.BreakDurationMinutes,
		TotalWorkedHours:     t.WorkedHours(),
		AdjustedTimeIn:       fmtTimePtrRFC(t.AdjustedTimeIn),
		AdjustedTimeOut:      fmtTimePtrRFC(t.AdjustedTimeOut),
		AdjustedBreakMinutes: t.AdjustedBreakMinutes,
		AdjustmentReason:     t.AdjustmentReason,
		AdjustedByID:         t.AdjustedByID,
		AdjustmentDate:       fmtTimePtrRFC(t.AdjustmentDate),
		CreatedAt:            t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            t.UpdatedAt.Format(time.RFC3339),
	}
}

func toListResponse(timelogs []timelog.Timelog, total int64, filter timelog.Filter) timelog.ListResponse {
	responses := make([]timelog.Response, len(timelogs))
	for i, t := range timelogs {
		responses[i] = toResponse(t)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return timelog.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Timelogs:   responses,
	}
}

func fmtTimePtrRFC(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func fmtTimePtr(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
