package job

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/job"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

type service struct {
	positionRepo    job.PositionRepository
	applicationRepo job.ApplicationRepository
	userRepo        user.Repository
	notifier        notification.Service
}

func NewJobService(
	positionRepo job.PositionRepository,
	applicationRepo job.ApplicationRepository,
	userRepo user.Repository,
	notifier notification.Service,
) job.Service {
	return &service{
		positionRepo:    positionRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// CreatePosition implements job.Service.
func (s *service) CreatePosition(ctx context.Context, req job.CreatePositionRequest) (job.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return job.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, job.Position{
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Active:         true,
	})
	if err != nil {
		return job.PositionResponse{}, fmt.Errorf("failed to create job position: %w", err)
	}

	return toPositionResponse(created), nil
}

// UpdatePosition implements job.Service.
func (s *service) UpdatePosition(ctx context.Context, req job.UpdatePositionRequest) (job.PositionResponse, error) {
	found, err := s.positionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return job.PositionResponse{}, err
	}

	if req.Title != nil {
		found.Title = *req.Title
	}
	if req.Description != nil {
		found.Description = *req.Description
	}
	if req.Requirements != nil {
		found.Requirements = req.Requirements
	}
	if req.Location != nil {
		found.Location = req.Location
	}
	if req.EmploymentType != nil {
		found.EmploymentType = req.EmploymentType
	}

	if err := s.positionRepo.Update(ctx, found); err != nil {
		return job.PositionResponse{}, fmt.Errorf("failed to update job position: %w", err)
	}

	return toPositionResponse(found), nil
}

// DeactivatePosition implements job.Service.
func (s *service) DeactivatePosition(ctx context.Context, id string) error {
	found, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	found.Active = false
	if err := s.positionRepo.Update(ctx, found); err != nil {
		return fmt.Errorf("failed to deactivate job position: %w", err)
	}

	return nil
}

// ListOpenPositions implements job.Service.
func (s *service) ListOpenPositions(ctx context.Context) ([]job.PositionResponse, error) {
	positions, err := s.positionRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job positions: %w", err)
	}
	return toPositionResponses(positions), nil
}

// ListAllPositions implements job.Service.
func (s *service) ListAllPositions(ctx context.Context) ([]job.PositionResponse, error) {
	positions, err := s.positionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job positions: %w", err)
	}
	return toPositionResponses(positions), nil
}

// Apply implements job.Service. Public; the posting must still be open.
func (s *service) Apply(ctx context.Context, req job.ApplyRequest) (job.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return job.ApplicationResponse{}, err
	}

	posting, err := s.positionRepo.GetByID(ctx, req.JobPositionID)
	if err != nil {
		return job.ApplicationResponse{}, err
	}
	if !posting.Active {
		return job.ApplicationResponse{}, job.ErrPositionInactive
	}

	application := job.Application{
		JobPositionID: posting.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        job.ApplicationNew,
	}

	if req.File != nil && req.FileHeader != nil {
		resume, err := io.ReadAll(req.File)
		if err != nil {
			return job.ApplicationResponse{}, fmt.Errorf("failed to read resume: %w", err)
		}
		application.Resume = resume
		application.ResumeFileName = &req.FileHeader.Filename
	}

	created, err := s.applicationRepo.Create(ctx, application)
	if err != nil {
		return job.ApplicationResponse{}, fmt.Errorf("failed to create application: %w", err)
	}
	created.PositionTitle = &posting.Title

	s.notifyHR(ctx, created, posting)

	return toApplicationResponse(created), nil
}

func (s *service) notifyHR(ctx context.Context, a job.Application, posting job.Position) {
	hrUsers, err := s.userRepo.GetByRole(ctx, user.RoleHR)
	if err != nil {
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(hrUsers))
	for _, u := range hrUsers {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID:     u.ID,
			Type:            notification.TypeJobApplication,
			Title:           "New job application",
			Message:         fmt.Sprintf("%s %s applied for %s", a.FirstName, a.LastName, posting.Title),
			RelatedEntityID: &a.ID,
		})
	}

	_ = s.notifier.QueueBulkNotification(ctx, reqs)
}

// ReviewApplication implements job.Service.
func (s *service) ReviewApplication(ctx context.Context, actorID string, req job.ReviewApplicationRequest) (job.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return job.ApplicationResponse{}, err
	}

	found, err := s.applicationRepo.GetByID(ctx, req.ID)
	if err != nil {
		return job.ApplicationResponse{}, err
	}

	found.Status = job.ApplicationStatus(req.Status)
	if req.ReviewNotes != nil {
		found.ReviewNotes = req.ReviewNotes
	}

	if err := s.applicationRepo.Update(ctx, found); err != nil {
		return job.ApplicationResponse{}, fmt.Errorf("failed to update application: %w", err)
	}

	return toApplicationResponse(found), nil
}

// GetApplication implements job.Service.
func (s *service) GetApplication(ctx context.Context, id string) (job.ApplicationResponse, error) {
	found, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return job.ApplicationResponse{}, err
	}
	return toApplicationResponse(found), nil
}

// GetResume implements job.Service.
func (s *service) GetResume(ctx context.Context, id string) ([]byte, string, error) {
	return s.applicationRepo.GetResume(ctx, id)
}

// ListApplications implements job.Service.
func (s *service) ListApplications(ctx context.Context, positionID *string) ([]job.ApplicationResponse, error) {
	var (
		applications []job.Application
		err          error
	)
	if positionID != nil && *positionID != "" {
		applications, err = s.applicationRepo.ListByPosition(ctx, *positionID)
	} else {
		applications, err = s.applicationRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]job.ApplicationResponse, len(applications))
	for i, a := range applications {
		responses[i] = toApplicationResponse(a)
	}
	return responses, nil
}

func toPositionResponse(p job.Position) job.PositionResponse {
	return job.PositionResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Requirements:   p.Requirements,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		Active:         p.Active,
		PostedDate:     p.PostedDate.Format(time.RFC3339),
	}
}

func toPositionResponses(positions []job.Position) []job.PositionResponse {
	responses := make([]job.PositionResponse, len(positions))
	for i, p := range positions {
		responses[i] = toPositionResponse(p)
	}
	return responses
}

func toApplicationResponse(a job.Application) job.ApplicationResponse {
	return job.ApplicationResponse{
		ID:             a.ID,
		JobPositionID:  a.JobPositionID,
		PositionTitle:  a.PositionTitle,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Phone:          a.Phone,
		ResumeFileName: a.ResumeFileName,
		Status:         string(a.Status),
		ReviewNotes:    a.ReviewNotes,
		AppliedDate:    a.AppliedDate.Format(time.RFC3339),
	}
}
