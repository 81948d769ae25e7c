package announcement

import (
	"context"
	"fmt"
	"time"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/announcement"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

type service struct {
	repo     announcement.Repository
	userRepo user.Repository
	notifier notification.Service
}

func NewAnnouncementService(
	repo announcement.Repository,
	userRepo user.Repository,
	notifier notification.Service,
) announcement.Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Create implements announcement.Service.
func (s *service) Create(ctx context.Context, actor user.User, req announcement.CreateRequest) (announcement.Response, error) {
	if err := req.Validate(); err != nil {
		return announcement.Response{}, err
	}

	created, err := s.repo.Create(ctx, announcement.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		Priority:    announcement.Priority(req.Priority),
		Active:      true,
		CreatedByID: actor.ID,
	})
	if err != nil {
		return announcement.Response{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.broadcast(ctx, actor, created)

	return toResponse(created), nil
}

// broadcast fans the announcement out to every enabled user except the author.
func (s *service) broadcast(ctx context.Context, actor user.User, a announcement.Announcement) {
	users, err := s.userRepo.ListEnabled(ctx)
	if err != nil {
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(users))
	for _, u := range users {
		if u.ID == actor.ID {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID:     u.ID,
			SenderID:        &actor.ID,
			Type:            notification.TypeAnnouncement,
			Title:           "New announcement: " + a.Title,
			Message:         a.Content,
			RelatedEntityID: &a.ID,
		})
	}

	_ = s.notifier.QueueBulkNotification(ctx, reqs)
}

// Update implements announcement.Service.
func (s *service) Update(ctx context.Context, req announcement.UpdateRequest) (announcement.Response, error) {
	if err := req.Validate(); err != nil {
		return announcement.Response{}, err
	}

	found, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return announcement.Response{}, err
	}

	if req.Title != nil {
		found.Title = *req.Title
	}
	if req.Content != nil {
		found.Content = *req.Content
	}
	if req.Priority != nil {
		found.Priority = announcement.Priority(*req.Priority)
	}

	if err := s.repo.Update(ctx, found); err != nil {
		return announcement.Response{}, fmt.Errorf("failed to update announcement: %w", err)
	}

	return toResponse(found), nil
}

// Deactivate implements announcement.Service.
func (s *service) Deactivate(ctx context.Context, id string) error {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	found.Active = false
	if err := s.repo.Update(ctx, found); err != nil {
		return fmt.Errorf("failed to deactivate announcement: %w", err)
	}

	return nil
}

// Delete implements announcement.Service.
func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get implements announcement.Service.
func (s *service) Get(ctx context.Context, id string) (announcement.Response, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return announcement.Response{}, err
	}
	return toResponse(found), nil
}

// ListActive implements announcement.Service.
func (s *service) ListActive(ctx context.Context) ([]announcement.Response, error) {
	announcements, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return toResponses(announcements), nil
}

// ListAll implements announcement.Service.
func (s *service) ListAll(ctx context.Context) ([]announcement.Response, error) {
	announcements, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return toResponses(announcements), nil
}

func toResponse(a announcement.Announcement) announcement.Response {
	return announcement.Response{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		Priority:      string(a.Priority),
		Active:        a.Active,
		CreatedByID:   a.CreatedByID,
		CreatedByName: a.CreatedByName,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

func toResponses(announcements []announcement.Announcement) []announcement.Response {
	responses := make([]announcement.Response, len(announcements))
	for i, a := range announcements {
		responses[i] = toResponse(a)
	}
	return responses
}
