package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// AnnouncementService publishes platform announcements and fans them out
// as notifications to verified users.
type AnnouncementService struct {
	announcements repositories.AnnouncementRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewAnnouncementService(
	announcements repositories.AnnouncementRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		users:         users,
		notifications: notifications,
	}
}

// Publish creates the announcement and inserts one notification per
// verified user, skipping the author.
func (s *AnnouncementService) Publish(ctx context.Context, authorID primitive.ObjectID, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	ann := &models.Announcement{
		ByUser:  authorID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.announcements.Create(ctx, ann); err != nil {
		return nil, err
	}

	recipients, err := s.users.ListVerifiedIDs(ctx)
	if err != nil {
		return nil, err
	}

	content := AnnouncementContent(ann.Title)
	batch := make([]models.Notification, 0, len(recipients))
	for _, id := range recipients {
		if id == authorID {
			continue
		}
		batch = append(batch, models.Notification{
			ForUser: id,
			ByUser:  authorID,
			Type:    models.NotificationAnnouncement,
			Content: content,
		})
	}
	if len(batch) > 0 {
		if err := s.notifications.CreateMany(ctx, batch); err != nil {
			return nil, err
		}
	}
	return ann, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	ann, err := s.announcements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ann == nil {
		return nil, apperrors.NotFound("announcement")
	}
	return ann, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateAnnouncementRequest) (*models.Announcement, error) {
	ann, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		ann.Title = req.Title
	}
	if req.Content != "" {
		ann.Content = req.Content
	}
	if err := s.announcements.Update(ctx, ann); err != nil {
		return nil, err
	}
	return ann, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.announcements.SoftDelete(ctx, id)
}

func (s *AnnouncementService) List(ctx context.Context, page models.PageQuery) ([]models.Announcement, error) {
	return s.announcements.List(ctx, page)
}
