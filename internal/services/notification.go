package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

// NotificationService owns the idempotent notification upsert. Every event
// that produces a notification (moderation decision, reaction toggle,
// comment creation) funnels through Upsert so the duplicate-suppression
// rule lives in exactly one place.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// NotifyParams carries everything Upsert needs to suppress, collapse or
// render a notification.
type NotifyParams struct {
	ActorID     primitive.ObjectID
	RecipientID primitive.ObjectID
	PostID      primitive.ObjectID
	Type        models.NotificationType

	// content inputs
	ActorName   string
	RecipeTitle string
	OldReaction *models.ReactionKind
	NewReaction models.ReactionKind
	Decision    models.ModerationStatus
	Notes       string

	// IsRemoval soft-deletes the existing notification instead of
	// rewriting it (reaction toggle-off).
	IsRemoval bool
}

// Upsert creates, updates or soft-deletes the notification for the given
// event. For collapsible types (moderation, reaction) the lookup key is
// (recipient, post, type): repeated events update the one existing record,
// resetting its read flag and clearing its deletion mark. Comment
// notifications are append-only. Self-notifications are suppressed for all
// types. Returns nil without error when nothing was written.
func (s *NotificationService) Upsert(ctx context.Context, p NotifyParams) (*models.Notification, error) {
	if p.ActorID == p.RecipientID {
		return nil, nil
	}

	content, err := renderContent(p)
	if err != nil {
		return nil, err
	}

	if p.Type.Collapsible() {
		existing, err := s.notifications.FindByKey(ctx, p.RecipientID, p.PostID, p.Type)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if p.IsRemoval {
				now := timeNow()
				existing.DeletedAt = &now
				if err := s.notifications.Update(ctx, existing); err != nil {
					return nil, err
				}
				return existing, nil
			}
			existing.Content = content
			existing.ByUser = p.ActorID
			existing.IsRead = false
			existing.DeletedAt = nil
			if err := s.notifications.Update(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	if p.IsRemoval {
		return nil, nil
	}

	postID := p.PostID
	notification := &models.Notification{
		ForUser:  p.RecipientID,
		ByUser:   p.ActorID,
		FromPost: &postID,
		Type:     p.Type,
		Content:  content,
	}
	if postID.IsZero() {
		notification.FromPost = nil
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// renderContent produces the user-facing notification text for each event
// type.
func renderContent(p NotifyParams) (string, error) {
	switch p.Type {
	case models.NotificationModeration:
		content := fmt.Sprintf("%s %s your recipe: %s.", p.ActorName, p.Decision, p.RecipeTitle)
		if p.Notes != "" {
			content += " Notes: " + p.Notes
		}
		return content, nil

	case models.NotificationReaction:
		if p.OldReaction != nil {
			return fmt.Sprintf("%s changed their reaction from (%s) to (%s) on your recipe: %s.",
				p.ActorName, *p.OldReaction, p.NewReaction, p.RecipeTitle), nil
		}
		return fmt.Sprintf("%s reacted (%s) on your recipe: %s.", p.ActorName, p.NewReaction, p.RecipeTitle), nil

	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your recipe: %s.", p.ActorName, p.RecipeTitle), nil

	case models.NotificationAnnouncement:
		return "New announcement: " + p.RecipeTitle + ".", nil

	default:
		return "", fmt.Errorf("unknown notification type %q", p.Type)
	}
}

// AnnouncementContent renders the fan-out text for an announcement title.
func AnnouncementContent(title string) string {
	return "New announcement: " + title + "."
}
