package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kulinarya/backend/internal/models"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	r.users[id].Password = passwordHash
	return nil
}

func (r *fakeUserRepo) SetEmailVerified(_ context.Context, id primitive.ObjectID) error {
	r.users[id].IsEmailVerified = true
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) error {
	r.users[id].Role = role
	return nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	now := time.Now()
	r.users[id].DeletedAt = &now
	return nil
}

func (r *fakeUserRepo) ListVerifiedIDs(_ context.Context) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, u := range r.users {
		if u.IsEmailVerified && u.DeletedAt == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeRecipeRepo struct {
	recipes map[primitive.ObjectID]*models.Recipe
}

func newFakeRecipeRepo(recipes ...*models.Recipe) *fakeRecipeRepo {
	r := &fakeRecipeRepo{recipes: map[primitive.ObjectID]*models.Recipe{}}
	for _, rec := range recipes {
		if rec.ID.IsZero() {
			rec.ID = primitive.NewObjectID()
		}
		r.recipes[rec.ID] = rec
	}
	return r
}

func (r *fakeRecipeRepo) Create(_ context.Context, recipe *models.Recipe) error {
	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	recipe.CreatedAt = time.Now()
	recipe.Status = models.StatusPending
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok || rec.DeletedAt != nil {
		return nil, nil
	}
	return rec, nil
}

func (r *fakeRecipeRepo) DetailByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeWithEngagement, error) {
	rec, err := r.FindByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return &models.RecipeWithEngagement{Recipe: *rec}, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, recipe *models.Recipe) error {
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) SetModeration(_ context.Context, recipeID, moderationID primitive.ObjectID) error {
	r.recipes[recipeID].ModerationID = &moderationID
	return nil
}

func (r *fakeRecipeRepo) UpdateStatus(_ context.Context, recipeID primitive.ObjectID, status models.ModerationStatus) error {
	r.recipes[recipeID].Status = status
	return nil
}

func (r *fakeRecipeRepo) SetFeatured(_ context.Context, recipeID primitive.ObjectID, featured bool) error {
	r.recipes[recipeID].IsFeatured = featured
	return nil
}

func (r *fakeRecipeRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	now := time.Now()
	r.recipes[id].DeletedAt = &now
	return nil
}

func (r *fakeRecipeRepo) ListApproved(context.Context, models.RecipeListQuery) ([]models.RecipeWithEngagement, error) {
	return nil, nil
}

func (r *fakeRecipeRepo) ListByStatus(context.Context, models.ModerationStatus, models.PageQuery) ([]models.RecipeWithEngagement, error) {
	return nil, nil
}

func (r *fakeRecipeRepo) ListFeatured(context.Context, models.PageQuery) ([]models.RecipeWithEngagement, error) {
	return nil, nil
}

func (r *fakeRecipeRepo) TopEngaged(context.Context, time.Time, int64) ([]models.RecipeWithEngagement, error) {
	return nil, nil
}

func (r *fakeRecipeRepo) TopReacted(context.Context, time.Time, int64) ([]models.RecipeWithEngagement, error) {
	return nil, nil
}

func (r *fakeRecipeRepo) TopViewed(context.Context, time.Time, int64) ([]models.RecipeWithEngagement, error) {
	return nil, nil
}

type fakeModerationRepo struct {
	records map[primitive.ObjectID]*models.Moderation
}

func newFakeModerationRepo(records ...*models.Moderation) *fakeModerationRepo {
	r := &fakeModerationRepo{records: map[primitive.ObjectID]*models.Moderation{}}
	for _, m := range records {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.records[m.ID] = m
	}
	return r
}

func (r *fakeModerationRepo) Create(_ context.Context, moderation *models.Moderation) error {
	if moderation.ID.IsZero() {
		moderation.ID = primitive.NewObjectID()
	}
	r.records[moderation.ID] = moderation
	return nil
}

func (r *fakeModerationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Moderation, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (r *fakeModerationRepo) FindByPost(_ context.Context, postID primitive.ObjectID) (*models.Moderation, error) {
	for _, m := range r.records {
		if m.ForPost == postID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeModerationRepo) Update(_ context.Context, moderation *models.Moderation) error {
	moderation.UpdatedAt = time.Now()
	r.records[moderation.ID] = moderation
	return nil
}

func (r *fakeModerationRepo) ListByStatus(context.Context, models.ModerationStatus, models.PageQuery) ([]models.Moderation, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func (r *fakeNotificationRepo) FindByKey(_ context.Context, forUser, fromPost primitive.ObjectID, typ models.NotificationType) (*models.Notification, error) {
	for _, n := range r.notifications {
		if n.ForUser == forUser && n.FromPost != nil && *n.FromPost == fromPost && n.Type == typ {
			return n, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = notification.CreatedAt
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) CreateMany(ctx context.Context, notifications []models.Notification) error {
	for i := range notifications {
		n := notifications[i]
		if err := r.Create(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, notification *models.Notification) error {
	notification.UpdatedAt = time.Now()
	for i, n := range r.notifications {
		if n.ID == notification.ID {
			r.notifications[i] = notification
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID primitive.ObjectID, _ models.PageQuery) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.ForUser == recipientID && n.DeletedAt == nil {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.ForUser == recipientID && !n.IsRead && n.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID primitive.ObjectID) (bool, error) {
	for _, n := range r.notifications {
		if n.ID == id && n.ForUser == recipientID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID primitive.ObjectID) error {
	for _, n := range r.notifications {
		if n.ForUser == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) SoftDelete(_ context.Context, id, recipientID primitive.ObjectID) (bool, error) {
	for _, n := range r.notifications {
		if n.ID == id && n.ForUser == recipientID {
			now := time.Now()
			n.DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

// live returns the non-deleted notifications.
func (r *fakeNotificationRepo) live() []*models.Notification {
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.DeletedAt == nil {
			out = append(out, n)
		}
	}
	return out
}

type fakeReactionRepo struct {
	reactions []*models.Reaction
}

func (r *fakeReactionRepo) FindByPostAndUser(_ context.Context, postID, userID primitive.ObjectID) (*models.Reaction, error) {
	for _, rc := range r.reactions {
		if rc.FromPost == postID && rc.ByUser == userID {
			return rc, nil
		}
	}
	return nil, nil
}

func (r *fakeReactionRepo) Create(_ context.Context, reaction *models.Reaction) error {
	if reaction.ID.IsZero() {
		reaction.ID = primitive.NewObjectID()
	}
	reaction.CreatedAt = time.Now()
	r.reactions = append(r.reactions, reaction)
	return nil
}

func (r *fakeReactionRepo) Update(_ context.Context, reaction *models.Reaction) error {
	reaction.UpdatedAt = time.Now()
	for i, rc := range r.reactions {
		if rc.ID == reaction.ID {
			r.reactions[i] = reaction
			return nil
		}
	}
	return nil
}

func (r *fakeReactionRepo) ListActiveByPost(context.Context, primitive.ObjectID, models.PageQuery) ([]models.ReactionWithUser, error) {
	return nil, nil
}

type fakeVisitRepo struct {
	visits []*models.PlatformVisit
}

func sameViewer(userID *primitive.ObjectID, guestKey string, viewer models.Viewer) bool {
	if viewer.UserID != nil {
		return userID != nil && *userID == *viewer.UserID
	}
	return userID == nil && guestKey == viewer.GuestKey
}

func (r *fakeVisitRepo) FindSince(_ context.Context, viewer models.Viewer, since time.Time) (*models.PlatformVisit, error) {
	for _, v := range r.visits {
		if sameViewer(v.ByUser, v.ByGuest, viewer) && !v.CreatedAt.Before(since) {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVisitRepo) Create(_ context.Context, visit *models.PlatformVisit) error {
	if visit.ID.IsZero() {
		visit.ID = primitive.NewObjectID()
	}
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = timeNow()
	}
	r.visits = append(r.visits, visit)
	return nil
}

func (r *fakeVisitRepo) Summary(_ context.Context, from, to time.Time) (models.VisitSummary, error) {
	var summary models.VisitSummary
	for _, v := range r.visits {
		if v.CreatedAt.Before(from) || !v.CreatedAt.Before(to) {
			continue
		}
		summary.TotalVisits++
		if v.VisitType == models.VisitUser {
			summary.UserVisits++
		} else {
			summary.GuestVisits++
		}
	}
	return summary, nil
}

type fakeViewRepo struct {
	views []*models.PostView
}

func (r *fakeViewRepo) FindSince(_ context.Context, postID primitive.ObjectID, viewer models.Viewer, since time.Time) (*models.PostView, error) {
	for _, v := range r.views {
		if v.FromPost == postID && sameViewer(v.ByUser, v.ByGuest, viewer) && !v.CreatedAt.Before(since) {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeViewRepo) Create(_ context.Context, view *models.PostView) error {
	if view.ID.IsZero() {
		view.ID = primitive.NewObjectID()
	}
	if view.CreatedAt.IsZero() {
		view.CreatedAt = timeNow()
	}
	r.views = append(r.views, view)
	return nil
}

func (r *fakeViewRepo) CountByPost(_ context.Context, postID primitive.ObjectID) (int64, error) {
	var count int64
	for _, v := range r.views {
		if v.FromPost == postID {
			count++
		}
	}
	return count, nil
}

type fakeTokenRepo struct {
	tokens []*models.AuthToken
}

func (r *fakeTokenRepo) Create(_ context.Context, token *models.AuthToken) error {
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	r.tokens = append(r.tokens, token)
	return nil
}

func (r *fakeTokenRepo) FindByToken(_ context.Context, token string, purpose models.TokenPurpose) (*models.AuthToken, error) {
	for _, t := range r.tokens {
		if t.Token == token && t.Purpose == purpose {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) MarkUsed(_ context.Context, id primitive.ObjectID) error {
	for _, t := range r.tokens {
		if t.ID == id {
			now := timeNow()
			t.UsedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) InvalidateForUser(_ context.Context, userID primitive.ObjectID, purpose models.TokenPurpose) error {
	for _, t := range r.tokens {
		if t.UserID == userID && t.Purpose == purpose && t.UsedAt == nil {
			now := timeNow()
			t.UsedAt = &now
		}
	}
	return nil
}

type fakeResendRepo struct {
	attempts []*models.ResendAttempt
}

func (r *fakeResendRepo) Find(_ context.Context, email string, purpose models.TokenPurpose) (*models.ResendAttempt, error) {
	for _, a := range r.attempts {
		if a.Email == email && a.Purpose == purpose {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeResendRepo) Save(_ context.Context, attempt *models.ResendAttempt) error {
	if attempt.ID.IsZero() {
		attempt.ID = primitive.NewObjectID()
		r.attempts = append(r.attempts, attempt)
		return nil
	}
	for i, a := range r.attempts {
		if a.ID == attempt.ID {
			r.attempts[i] = attempt
			return nil
		}
	}
	r.attempts = append(r.attempts, attempt)
	return nil
}

type fakeAnnouncementRepo struct {
	announcements map[primitive.ObjectID]*models.Announcement
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, announcement *models.Announcement) error {
	if r.announcements == nil {
		r.announcements = map[primitive.ObjectID]*models.Announcement{}
	}
	if announcement.ID.IsZero() {
		announcement.ID = primitive.NewObjectID()
	}
	announcement.CreatedAt = time.Now()
	r.announcements[announcement.ID] = announcement
	return nil
}

func (r *fakeAnnouncementRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	a, ok := r.announcements[id]
	if !ok || a.DeletedAt != nil {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAnnouncementRepo) Update(_ context.Context, announcement *models.Announcement) error {
	r.announcements[announcement.ID] = announcement
	return nil
}

func (r *fakeAnnouncementRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	now := time.Now()
	r.announcements[id].DeletedAt = &now
	return nil
}

func (r *fakeAnnouncementRepo) List(context.Context, models.PageQuery) ([]models.Announcement, error) {
	return nil, nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*models.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	if r.comments == nil {
		r.comments = map[primitive.ObjectID]*models.Comment{}
	}
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	now := time.Now()
	r.comments[id].DeletedAt = &now
	return nil
}

func (r *fakeCommentRepo) ListByPost(context.Context, primitive.ObjectID, models.PageQuery) ([]models.CommentWithUser, error) {
	return nil, nil
}

type fakeMailer struct {
	verifications []string
	resets        []string
}

func (m *fakeMailer) SendVerification(email, _, _ string) error {
	m.verifications = append(m.verifications, email)
	return nil
}

func (m *fakeMailer) SendPasswordReset(email, _, _ string) error {
	m.resets = append(m.resets, email)
	return nil
}
