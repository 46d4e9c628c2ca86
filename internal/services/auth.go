package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour

	resendWindow      = 5 * time.Minute
	maxResendAttempts = 3
)

// Mailer sends the transactional mail auth flows depend on.
type Mailer interface {
	SendVerification(email, firstName, token string) error
	SendPasswordReset(email, firstName, token string) error
}

// AuthService implements registration, email verification, login and the
// password reset flow.
type AuthService struct {
	users   repositories.UserRepository
	tokens  repositories.TokenRepository
	resends repositories.ResendAttemptRepository
	mailer  Mailer

	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(
	users repositories.UserRepository,
	tokens repositories.TokenRepository,
	resends repositories.ResendAttemptRepository,
	mailer Mailer,
	jwtSecret string,
	jwtTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		resends:   resends,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// Register creates an account and sends the verification email. The new
// account is unverified until the emailed token is redeemed.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Duplicate("email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  string(hash),
		Role:      models.RoleUser,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueAndSend(ctx, user, models.TokenEmailVerification); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyEmail redeems a verification token and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	record, err := s.tokens.FindByToken(ctx, token, models.TokenEmailVerification)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(timeNow()) {
		return apperrors.InvalidToken("invalid or expired verification token")
	}

	if err := s.tokens.MarkUsed(ctx, record.ID); err != nil {
		return err
	}
	return s.users.SetEmailVerified(ctx, record.UserID)
}

// ResendVerification re-sends the verification email, throttled per
// address.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("account")
	}
	if user.IsEmailVerified {
		return apperrors.InvalidInput("email is already verified")
	}

	if err := s.throttle(ctx, email, models.TokenEmailVerification); err != nil {
		return err
	}
	return s.issueAndSend(ctx, user, models.TokenEmailVerification)
}

// Login checks credentials and returns the account with a signed JWT.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword issues a reset token and mails the reset link, throttled
// per address.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("account")
	}

	if err := s.throttle(ctx, email, models.TokenPasswordReset); err != nil {
		return err
	}
	return s.issueAndSend(ctx, user, models.TokenPasswordReset)
}

// ResetPassword redeems a reset token and replaces the account password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	record, err := s.tokens.FindByToken(ctx, token, models.TokenPasswordReset)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(timeNow()) {
		return apperrors.InvalidToken("invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.tokens.MarkUsed(ctx, record.ID); err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, record.UserID, string(hash))
}

// ChangePassword replaces the password of a logged-in account after
// checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// GenerateToken signs the session JWT for a user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(timeNow().Add(s.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(timeNow()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// issueAndSend burns outstanding tokens of the purpose, issues a fresh one
// and mails it.
func (s *AuthService) issueAndSend(ctx context.Context, user *models.User, purpose models.TokenPurpose) error {
	if err := s.tokens.InvalidateForUser(ctx, user.ID, purpose); err != nil {
		return err
	}

	ttl := verificationTokenTTL
	if purpose == models.TokenPasswordReset {
		ttl = resetTokenTTL
	}
	record := &models.AuthToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Purpose:   purpose,
		ExpiresAt: timeNow().Add(ttl),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return err
	}

	if purpose == models.TokenPasswordReset {
		return s.mailer.SendPasswordReset(user.Email, user.FirstName, record.Token)
	}
	return s.mailer.SendVerification(user.Email, user.FirstName, record.Token)
}

// throttle enforces the resend limit per address and purpose: at most
// maxResendAttempts sends per resendWindow.
func (s *AuthService) throttle(ctx context.Context, email string, purpose models.TokenPurpose) error {
	now := timeNow()

	attempt, err := s.resends.Find(ctx, email, purpose)
	if err != nil {
		return err
	}
	if attempt == nil {
		attempt = &models.ResendAttempt{Email: email, Purpose: purpose, WindowStart: now}
	}

	if now.Sub(attempt.WindowStart) >= resendWindow {
		attempt.WindowStart = now
		attempt.Count = 0
	}
	if attempt.Count >= maxResendAttempts {
		return apperrors.TooManyRequests("too many requests, please try again later")
	}

	attempt.Count++
	return s.resends.Save(ctx, attempt)
}
