package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/ratelimit"
)

const (
	DefaultOTPTTL         = 10 * time.Minute
	DefaultOTPMaxAttempts = 5
)

var errInvalidOTP = apierr.Validation("invalid_otp", "Invalid or expired OTP.")

type PasswordResetConfig struct {
	OTPTTL      time.Duration
	MaxAttempts int
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

type passwordResetService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	hasher   PasswordHasher
	mailer   Mailer
	attempts ratelimit.Counter
	cfg      PasswordResetConfig
	now      func() time.Time
	newOTP   func() (string, error)
}

func NewPasswordResetService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	hasher PasswordHasher,
	mailer Mailer,
	attempts ratelimit.Counter,
	cfg PasswordResetConfig,
) PasswordResetService {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = DefaultOTPTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultOTPMaxAttempts
	}
	return &passwordResetService{
		db:       db,
		log:      log.With("service", "PasswordResetService"),
		userRepo: userRepo,
		hasher:   hasher,
		mailer:   mailer,
		attempts: attempts,
		cfg:      cfg,
		now:      time.Now,
		newOTP:   generateOTP,
	}
}

// generateOTP returns a uniformly random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func attemptsKey(userID uuid.UUID) string {
	return "otp_attempts:" + userID.String()
}

func (s *passwordResetService) findUser(ctx context.Context, email string) (*types.User, error) {
	users, err := s.userRepo.GetByEmails(ctx, nil, []string{normalizeEmail(email)})
	if err != nil {
		return nil, repoError("db_error", "Database error.", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", "User not found.")
	}
	return users[0], nil
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	if normalizeEmail(email) == "" {
		return apierr.Validation("missing_fields", "Email is required.")
	}
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}

	otp, err := s.newOTP()
	if err != nil {
		return apierr.Dependency("otp_error", "Error saving OTP.", err)
	}
	if err := s.userRepo.SetOTP(ctx, nil, user.ID, otp, s.now().Add(s.cfg.OTPTTL)); err != nil {
		return repoError("db_error", "Error saving OTP.", err)
	}
	if err := s.attempts.Reset(ctx, attemptsKey(user.ID)); err != nil {
		s.log.Warn("Failed to reset OTP attempt counter", "user_id", user.ID, "error", err)
	}

	if err := s.mailer.SendOTP(ctx, user.Email, otp); err != nil {
		s.log.Error("Failed to send OTP email", "user_id", user.ID, "error", err)
		return apierr.Dependency("mail_error", "Error sending email.", err)
	}
	return nil
}

// check validates otp against the stored code and counts the attempt. Once the
// attempt budget is spent the stored code is cleared.
func (s *passwordResetService) check(ctx context.Context, tx *gorm.DB, user *types.User, otp string) error {
	n, err := s.attempts.Hit(ctx, attemptsKey(user.ID), s.cfg.OTPTTL)
	if err != nil {
		return apierr.Dependency("ratelimit_error", "Internal server error", err)
	}
	if n > int64(s.cfg.MaxAttempts) {
		if err := s.userRepo.ClearOTP(ctx, tx, user.ID); err != nil {
			s.log.Warn("Failed to clear OTP after too many attempts", "user_id", user.ID, "error", err)
		}
		return apierr.TooManyRequests("otp_attempts_exceeded", "Too many attempts. Request a new OTP.")
	}

	if user.OTP == "" || user.OTPExpiry == nil || s.now().After(*user.OTPExpiry) {
		return errInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(user.OTP), []byte(otp)) != 1 {
		return errInvalidOTP
	}
	return nil
}

func (s *passwordResetService) VerifyOTP(ctx context.Context, email, otp string) error {
	if normalizeEmail(email) == "" || otp == "" {
		return apierr.Validation("missing_fields", "Email and OTP are required.")
	}
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}
	return s.check(ctx, nil, user, otp)
}

func (s *passwordResetService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if normalizeEmail(email) == "" || otp == "" || newPassword == "" {
		return apierr.Validation("missing_fields", "Email, OTP and new password required.")
	}
	user, err := s.findUser(ctx, email)
	if err != nil {
		return err
	}
	if err := s.check(ctx, nil, user, otp); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apierr.Dependency("hash_error", "Error updating password.", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, nil, user.ID, hash); err != nil {
		return repoError("db_error", "Error updating password.", err)
	}
	if err := s.attempts.Reset(ctx, attemptsKey(user.ID)); err != nil {
		s.log.Warn("Failed to reset OTP attempt counter", "user_id", user.ID, "error", err)
	}
	s.log.Info("Password reset", "user_id", user.ID)
	return nil
}
