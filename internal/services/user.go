package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
)

var (
	errUserNotFound = apierr.NotFound("user_not_found", "User not found.")
	errNotSelf      = apierr.Forbidden("forbidden", "Access denied.")
)

type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	List(ctx context.Context) ([]*types.User, error)
	Get(ctx context.Context, actor *ctxutil.Session, userID uuid.UUID) (*types.User, error)
	Update(ctx context.Context, actor *ctxutil.Session, userID uuid.UUID, in UpdateUserInput, avatar *Upload) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	Enrollments(ctx context.Context, actor *ctxutil.Session, userID uuid.UUID) ([]*types.Course, error)
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
	progressRepo   repos.LessonProgressRepo
	certRepo       repos.CertificateRepo
	orderRepo      repos.OrderRepo
	hasher         PasswordHasher
	files          storage.FileStore
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	enrollmentRepo repos.EnrollmentRepo,
	progressRepo repos.LessonProgressRepo,
	certRepo repos.CertificateRepo,
	orderRepo repos.OrderRepo,
	hasher PasswordHasher,
	files storage.FileStore,
) UserService {
	return &userService{
		db:             db,
		log:            log.With("service", "UserService"),
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		certRepo:       certRepo,
		orderRepo:      orderRepo,
		hasher:         hasher,
		files:          files,
	}
}

// selfOrAdmin rejects callers acting on another user's record.
func selfOrAdmin(actor *ctxutil.Session, userID uuid.UUID) error {
	if actor == nil {
		return apierr.Unauthorized("unauthorized", "Unauthorized. Please log in.")
	}
	if actor.UserID != userID && !actor.IsAdmin() {
		return errNotSelf
	}
	return nil
}

func (s *userService) load(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	rows, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch user", err)
	}
	if len(rows) == 0 {
		return nil, errUserNotFound
	}
	return rows[0], nil
}

func (s *userService) List(ctx context.Context) ([]*types.User, error) {
	rows, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch users", err)
	}
	return rows, nil
}

func (s *userService) Get(ctx context.Context, actor *ctxutil.Session, userID uuid.UUID) (*types.User, error) {
	if err := selfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	return s.load(ctx, nil, userID)
}

func (s *userService) Update(ctx context.Context, actor *ctxutil.Session, userID uuid.UUID, in UpdateUserInput, avatar *Upload) (*types.User, error) {
	if err := selfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return nil, apierr.Validation("missing_fields", "Name and email are required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apierr.Validation("invalid_email", "Invalid email address.")
	}
	role := strings.TrimSpace(in.Role)
	if role != "" {
		if !types.ValidRole(role) {
			return nil, apierr.Validation("invalid_role", "Invalid role.")
		}
		if !actor.IsAdmin() {
			role = ""
		}
	}

	old, err := s.load(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"name": name, "email": email}
	if role != "" {
		updates["role"] = role
	}
	if pw := in.Password; strings.TrimSpace(pw) != "" {
		hash, err := s.hasher.Hash(pw)
		if err != nil {
			return nil, apierr.Dependency("hash_error", "Failed to update user", err)
		}
		updates["password"] = hash
	}

	newAvatar, err := saveUpload(ctx, s.files, storage.DirAvatar, avatar)
	if err != nil {
		return nil, err
	}
	if newAvatar != "" {
		updates["avatar_url"] = newAvatar
	}

	if err := s.userRepo.UpdateFields(ctx, nil, userID, updates); err != nil {
		removeFiles(ctx, s.log, s.files, newAvatar)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("email_taken", "Email already in use.")
		}
		return nil, repoError("db_error", "Failed to update user", err)
	}
	if newAvatar != "" && old.AvatarURL != newAvatar {
		removeFiles(ctx, s.log, s.files, old.AvatarURL)
	}
	return s.load(ctx, nil, userID)
}

// Delete removes the user with everything they own. Files are removed once
// the transaction has committed.
func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	var files []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.load(ctx, tx, userID)
		if err != nil {
			return err
		}
		files = append(files, u.AvatarURL)
		ids := []uuid.UUID{userID}

		enrollments, err := s.enrollmentRepo.GetByUserIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		enrollmentIDs := make([]uuid.UUID, 0, len(enrollments))
		for _, e := range enrollments {
			enrollmentIDs = append(enrollmentIDs, e.ID)
		}
		if err := s.progressRepo.DeleteByEnrollmentIDs(ctx, tx, enrollmentIDs); err != nil {
			return err
		}
		if err := s.enrollmentRepo.DeleteByIDs(ctx, tx, enrollmentIDs); err != nil {
			return err
		}

		certs, err := s.certRepo.GetByStudentIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		certIDs := make([]uuid.UUID, 0, len(certs))
		for _, c := range certs {
			certIDs = append(certIDs, c.ID)
			files = append(files, c.CourseCertificate)
		}
		if err := s.certRepo.DeleteByIDs(ctx, tx, certIDs); err != nil {
			return err
		}
		if err := s.orderRepo.DeleteByUserIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.userRepo.DeleteByIDs(ctx, tx, ids)
	})
	if err != nil {
		return repoError("db_error", "Failed to delete user", err)
	}
	removeFiles(ctx, s.log, s.files, files...)
	s.log.Info("User deleted", "user_id", userID, "files", len(files))
	return nil
}

func (s *userService) Enrollments(ctx context.Context, actor *ctxutil.Session, userID uuid.UUID) ([]*types.Course, error) {
	if err := selfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListEnrolledByUser(ctx, nil, userID)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch enrollments", err)
	}
	return courses, nil
}
