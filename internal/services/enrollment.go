package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

const (
	MsgAlreadyEnrolled  = "User already enrolled"
	MsgEnrolledNoLesson = "Enrolled, but no lessons to track."
	MsgEnrolledSeeded   = "Enrollment and lesson progress created"
)

type EnrollResult struct {
	Message       string    `json:"message"`
	EnrollmentID  uuid.UUID `json:"enrollmentId"`
	Created       bool      `json:"created"`
	SeededLessons int64     `json:"seededLessons"`
}

type EnrollmentService interface {
	// Enroll is idempotent. With a nil tx it runs in its own transaction;
	// otherwise it joins the caller's.
	Enroll(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*EnrollResult, error)
	Unenroll(ctx context.Context, userID, courseID uuid.UUID) error
	List(ctx context.Context) ([]*types.Enrollment, error)
	EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	courseRepo     repos.CourseRepo
	lessonRepo     repos.LessonRepo
	enrollmentRepo repos.EnrollmentRepo
	progressRepo   repos.LessonProgressRepo
}

func NewEnrollmentService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	lessonRepo repos.LessonRepo,
	enrollmentRepo repos.EnrollmentRepo,
	progressRepo repos.LessonProgressRepo,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		log:            log.With("service", "EnrollmentService"),
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*EnrollResult, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return nil, apierr.Validation("missing_fields", "Missing user_id or course_id")
	}
	if tx != nil {
		return s.enroll(ctx, tx, userID, courseID)
	}

	var out *EnrollResult
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.enroll(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		out = res
		return nil
	}); err != nil {
		return nil, repoError("enroll_error", "Enrollment failed", err)
	}
	return out, nil
}

func (s *enrollmentService) enroll(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*EnrollResult, error) {
	users, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", "User not found")
	}
	courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("course_not_found", "Course not found")
	}

	enrollment, created, err := s.enrollmentRepo.Enroll(ctx, tx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !created {
		return &EnrollResult{Message: MsgAlreadyEnrolled, EnrollmentID: enrollment.ID}, nil
	}

	lessons, err := s.lessonRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return &EnrollResult{Message: MsgEnrolledNoLesson, EnrollmentID: enrollment.ID, Created: true}, nil
	}
	lessonIDs := make([]uuid.UUID, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.ID)
	}
	seeded, err := s.progressRepo.Seed(ctx, tx, enrollment.ID, lessonIDs)
	if err != nil {
		return nil, err
	}
	s.log.Info("User enrolled", "user_id", userID, "course_id", courseID, "lessons", seeded)
	return &EnrollResult{
		Message:       MsgEnrolledSeeded,
		EnrollmentID:  enrollment.ID,
		Created:       true,
		SeededLessons: seeded,
	}, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, userID, courseID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.enrollmentRepo.Get(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		if enrollment == nil {
			return apierr.NotFound("enrollment_not_found", "Enrollment not found")
		}
		ids := []uuid.UUID{enrollment.ID}
		if err := s.progressRepo.DeleteByEnrollmentIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.enrollmentRepo.DeleteByIDs(ctx, tx, ids)
	})
	return repoError("unenroll_error", "Unenrollment failed", err)
}

func (s *enrollmentService) List(ctx context.Context) ([]*types.Enrollment, error) {
	rows, err := s.enrollmentRepo.List(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch enrollments", err)
	}
	return rows, nil
}

func (s *enrollmentService) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error) {
	courses, err := s.courseRepo.ListEnrolledByUser(ctx, nil, userID)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch enrollments", err)
	}
	return courses, nil
}
