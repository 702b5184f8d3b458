package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type CourseProgress struct {
	EnrollmentID       *uuid.UUID `json:"enrollmentId"`
	CompletedLessonIDs []string   `json:"completedLessonIds"`
}

type ProgressService interface {
	CompleteLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) error
	CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgress, error)
}

type progressService struct {
	db             *gorm.DB
	log            *logger.Logger
	lessonRepo     repos.LessonRepo
	enrollmentRepo repos.EnrollmentRepo
	progressRepo   repos.LessonProgressRepo
	now            func() time.Time
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	enrollmentRepo repos.EnrollmentRepo,
	progressRepo repos.LessonProgressRepo,
) ProgressService {
	return &progressService{
		db:             db,
		log:            log.With("service", "ProgressService"),
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		now:            time.Now,
	}
}

func (s *progressService) CompleteLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) error {
	if userID == uuid.Nil || courseID == uuid.Nil || lessonID == uuid.Nil {
		return apierr.Validation("missing_fields", "Missing userId, courseId, or lessonId")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.enrollmentRepo.Get(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		if enrollment == nil {
			return apierr.Validation("not_enrolled", "User is not enrolled in this course")
		}
		lessons, err := s.lessonRepo.GetByIDs(ctx, tx, []uuid.UUID{lessonID})
		if err != nil {
			return err
		}
		if len(lessons) == 0 || lessons[0].CourseID != courseID {
			return apierr.NotFound("lesson_not_found", "Lesson not found in this course")
		}
		return s.progressRepo.MarkCompleted(ctx, tx, enrollment.ID, lessonID, s.now())
	})
	return repoError("progress_error", "Could not mark lesson as completed", err)
}

func (s *progressService) CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgress, error) {
	out := &CourseProgress{CompletedLessonIDs: []string{}}
	enrollment, err := s.enrollmentRepo.Get(ctx, nil, userID, courseID)
	if err != nil {
		return nil, repoError("db_error", "Internal server error", err)
	}
	if enrollment == nil {
		return out, nil
	}
	ids, err := s.progressRepo.CompletedLessonIDs(ctx, nil, enrollment.ID)
	if err != nil {
		return nil, repoError("db_error", "Could not fetch progress data", err)
	}
	out.EnrollmentID = &enrollment.ID
	for _, id := range ids {
		out.CompletedLessonIDs = append(out.CompletedLessonIDs, id.String())
	}
	return out, nil
}
