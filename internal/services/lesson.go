package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
)

type LessonInput struct {
	Title    string
	Duration string
	Content  string
	CourseID string
}

type LessonService interface {
	List(ctx context.Context) ([]*types.Lesson, error)
	Get(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error)
	Create(ctx context.Context, in LessonInput, video *Upload) (*types.Lesson, error)
	Update(ctx context.Context, lessonID uuid.UUID, in LessonInput, video *Upload) error
	Delete(ctx context.Context, lessonID uuid.UUID) error
}

type lessonService struct {
	db           *gorm.DB
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	courseRepo   repos.CourseRepo
	progressRepo repos.LessonProgressRepo
	files        storage.FileStore
}

func NewLessonService(
	db *gorm.DB,
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	courseRepo repos.CourseRepo,
	progressRepo repos.LessonProgressRepo,
	files storage.FileStore,
) LessonService {
	return &lessonService{
		db:           db,
		log:          log.With("service", "LessonService"),
		lessonRepo:   lessonRepo,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		files:        files,
	}
}

func (in LessonInput) complete() bool {
	return strings.TrimSpace(in.Title) != "" &&
		strings.TrimSpace(in.Duration) != "" &&
		strings.TrimSpace(in.Content) != "" &&
		strings.TrimSpace(in.CourseID) != ""
}

func (s *lessonService) courseID(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apierr.Validation("invalid_course", "Invalid course_id")
	}
	courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return uuid.Nil, repoError("db_error", "Failed to load course", err)
	}
	if len(courses) == 0 {
		return uuid.Nil, apierr.NotFound("course_not_found", "Course not found")
	}
	return id, nil
}

func (s *lessonService) List(ctx context.Context) ([]*types.Lesson, error) {
	rows, err := s.lessonRepo.ListWithCourseTitle(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch lessons", err)
	}
	return rows, nil
}

func (s *lessonService) Get(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
	l, err := s.lessonRepo.GetWithCourseTitle(ctx, nil, lessonID)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch lesson", err)
	}
	if l == nil {
		return nil, apierr.NotFound("lesson_not_found", "Lesson not found")
	}
	return l, nil
}

func (s *lessonService) Create(ctx context.Context, in LessonInput, video *Upload) (*types.Lesson, error) {
	if !in.complete() || video == nil {
		return nil, apierr.Validation("missing_fields", "All fields including video and course are required")
	}
	courseID, err := s.courseID(ctx, in.CourseID)
	if err != nil {
		return nil, err
	}
	videoURL, err := saveUpload(ctx, s.files, storage.DirVideos, video)
	if err != nil {
		return nil, err
	}
	l := &types.Lesson{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(in.Title),
		Duration: strings.TrimSpace(in.Duration),
		Content:  in.Content,
		VideoURL: videoURL,
		CourseID: courseID,
	}
	if _, err := s.lessonRepo.Create(ctx, nil, []*types.Lesson{l}); err != nil {
		removeFiles(ctx, s.log, s.files, videoURL)
		return nil, repoError("db_error", "Failed to create lesson", err)
	}
	return l, nil
}

func (s *lessonService) Update(ctx context.Context, lessonID uuid.UUID, in LessonInput, video *Upload) error {
	if !in.complete() {
		return apierr.Validation("missing_fields", "All fields except video are required")
	}
	existing, err := s.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
	if err != nil {
		return repoError("db_error", "Failed to update lesson", err)
	}
	if len(existing) == 0 {
		return apierr.NotFound("lesson_not_found", "Lesson not found")
	}
	old := existing[0]
	courseID, err := s.courseID(ctx, in.CourseID)
	if err != nil {
		return err
	}
	newVideo, err := saveUpload(ctx, s.files, storage.DirVideos, video)
	if err != nil {
		return err
	}
	videoURL := old.VideoURL
	if newVideo != "" {
		videoURL = newVideo
	}
	updates := map[string]any{
		"title":     strings.TrimSpace(in.Title),
		"duration":  strings.TrimSpace(in.Duration),
		"content":   in.Content,
		"video_url": videoURL,
		"course_id": courseID,
	}
	if _, err := s.lessonRepo.UpdateFields(ctx, nil, lessonID, updates); err != nil {
		removeFiles(ctx, s.log, s.files, newVideo)
		return repoError("db_error", "Failed to update lesson", err)
	}
	if newVideo != "" && old.VideoURL != newVideo {
		removeFiles(ctx, s.log, s.files, old.VideoURL)
	}
	return nil
}

func (s *lessonService) Delete(ctx context.Context, lessonID uuid.UUID) error {
	var videoURL string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.lessonRepo.GetByIDs(ctx, tx, []uuid.UUID{lessonID})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return apierr.NotFound("lesson_not_found", "Lesson not found")
		}
		videoURL = rows[0].VideoURL
		ids := []uuid.UUID{lessonID}
		if err := s.progressRepo.DeleteByLessonIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.lessonRepo.DeleteByIDs(ctx, tx, ids)
	})
	if err != nil {
		return repoError("db_error", "Failed to delete lesson", err)
	}
	removeFiles(ctx, s.log, s.files, videoURL)
	return nil
}
