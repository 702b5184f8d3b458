package services

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
)

// CourseInput carries the raw multipart form values.
type CourseInput struct {
	Title           string
	Description     string
	LongDescription string
	Instructor      string
	ImageHint       string
	CategoryID      string
	Tags            string
	Price           string
}

type CourseService interface {
	List(ctx context.Context) ([]*types.Course, error)
	Search(ctx context.Context, query string) ([]*types.Course, error)
	Get(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	Create(ctx context.Context, in CourseInput, image *Upload) (*types.Course, error)
	Update(ctx context.Context, courseID uuid.UUID, in CourseInput, image *Upload) (*types.Course, error)
	Delete(ctx context.Context, courseID uuid.UUID) error
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	categoryRepo   repos.CategoryRepo
	lessonRepo     repos.LessonRepo
	enrollmentRepo repos.EnrollmentRepo
	progressRepo   repos.LessonProgressRepo
	orderRepo      repos.OrderRepo
	files          storage.FileStore
}

func NewCourseService(
	db *gorm.DB,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	categoryRepo repos.CategoryRepo,
	lessonRepo repos.LessonRepo,
	enrollmentRepo repos.EnrollmentRepo,
	progressRepo repos.LessonProgressRepo,
	orderRepo repos.OrderRepo,
	files storage.FileStore,
) CourseService {
	return &courseService{
		db:             db,
		log:            log.With("service", "CourseService"),
		courseRepo:     courseRepo,
		categoryRepo:   categoryRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		orderRepo:      orderRepo,
		files:          files,
	}
}

// MaxPrice is the largest value the decimal(10,2) price column holds.
const MaxPrice = 99999999.99

// ParsePrice accepts a non-negative decimal string up to MaxPrice.
func ParsePrice(raw string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, apierr.Validation("invalid_price", "Invalid or missing price. Must be a non-negative number.")
	}
	p = math.Round(p*100) / 100
	if p > MaxPrice {
		return 0, apierr.Validation("invalid_price", "Price is too large.")
	}
	return p, nil
}

// ParseTags accepts a JSON array of strings; empty input is an empty list.
func ParseTags(raw string) (datatypes.JSON, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "[]"
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return nil, apierr.Validation("invalid_tags", "Invalid tags format. Must be a JSON array.")
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, apierr.Validation("invalid_tags", "Invalid tags format. Must be a JSON array.")
	}
	return datatypes.JSON(b), nil
}

type parsedCourse struct {
	price      float64
	tags       datatypes.JSON
	categoryID *uuid.UUID
}

func (s *courseService) parse(ctx context.Context, in CourseInput, creating bool) (*parsedCourse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apierr.Validation("missing_fields", "Title is required")
	}
	tags, err := ParseTags(in.Tags)
	if err != nil {
		return nil, err
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		if !creating {
			return nil, apierr.Validation("invalid_price", "Invalid price format")
		}
		return nil, err
	}
	out := &parsedCourse{price: price, tags: tags}

	if raw := strings.TrimSpace(in.CategoryID); raw != "" && raw != "null" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apierr.Validation("invalid_category", "Invalid category_id")
		}
		cats, err := s.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
		if err != nil {
			return nil, repoError("db_error", "Failed to load category", err)
		}
		if len(cats) == 0 {
			return nil, apierr.Validation("invalid_category", "Category not found")
		}
		out.categoryID = &id
	}
	return out, nil
}

func (s *courseService) List(ctx context.Context) ([]*types.Course, error) {
	rows, err := s.courseRepo.List(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch courses", err)
	}
	return rows, nil
}

func (s *courseService) Search(ctx context.Context, query string) ([]*types.Course, error) {
	rows, err := s.courseRepo.SearchByTitle(ctx, nil, query)
	if err != nil {
		return nil, repoError("db_error", "Database error", err)
	}
	return rows, nil
}

func (s *courseService) Get(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	c, err := s.courseRepo.GetWithLessons(ctx, nil, courseID)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch course", err)
	}
	if c == nil {
		return nil, apierr.NotFound("course_not_found", "Course not found")
	}
	return c, nil
}

func (s *courseService) Create(ctx context.Context, in CourseInput, image *Upload) (*types.Course, error) {
	p, err := s.parse(ctx, in, true)
	if err != nil {
		return nil, err
	}
	imageURL, err := saveUpload(ctx, s.files, storage.DirUploads, image)
	if err != nil {
		return nil, err
	}

	c := &types.Course{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Instructor:      in.Instructor,
		ImageURL:        imageURL,
		ImageHint:       in.ImageHint,
		CategoryID:      p.categoryID,
		Tags:            p.tags,
		Price:           p.price,
	}
	if _, err := s.courseRepo.Create(ctx, nil, []*types.Course{c}); err != nil {
		removeFiles(ctx, s.log, s.files, imageURL)
		return nil, repoError("db_error", "Failed to create course", err)
	}
	s.log.Info("Course created", "course_id", c.ID)
	return c, nil
}

func (s *courseService) Update(ctx context.Context, courseID uuid.UUID, in CourseInput, image *Upload) (*types.Course, error) {
	existing, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, repoError("db_error", "Failed to update course", err)
	}
	if len(existing) == 0 {
		return nil, apierr.NotFound("course_not_found", "Course not found")
	}
	old := existing[0]

	p, err := s.parse(ctx, in, false)
	if err != nil {
		return nil, err
	}
	newImage, err := saveUpload(ctx, s.files, storage.DirUploads, image)
	if err != nil {
		return nil, err
	}
	imageURL := old.ImageURL
	if newImage != "" {
		imageURL = newImage
	}

	updates := map[string]any{
		"title":            strings.TrimSpace(in.Title),
		"description":      in.Description,
		"long_description": in.LongDescription,
		"instructor":       in.Instructor,
		"image_url":        imageURL,
		"image_hint":       in.ImageHint,
		"category_id":      p.categoryID,
		"tags":             p.tags,
		"price":            p.price,
	}
	if _, err := s.courseRepo.UpdateFields(ctx, nil, courseID, updates); err != nil {
		removeFiles(ctx, s.log, s.files, newImage)
		return nil, repoError("db_error", "Failed to update course", err)
	}
	if newImage != "" && old.ImageURL != newImage {
		removeFiles(ctx, s.log, s.files, old.ImageURL)
	}

	rows, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil || len(rows) == 0 {
		return nil, repoError("db_error", "Failed to reload course", err)
	}
	return rows[0], nil
}

// Delete removes the course with its lessons, enrollments, progress and
// orders, then the image and lesson videos once the rows are gone.
func (s *courseService) Delete(ctx context.Context, courseID uuid.UUID) error {
	var files []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			return apierr.NotFound("course_not_found", "Course not found")
		}
		files = append(files, courses[0].ImageURL)

		ids := []uuid.UUID{courseID}
		lessons, err := s.lessonRepo.GetByCourseIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		for _, l := range lessons {
			files = append(files, l.VideoURL)
		}
		enrollments, err := s.enrollmentRepo.GetByCourseIDs(ctx, tx, ids)
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
		if err := s.orderRepo.DeleteByCourseIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.lessonRepo.DeleteByCourseIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.courseRepo.DeleteByIDs(ctx, tx, ids)
	})
	if err != nil {
		return repoError("db_error", "Failed to delete course", err)
	}
	removeFiles(ctx, s.log, s.files, files...)
	s.log.Info("Course deleted", "course_id", courseID, "files", len(files))
	return nil
}
