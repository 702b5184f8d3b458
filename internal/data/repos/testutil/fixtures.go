package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Name:      "Student " + email,
		Email:     email,
		Password:  "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash1234",
		Role:      types.RoleUser,
		AvatarURL: types.DefaultAvatarURL,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Category {
	tb.Helper()
	c := &types.Category{ID: uuid.New(), Name: "Category " + slug, Slug: slug}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, categoryID *uuid.UUID) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		Instructor:  "Instructor",
		ImageURL:    "/assets/uploads/" + uuid.NewString() + ".png",
		CategoryID:  categoryID,
		Tags:        datatypes.JSON([]byte(`["go","web"]`)),
		Price:       49.99,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

// SeedLesson spaces created_at by index so ordering is deterministic.
func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, index int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:        uuid.New(),
		Title:     "Lesson",
		Duration:  "10m",
		Content:   "content",
		VideoURL:  "/assets/videos/" + uuid.NewString() + ".mp4",
		CourseID:  courseID,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, index, 0, time.UTC),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{ID: uuid.New(), UserID: userID, CourseID: courseID}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, gatewayID string) *types.Order {
	tb.Helper()
	o := &types.Order{
		ID:              uuid.New(),
		UserID:          userID,
		CourseID:        courseID,
		RazorpayOrderID: gatewayID,
		Amount:          4999,
		Currency:        types.CurrencyINR,
		Receipt:         "receipt_test",
		Status:          types.OrderPending,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}
