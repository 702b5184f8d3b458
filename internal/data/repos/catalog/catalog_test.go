package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func TestCategoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCategoryRepo(db, testutil.Logger(t))

	c := &types.Category{Name: "Web", Slug: "catrepo-web"}
	if _, err := repo.Create(ctx, tx, []*types.Category{c}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, err := repo.GetBySlug(ctx, tx, "catrepo-web"); err != nil || got == nil || got.ID != c.ID {
		t.Fatalf("GetBySlug: err=%v got=%v", err, got)
	}
	if n, err := repo.UpdateBySlug(ctx, tx, "catrepo-web", "Web Dev", "catrepo-webdev"); err != nil || n != 1 {
		t.Fatalf("UpdateBySlug: n=%d err=%v", n, err)
	}
	if got, _ := repo.GetBySlug(ctx, tx, "catrepo-web"); got != nil {
		t.Fatalf("old slug still resolves")
	}
	if n, err := repo.DeleteBySlug(ctx, tx, "catrepo-missing"); err != nil || n != 0 {
		t.Fatalf("DeleteBySlug missing: n=%d err=%v", n, err)
	}
	if n, err := repo.DeleteBySlug(ctx, tx, "catrepo-webdev"); err != nil || n != 1 {
		t.Fatalf("DeleteBySlug: n=%d err=%v", n, err)
	}
}

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	cat := testutil.SeedCategory(t, ctx, tx, "courserepo-cat")
	c := &types.Course{
		Title:      "Intro to JavaScript",
		Instructor: "Grace",
		CategoryID: &cat.ID,
		Tags:       datatypes.JSON([]byte(`["js","web"]`)),
		Price:      49.99,
	}
	if _, err := repo.Create(ctx, tx, []*types.Course{c}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].Price != 49.99 {
		t.Fatalf("price: got %v", rows[0].Price)
	}
	var tags []string
	if err := json.Unmarshal(rows[0].Tags, &tags); err != nil || len(tags) != 2 || tags[0] != "js" {
		t.Fatalf("tags: %v %v", tags, err)
	}
	if rows[0].Category == nil || rows[0].Category.Slug != "courserepo-cat" {
		t.Fatalf("category not preloaded: %+v", rows[0].Category)
	}

	testutil.SeedLesson(t, ctx, tx, c.ID, 2)
	first := testutil.SeedLesson(t, ctx, tx, c.ID, 1)
	full, err := repo.GetWithLessons(ctx, tx, c.ID)
	if err != nil || full == nil || len(full.Lessons) != 2 {
		t.Fatalf("GetWithLessons: err=%v full=%v", err, full)
	}
	if full.Lessons[0].ID != first.ID {
		t.Fatalf("lessons not ordered by created_at")
	}
	if missing, err := repo.GetWithLessons(ctx, tx, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetWithLessons missing: err=%v got=%v", err, missing)
	}

	if found, err := repo.SearchByTitle(ctx, tx, "javascript"); err != nil || len(found) != 1 {
		t.Fatalf("SearchByTitle: err=%v len=%d", err, len(found))
	}
	if found, err := repo.SearchByTitle(ctx, tx, "100%"); err != nil || len(found) != 0 {
		t.Fatalf("SearchByTitle wildcard: err=%v len=%d", err, len(found))
	}

	u := testutil.SeedUser(t, ctx, tx, "courserepo@example.com")
	testutil.SeedEnrollment(t, ctx, tx, u.ID, c.ID)
	if enrolled, err := repo.ListEnrolledByUser(ctx, tx, u.ID); err != nil || len(enrolled) != 1 {
		t.Fatalf("ListEnrolledByUser: err=%v len=%d", err, len(enrolled))
	}

	if n, err := repo.UpdateFields(ctx, tx, c.ID, map[string]any{"price": 10.5}); err != nil || n != 1 {
		t.Fatalf("UpdateFields: n=%d err=%v", n, err)
	}
	if err := repo.ClearCategory(ctx, tx, cat.ID); err != nil {
		t.Fatalf("ClearCategory: %v", err)
	}
	rows, _ = repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID})
	if rows[0].CategoryID != nil {
		t.Fatalf("ClearCategory: category still set")
	}

	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByIDs: err=%v len=%d", err, len(rows))
	}
}

func TestLessonRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewLessonRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, tx, "Lesson Repo Course", nil)
	l := &types.Lesson{Title: "Hello", Duration: "5m", Content: "c", VideoURL: "/assets/videos/a.mp4", CourseID: c.ID}
	if _, err := repo.Create(ctx, tx, []*types.Lesson{l}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetWithCourseTitle(ctx, tx, l.ID)
	if err != nil || got == nil || got.CourseTitle != "Lesson Repo Course" {
		t.Fatalf("GetWithCourseTitle: err=%v got=%+v", err, got)
	}
	list, err := repo.ListWithCourseTitle(ctx, tx)
	if err != nil || len(list) != 1 || list[0].CourseTitle == "" {
		t.Fatalf("ListWithCourseTitle: err=%v len=%d", err, len(list))
	}
	if rows, err := repo.GetByCourseIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByCourseIDs: err=%v len=%d", err, len(rows))
	}
	if n, err := repo.UpdateFields(ctx, tx, l.ID, map[string]any{"title": "Hi"}); err != nil || n != 1 {
		t.Fatalf("UpdateFields: n=%d err=%v", n, err)
	}
	if err := repo.DeleteByCourseIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("DeleteByCourseIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{l.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByCourseIDs: err=%v len=%d", err, len(rows))
	}
}
