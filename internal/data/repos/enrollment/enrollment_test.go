package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func TestEnrollIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEnrollmentRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "enroll@example.com")
	c := testutil.SeedCourse(t, ctx, tx, "Enroll Course", nil)

	first, created, err := repo.Enroll(ctx, tx, u.ID, c.ID)
	if err != nil || !created {
		t.Fatalf("Enroll: created=%v err=%v", created, err)
	}
	second, created, err := repo.Enroll(ctx, tx, u.ID, c.ID)
	if err != nil || created {
		t.Fatalf("second Enroll: created=%v err=%v", created, err)
	}
	if second.ID != first.ID {
		t.Fatalf("second Enroll returned a different row")
	}
	rows, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByUserIDs: err=%v len=%d", err, len(rows))
	}

	if got, err := repo.Get(ctx, tx, u.ID, uuid.New()); err != nil || got != nil {
		t.Fatalf("Get missing: err=%v got=%v", err, got)
	}
	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if got, err := repo.Get(ctx, tx, u.ID, c.ID); err != nil || got != nil {
		t.Fatalf("after delete Get: err=%v got=%v", err, got)
	}
}

func TestLessonProgressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewLessonProgressRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "progress@example.com")
	c := testutil.SeedCourse(t, ctx, tx, "Progress Course", nil)
	l1 := testutil.SeedLesson(t, ctx, tx, c.ID, 1)
	l2 := testutil.SeedLesson(t, ctx, tx, c.ID, 2)
	e := testutil.SeedEnrollment(t, ctx, tx, u.ID, c.ID)

	n, err := repo.Seed(ctx, tx, e.ID, []uuid.UUID{l1.ID, l2.ID})
	if err != nil || n != 2 {
		t.Fatalf("Seed: n=%d err=%v", n, err)
	}
	n, err = repo.Seed(ctx, tx, e.ID, []uuid.UUID{l1.ID, l2.ID})
	if err != nil || n != 0 {
		t.Fatalf("reseed: n=%d err=%v", n, err)
	}

	if err := repo.MarkCompleted(ctx, tx, e.ID, l1.ID, time.Now()); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	// Completing twice stays a single row.
	if err := repo.MarkCompleted(ctx, tx, e.ID, l1.ID, time.Now()); err != nil {
		t.Fatalf("MarkCompleted again: %v", err)
	}

	rows := progressRows(t, tx, e.ID)
	if len(rows) != 2 {
		t.Fatalf("progress rows: len=%d", len(rows))
	}
	for _, r := range rows {
		switch r.LessonID {
		case l1.ID:
			if !r.Completed || r.CompletedAt == nil {
				t.Fatalf("l1 not completed: %+v", r)
			}
		case l2.ID:
			if r.Completed || r.CompletedAt != nil {
				t.Fatalf("l2 changed: %+v", r)
			}
		}
	}

	ids, err := repo.CompletedLessonIDs(ctx, tx, e.ID)
	if err != nil || len(ids) != 1 || ids[0] != l1.ID {
		t.Fatalf("CompletedLessonIDs: ids=%v err=%v", ids, err)
	}

	if err := repo.DeleteByLessonIDs(ctx, tx, []uuid.UUID{l2.ID}); err != nil {
		t.Fatalf("DeleteByLessonIDs: %v", err)
	}
	if err := repo.DeleteByEnrollmentIDs(ctx, tx, []uuid.UUID{e.ID}); err != nil {
		t.Fatalf("DeleteByEnrollmentIDs: %v", err)
	}
	if rows := progressRows(t, tx, e.ID); len(rows) != 0 {
		t.Fatalf("after delete: len=%d", len(rows))
	}
}

func progressRows(t *testing.T, tx *gorm.DB, enrollmentID uuid.UUID) []*types.LessonProgress {
	t.Helper()
	var rows []*types.LessonProgress
	if err := tx.Where("enrollment_id = ?", enrollmentID).Find(&rows).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	return rows
}
