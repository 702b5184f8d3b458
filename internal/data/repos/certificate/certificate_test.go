package certificate

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func TestCertificateRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCertificateRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "certrepo@example.com")
	c := &types.Certificate{
		StudentID:         u.ID,
		CourseTitle:       "Go Basics",
		CourseCertificate: "/assets/certificates/cert.png",
		DateIssued:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := repo.Create(ctx, tx, []*types.Certificate{c}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetWithStudentName(ctx, tx, c.ID)
	if err != nil || got == nil || got.StudentName != u.Name {
		t.Fatalf("GetWithStudentName: err=%v got=%+v", err, got)
	}
	if list, err := repo.ListWithStudentName(ctx, tx); err != nil || len(list) != 1 {
		t.Fatalf("ListWithStudentName: err=%v len=%d", err, len(list))
	}
	if rows, err := repo.GetByStudentIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByStudentIDs: err=%v len=%d", err, len(rows))
	}
	if n, err := repo.UpdateFields(ctx, tx, c.ID, map[string]any{"course_title": "Go Advanced"}); err != nil || n != 1 {
		t.Fatalf("UpdateFields: n=%d err=%v", n, err)
	}
	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if got, err := repo.GetWithStudentName(ctx, tx, c.ID); err != nil || got != nil {
		t.Fatalf("after delete: err=%v got=%v", err, got)
	}
}
