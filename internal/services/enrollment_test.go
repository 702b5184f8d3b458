package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
)

func TestEnrollIsIdempotentAndSeedsProgress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, h.db, "enroll@x.com")
	c := testutil.SeedCourse(t, ctx, h.db, "Go", nil)
	for i := 0; i < 3; i++ {
		testutil.SeedLesson(t, ctx, h.db, c.ID, i)
	}

	first, err := h.enrollSvc.Enroll(ctx, nil, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgEnrolledSeeded, first.Message)
	assert.True(t, first.Created)
	assert.EqualValues(t, 3, first.SeededLessons)

	second, err := h.enrollSvc.Enroll(ctx, nil, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgAlreadyEnrolled, second.Message)
	assert.Equal(t, first.EnrollmentID, second.EnrollmentID)

	rows, err := h.enrollments.GetByUserIDs(ctx, nil, []uuid.UUID{u.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	progress := h.progressRows(t, first.EnrollmentID)
	assert.Len(t, progress, 3)
}

func TestEnrollWithoutLessons(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, h.db, "empty@x.com")
	c := testutil.SeedCourse(t, ctx, h.db, "Empty", nil)

	res, err := h.enrollSvc.Enroll(ctx, nil, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgEnrolledNoLesson, res.Message)

	_, err = h.enrollSvc.Enroll(ctx, nil, u.ID, uuid.New())
	assert.True(t, apierr.IsStatus(err, http.StatusNotFound))
}

func TestUnenrollRemovesProgress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, h.db, "un@x.com")
	c := testutil.SeedCourse(t, ctx, h.db, "Un", nil)
	testutil.SeedLesson(t, ctx, h.db, c.ID, 0)

	res, err := h.enrollSvc.Enroll(ctx, nil, u.ID, c.ID)
	require.NoError(t, err)
	require.NoError(t, h.enrollSvc.Unenroll(ctx, u.ID, c.ID))

	progress := h.progressRows(t, res.EnrollmentID)
	assert.Empty(t, progress)
	assert.True(t, apierr.IsStatus(h.enrollSvc.Unenroll(ctx, u.ID, c.ID), http.StatusNotFound))
}

func TestCompleteLessonTouchesOneRow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, h.db, "p@x.com")
	c := testutil.SeedCourse(t, ctx, h.db, "Progress", nil)
	other := testutil.SeedCourse(t, ctx, h.db, "Other", nil)
	l1 := testutil.SeedLesson(t, ctx, h.db, c.ID, 0)
	testutil.SeedLesson(t, ctx, h.db, c.ID, 1)
	foreign := testutil.SeedLesson(t, ctx, h.db, other.ID, 0)

	err := h.progressSvc.CompleteLesson(ctx, u.ID, c.ID, l1.ID)
	assert.True(t, apierr.IsStatus(err, http.StatusBadRequest), "not enrolled: %v", err)

	_, err = h.enrollSvc.Enroll(ctx, nil, u.ID, c.ID)
	require.NoError(t, err)

	err = h.progressSvc.CompleteLesson(ctx, u.ID, c.ID, foreign.ID)
	assert.True(t, apierr.IsStatus(err, http.StatusNotFound), "foreign lesson: %v", err)

	require.NoError(t, h.progressSvc.CompleteLesson(ctx, u.ID, c.ID, l1.ID))
	require.NoError(t, h.progressSvc.CompleteLesson(ctx, u.ID, c.ID, l1.ID))

	got, err := h.progressSvc.CourseProgress(ctx, u.ID, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EnrollmentID)
	assert.Equal(t, []string{l1.ID.String()}, got.CompletedLessonIDs)

	none, err := h.progressSvc.CourseProgress(ctx, u.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, none.EnrollmentID)
	assert.Empty(t, none.CompletedLessonIDs)
	assert.NotNil(t, none.CompletedLessonIDs)
}
