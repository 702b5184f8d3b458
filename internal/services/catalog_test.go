package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
)

func TestParsePriceAndTags(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"49.99", 49.99, true},
		{"0", 0, true},
		{" 10 ", 10, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"99999999.99", 99999999.99, true},
		{"100000000", 0, false},
		{"1e12", 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.raw)
		if !tc.ok {
			assert.True(t, apierr.IsStatus(err, http.StatusBadRequest), "price %q", tc.raw)
			continue
		}
		require.NoError(t, err, "price %q", tc.raw)
		assert.InDelta(t, tc.want, got, 0.0001)
	}

	tags, err := ParseTags(`["js","web"]`)
	require.NoError(t, err)
	assert.JSONEq(t, `["js","web"]`, string(tags))

	empty, err := ParseTags("")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))

	for _, bad := range []string{`{"a":1}`, `"js"`, `[1,2]`, `null`, `[`} {
		_, err := ParseTags(bad)
		assert.Error(t, err, "tags %q", bad)
	}
}

func TestCourseCreateStoresNumericPriceAndTags(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cat := testutil.SeedCategory(t, ctx, h.db, "web")

	c, err := h.courseSvc.Create(ctx, CourseInput{
		Title:      "JS",
		CategoryID: cat.ID.String(),
		Tags:       `["js","web"]`,
		Price:      "49.99",
	}, upload("cover.png", "png"))
	require.NoError(t, err)
	assert.True(t, h.fileExists(c.ImageURL))

	got, err := h.courseSvc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 49.99, got.Price, 0.0001)
	var tags []string
	require.NoError(t, json.Unmarshal(got.Tags, &tags))
	assert.Equal(t, []string{"js", "web"}, tags)
	assert.NotNil(t, got.Lessons)

	list, err := h.courseSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "web", list[0].Category.Slug)

	_, err = h.courseSvc.Create(ctx, CourseInput{Title: "Bad", Tags: "js", Price: "1"}, nil)
	assert.EqualError(t, err, "Invalid tags format. Must be a JSON array.")
	_, err = h.courseSvc.Create(ctx, CourseInput{Title: "Bad", Tags: "[]", Price: "free"}, nil)
	assert.EqualError(t, err, "Invalid or missing price. Must be a non-negative number.")
	_, err = h.courseSvc.Create(ctx, CourseInput{Title: "Huge", Tags: "[]", Price: "1e12"}, nil)
	assert.True(t, apierr.IsStatus(err, http.StatusBadRequest), "got %v", err)
	_, err = h.courseSvc.Update(ctx, c.ID, CourseInput{Title: "Huge", Tags: "[]", Price: "1e12"}, nil)
	assert.True(t, apierr.IsStatus(err, http.StatusBadRequest), "got %v", err)
	_, err = h.courseSvc.Update(ctx, c.ID, CourseInput{Title: "Bad", Tags: "[]", Price: "-3"}, nil)
	assert.EqualError(t, err, "Invalid price format")
}

func TestCourseUpdateReplacesImage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c, err := h.courseSvc.Create(ctx, CourseInput{Title: "Old", Price: "5"}, upload("old.png", "old"))
	require.NoError(t, err)
	oldImage := c.ImageURL

	updated, err := h.courseSvc.Update(ctx, c.ID, CourseInput{Title: "New", Price: "6", Tags: `["x"]`}, upload("new.png", "new"))
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.NotEqual(t, oldImage, updated.ImageURL)
	assert.True(t, h.fileExists(updated.ImageURL))
	assert.False(t, h.fileExists(oldImage))

	kept, err := h.courseSvc.Update(ctx, c.ID, CourseInput{Title: "Newer", Price: "6"}, nil)
	require.NoError(t, err)
	assert.Equal(t, updated.ImageURL, kept.ImageURL)

	_, err = h.courseSvc.Update(ctx, uuid.New(), CourseInput{Title: "X", Price: "1"}, nil)
	assert.True(t, apierr.IsStatus(err, http.StatusNotFound))
}

func TestCourseDeleteCascades(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, h.db, "cascade@x.com")

	c, err := h.courseSvc.Create(ctx, CourseInput{Title: "Doomed", Price: "1"}, upload("doomed.png", "img"))
	require.NoError(t, err)
	l, err := h.lessonSvc.Create(ctx, LessonInput{Title: "L1", Duration: "5m", Content: "c", CourseID: c.ID.String()}, upload("l1.mp4", "video"))
	require.NoError(t, err)
	res, err := h.enrollSvc.Enroll(ctx, nil, u.ID, c.ID)
	require.NoError(t, err)
	testutil.SeedOrder(t, ctx, h.db, u.ID, c.ID, "order_doomed")

	require.NoError(t, h.courseSvc.Delete(ctx, c.ID))

	_, err = h.courseSvc.Get(ctx, c.ID)
	assert.True(t, apierr.IsStatus(err, http.StatusNotFound))
	lessons, err := h.lessons.GetByCourseIDs(ctx, nil, []uuid.UUID{c.ID})
	require.NoError(t, err)
	assert.Empty(t, lessons)
	progress := h.progressRows(t, res.EnrollmentID)
	assert.Empty(t, progress)
	orders, err := h.orders.GetByUserIDs(ctx, nil, []uuid.UUID{u.ID})
	require.NoError(t, err)
	assert.Empty(t, orders)

	assert.False(t, h.fileExists(c.ImageURL))
	assert.False(t, h.fileExists(l.VideoURL))
	assert.True(t, apierr.IsStatus(h.courseSvc.Delete(ctx, c.ID), http.StatusNotFound))
}

func TestCourseSearch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	testutil.SeedCourse(t, ctx, h.db, "Intro to Go", nil)
	testutil.SeedCourse(t, ctx, h.db, "Advanced Rust", nil)

	got, err := h.courseSvc.Search(ctx, "go")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Intro to Go", got[0].Title)
}

func TestCategoryLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cat, err := h.categorySvc.Create(ctx, "Web", "web")
	require.NoError(t, err)
	_, err = h.categorySvc.Create(ctx, "Web again", "web")
	assert.EqualError(t, err, "Slug already exists")
	_, err = h.categorySvc.Create(ctx, "", "x")
	assert.True(t, apierr.IsStatus(err, http.StatusBadRequest))

	course := testutil.SeedCourse(t, ctx, h.db, "Tagged", &cat.ID)

	require.NoError(t, h.categorySvc.Update(ctx, "web", "Web Dev", "web-dev"))
	assert.True(t, apierr.IsStatus(h.categorySvc.Update(ctx, "web", "X", "x"), http.StatusNotFound))

	require.NoError(t, h.categorySvc.Delete(ctx, "web-dev"))
	assert.True(t, apierr.IsStatus(h.categorySvc.Delete(ctx, "web-dev"), http.StatusNotFound))

	got, err := h.courseSvc.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestLessonLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, h.db, "Lessons", nil)

	_, err := h.lessonSvc.Create(ctx, LessonInput{Title: "A", Duration: "1m", Content: "c", CourseID: c.ID.String()}, nil)
	assert.EqualError(t, err, "All fields including video and course are required")

	l, err := h.lessonSvc.Create(ctx, LessonInput{Title: "A", Duration: "1m", Content: "c", CourseID: c.ID.String()}, upload("a.mp4", "v1"))
	require.NoError(t, err)

	got, err := h.lessonSvc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lessons", got.CourseTitle)

	err = h.lessonSvc.Update(ctx, l.ID, LessonInput{Title: "A"}, nil)
	assert.EqualError(t, err, "All fields except video are required")
	require.NoError(t, h.lessonSvc.Update(ctx, l.ID, LessonInput{Title: "B", Duration: "2m", Content: "c2", CourseID: c.ID.String()}, upload("b.mp4", "v2")))
	assert.False(t, h.fileExists(l.VideoURL))

	updated, err := h.lessonSvc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Title)
	assert.True(t, h.fileExists(updated.VideoURL))

	list, err := h.lessonSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, h.lessonSvc.Delete(ctx, l.ID))
	assert.False(t, h.fileExists(updated.VideoURL))
	_, err = h.lessonSvc.Get(ctx, l.ID)
	assert.True(t, apierr.IsStatus(err, http.StatusNotFound))
}
