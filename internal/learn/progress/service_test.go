// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package progress_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edura-app/edura/internal/learn/catalog"
	"github.com/edura-app/edura/internal/learn/progress"
	"github.com/edura-app/edura/internal/platform/apperr"
)

// # Test Fakes

type fakeCompletionRepository struct {
	mu      sync.Mutex
	records map[string]*progress.CompletionRecord // keyed by studentID+chapterID
}

func newFakeCompletionRepository() *fakeCompletionRepository {
	return &fakeCompletionRepository{records: make(map[string]*progress.CompletionRecord)}
}

func (r *fakeCompletionRepository) Create(_ context.Context, record *progress.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := record.StudentID + "/" + record.ChapterID
	if _, ok := r.records[key]; ok {
		return apperr.Conflict("Chapter is already completed")
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}
	clone := *record
	r.records[key] = &clone
	return nil
}

func (r *fakeCompletionRepository) ListChapterIDs(_ context.Context, studentID, courseID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, record := range r.records {
		if record.StudentID == studentID && record.CourseID == courseID {
			ids = append(ids, record.ChapterID)
		}
	}
	return ids, nil
}

func (r *fakeCompletionRepository) CountByCourse(_ context.Context, studentID, courseID string) (int, error) {
	ids, _ := r.ListChapterIDs(context.Background(), studentID, courseID)
	return len(ids), nil
}

// drop removes a completion, simulating a gap left by content changes.
func (r *fakeCompletionRepository) drop(studentID, chapterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, studentID+"/"+chapterID)
}

type fakeChapterCatalog struct {
	chapters map[string][]*catalog.Chapter // courseID -> ordered chapters
}

func (f *fakeChapterCatalog) FindChapter(_ context.Context, courseID, chapterID string) (*catalog.Chapter, error) {
	for _, chapter := range f.chapters[courseID] {
		if chapter.ID == chapterID {
			clone := *chapter
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Chapter")
}

func (f *fakeChapterCatalog) ListChapters(_ context.Context, courseID string) ([]*catalog.Chapter, error) {
	if _, ok := f.chapters[courseID]; !ok {
		return nil, apperr.NotFound("Course")
	}
	return f.chapters[courseID], nil
}

type fakeEnrollmentChecker struct {
	enrolled map[string]bool // studentID+courseID
}

func (f *fakeEnrollmentChecker) IsEnrolled(_ context.Context, studentID, courseID string) (bool, error) {
	return f.enrolled[studentID+"/"+courseID], nil
}

// # Fixture

// courseFixture builds a course with n chapters ("ch-1".."ch-n") at positions
// 1..n and enrolls student-1.
func courseFixture(n int) (*progress.Service, *fakeCompletionRepository) {
	chapters := make([]*catalog.Chapter, 0, n)
	for i := 1; i <= n; i++ {
		chapters = append(chapters, &catalog.Chapter{
			ID:       fmt.Sprintf("ch-%d", i),
			CourseID: "course-1",
			Position: i,
			Title:    fmt.Sprintf("Chapter %d", i),
		})
	}

	completions := newFakeCompletionRepository()
	service := progress.NewService(
		completions,
		&fakeChapterCatalog{chapters: map[string][]*catalog.Chapter{"course-1": chapters}},
		&fakeEnrollmentChecker{enrolled: map[string]bool{"student-1/course-1": true}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return service, completions
}

// # MarkComplete

/*
TestService_MarkComplete_Sequential walks a three-chapter course front to
back and checks the snapshot after each step.
*/
func TestService_MarkComplete_Sequential(t *testing.T) {
	service, _ := courseFixture(3)
	ctx := context.Background()

	expected := []int{33, 67, 100}
	for i := 1; i <= 3; i++ {
		record, err := service.MarkComplete(ctx, "student-1", "course-1", fmt.Sprintf("ch-%d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ch-%d", i), record.ChapterID)
		assert.False(t, record.CompletedAt.IsZero())

		snapshot, err := service.GetSnapshot(ctx, "student-1", "course-1")
		require.NoError(t, err)
		assert.Equal(t, i, snapshot.CompletedChapters)
		assert.Equal(t, expected[i-1], snapshot.CompletionPercentage)
	}
}

func TestService_MarkComplete_UnknownChapter(t *testing.T) {
	service, _ := courseFixture(3)

	_, err := service.MarkComplete(context.Background(), "student-1", "course-1", "ch-99")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_MarkComplete_NotEnrolled(t *testing.T) {
	service, _ := courseFixture(3)

	_, err := service.MarkComplete(context.Background(), "student-2", "course-1", "ch-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_MarkComplete_SkippingAhead verifies that jumping to a later
chapter names the FIRST unmet chapter, not merely any of them.
*/
func TestService_MarkComplete_SkippingAhead(t *testing.T) {
	service, _ := courseFixture(4)
	ctx := context.Background()

	_, err := service.MarkComplete(ctx, "student-1", "course-1", "ch-1")
	require.NoError(t, err)

	// Chapters 2 and 3 are both incomplete; the rejection must name chapter 2.
	_, err = service.MarkComplete(ctx, "student-1", "course-1", "ch-4")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "PREREQUISITE_NOT_MET", ae.Code)
	assert.Contains(t, ae.Message, "Chapter 2")
}

func TestService_MarkComplete_GapBlocksLaterChapters(t *testing.T) {
	service, completions := courseFixture(3)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		_, err := service.MarkComplete(ctx, "student-1", "course-1", fmt.Sprintf("ch-%d", i))
		require.NoError(t, err)
	}

	// A gap at chapter 1 blocks chapter 3 even though chapter 2 is done.
	completions.drop("student-1", "ch-1")

	_, err := service.MarkComplete(ctx, "student-1", "course-1", "ch-3")
	require.Error(t, err)
	ae := apperr.As(err)
	assert.Equal(t, "PREREQUISITE_NOT_MET", ae.Code)
	assert.Contains(t, ae.Message, "Chapter 1")
}

func TestService_MarkComplete_Repeat(t *testing.T) {
	service, _ := courseFixture(2)
	ctx := context.Background()

	_, err := service.MarkComplete(ctx, "student-1", "course-1", "ch-1")
	require.NoError(t, err)

	_, err = service.MarkComplete(ctx, "student-1", "course-1", "ch-1")
	require.Error(t, err)
	assert.Equal(t, "ALREADY_COMPLETED", apperr.As(err).Code)

	// The duplicate rejection must not have recorded anything new.
	snapshot, err := service.GetSnapshot(ctx, "student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.CompletedChapters)
}

/*
TestService_MarkComplete_CheckOrder verifies the precedence of rejections: a
request that is simultaneously unenrolled and out of order reports the
enrollment failure, and an unknown chapter wins over everything.
*/
func TestService_MarkComplete_CheckOrder(t *testing.T) {
	service, _ := courseFixture(3)
	ctx := context.Background()

	// Unenrolled student skipping ahead: Forbidden, not PrerequisiteNotMet.
	_, err := service.MarkComplete(ctx, "student-2", "course-1", "ch-3")
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Unknown chapter for an unenrolled student: NotFound, not Forbidden.
	_, err = service.MarkComplete(ctx, "student-2", "course-1", "ch-99")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Snapshot

/*
TestService_GetSnapshot_Percentages checks the rounding behaviour of the
derived percentage.
*/
func TestService_GetSnapshot_Percentages(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		expected  int
	}{
		{"zero_progress", 3, 0, 0},
		{"one_third", 3, 1, 33},
		{"two_thirds", 3, 2, 67},
		{"complete", 3, 3, 100},
		{"one_sixth", 6, 1, 17},
		{"half_of_eight", 8, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := courseFixture(tt.total)
			ctx := context.Background()

			for i := 1; i <= tt.completed; i++ {
				_, err := service.MarkComplete(ctx, "student-1", "course-1", fmt.Sprintf("ch-%d", i))
				require.NoError(t, err)
			}

			snapshot, err := service.GetSnapshot(ctx, "student-1", "course-1")
			require.NoError(t, err)
			assert.Equal(t, tt.total, snapshot.TotalChapters)
			assert.Equal(t, tt.completed, snapshot.CompletedChapters)
			assert.Equal(t, tt.expected, snapshot.CompletionPercentage)
		})
	}
}

func TestService_GetSnapshot_EmptyCourse(t *testing.T) {
	service, _ := courseFixture(0)

	snapshot, err := service.GetSnapshot(context.Background(), "student-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.TotalChapters)
	assert.Equal(t, 0, snapshot.CompletedChapters)
	assert.Equal(t, 0, snapshot.CompletionPercentage)
}

func TestService_GetSnapshot_UnknownCourse(t *testing.T) {
	service, _ := courseFixture(1)

	_, err := service.GetSnapshot(context.Background(), "student-1", "course-2")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Races

/*
TestService_MarkComplete_InsertRace simulates two requests passing the
precondition checks together: the storage conflict must surface as the same
AlreadyCompleted rejection a late arrival would see.
*/
func TestService_MarkComplete_InsertRace(t *testing.T) {
	_, completions := courseFixture(1)
	ctx := context.Background()

	// Seed the winner directly in storage, bypassing the service's checks.
	require.NoError(t, completions.Create(ctx, &progress.CompletionRecord{
		ID:        "seeded",
		StudentID: "student-1",
		CourseID:  "course-1",
		ChapterID: "ch-1",
	}))

	// The fake repository still reports the chapter as completed, so exercise
	// the conflict path through a fresh service that cannot see the record.
	blind := progress.NewService(
		conflictOnCreate{inner: completions},
		&fakeChapterCatalog{chapters: map[string][]*catalog.Chapter{"course-1": {{
			ID: "ch-1", CourseID: "course-1", Position: 1, Title: "Chapter 1",
		}}}},
		&fakeEnrollmentChecker{enrolled: map[string]bool{"student-1/course-1": true}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := blind.MarkComplete(ctx, "student-1", "course-1", "ch-1")
	require.Error(t, err)
	assert.Equal(t, "ALREADY_COMPLETED", apperr.As(err).Code)
}

// conflictOnCreate hides existing records from reads so the duplicate is only
// discovered at insert time, like a true concurrent write.
type conflictOnCreate struct {
	inner *fakeCompletionRepository
}

func (c conflictOnCreate) Create(ctx context.Context, record *progress.CompletionRecord) error {
	return c.inner.Create(ctx, record)
}

func (c conflictOnCreate) ListChapterIDs(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (c conflictOnCreate) CountByCourse(context.Context, string, string) (int, error) {
	return 0, nil
}
