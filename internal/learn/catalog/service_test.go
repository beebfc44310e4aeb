// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edura-app/edura/internal/learn/catalog"
	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/sec"
)

// # Test Fakes

type fakeCourseRepository struct {
	mu      sync.Mutex
	courses map[string]*catalog.Course
}

func newFakeCourseRepository() *fakeCourseRepository {
	return &fakeCourseRepository{courses: make(map[string]*catalog.Course)}
}

func (r *fakeCourseRepository) Create(_ context.Context, course *catalog.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.courses {
		if existing.Slug == course.Slug {
			return apperr.Conflict("A course with this title already exists")
		}
	}
	clone := *course
	r.courses[course.ID] = &clone
	return nil
}

func (r *fakeCourseRepository) FindByID(_ context.Context, id string) (*catalog.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if course, ok := r.courses[id]; ok && course.DeletedAt == nil {
		clone := *course
		return &clone, nil
	}
	return nil, apperr.NotFound("Course")
}

func (r *fakeCourseRepository) List(_ context.Context, limit, offset int) ([]*catalog.Course, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*catalog.Course
	for _, course := range r.courses {
		if course.IsPublished && course.DeletedAt == nil {
			clone := *course
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (r *fakeCourseRepository) Update(_ context.Context, course *catalog.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[course.ID]; !ok {
		return apperr.NotFound("Course")
	}
	clone := *course
	r.courses[course.ID] = &clone
	return nil
}

func (r *fakeCourseRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return apperr.NotFound("Course")
	}
	delete(r.courses, id)
	return nil
}

type fakeChapterRepository struct {
	mu       sync.Mutex
	chapters map[string]*catalog.Chapter
}

func newFakeChapterRepository() *fakeChapterRepository {
	return &fakeChapterRepository{chapters: make(map[string]*catalog.Chapter)}
}

func (r *fakeChapterRepository) Create(_ context.Context, chapter *catalog.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.chapters {
		if existing.CourseID == chapter.CourseID && existing.Position == chapter.Position {
			return apperr.Conflict("Position is already taken in this course")
		}
	}
	clone := *chapter
	r.chapters[chapter.ID] = &clone
	return nil
}

func (r *fakeChapterRepository) FindByID(_ context.Context, id string) (*catalog.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chapter, ok := r.chapters[id]; ok {
		clone := *chapter
		return &clone, nil
	}
	return nil, apperr.NotFound("Chapter")
}

func (r *fakeChapterRepository) ListByCourse(_ context.Context, courseID string) ([]*catalog.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*catalog.Chapter
	for _, chapter := range r.chapters {
		if chapter.CourseID == courseID {
			clone := *chapter
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func newTestService() *catalog.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(newFakeCourseRepository(), newFakeChapterRepository(), logger)
}

// # Courses

/*
TestService_CreateCourse verifies slug generation and required-field validation.
*/
func TestService_CreateCourse(t *testing.T) {
	service := newTestService()

	course, err := service.CreateCourse(context.Background(), catalog.CreateCourseInput{
		MentorID: "mentor-1",
		Title:    "Intro to Distributed Systems",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "intro-to-distributed-systems", course.Slug)
}

func TestService_CreateCourse_RequiresTitle(t *testing.T) {
	service := newTestService()

	_, err := service.CreateCourse(context.Background(), catalog.CreateCourseInput{MentorID: "mentor-1"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_CourseOwner(t *testing.T) {
	service := newTestService()

	course, err := service.CreateCourse(context.Background(), catalog.CreateCourseInput{
		MentorID: "mentor-1",
		Title:    "Networking",
	})
	require.NoError(t, err)

	owner, err := service.CourseOwner(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "mentor-1", owner)

	_, err = service.CourseOwner(context.Background(), "missing")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_UpdateCourse verifies field overwrites, the ownership rule, and
that the slug stays stable across a retitle.
*/
func TestService_UpdateCourse(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{
		MentorID: "mentor-1",
		Title:    "Intro to Distributed Systems",
	})
	require.NoError(t, err)

	updated, err := service.UpdateCourse(ctx, catalog.UpdateCourseInput{
		CourseID:    course.ID,
		Title:       "Distributed Systems in Depth",
		Description: "Consensus and replication",
		IsPublished: true,
		ActorID:     "mentor-1",
		ActorRole:   sec.RoleMentor,
	})
	require.NoError(t, err)
	assert.Equal(t, "Distributed Systems in Depth", updated.Title)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, "intro-to-distributed-systems", updated.Slug)
}

func TestService_UpdateCourse_ForbiddenForOtherMentor(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	_, err = service.UpdateCourse(ctx, catalog.UpdateCourseInput{
		CourseID:  course.ID,
		Title:     "Hijacked",
		ActorID:   "mentor-2",
		ActorRole: sec.RoleMentor,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_UpdateCourse_UnknownCourse(t *testing.T) {
	service := newTestService()

	_, err := service.UpdateCourse(context.Background(), catalog.UpdateCourseInput{
		CourseID:  "missing",
		Title:     "Anything",
		ActorID:   "mentor-1",
		ActorRole: sec.RoleMentor,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_DeleteCourse verifies the soft-delete flow: the owner may retire
the course, after which it is gone from reads, and admins bypass ownership.
*/
func TestService_DeleteCourse(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCourse(ctx, course.ID, "mentor-1", sec.RoleMentor))

	_, err = service.GetCourse(ctx, course.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_DeleteCourse_ForbiddenForOtherMentor(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	err = service.DeleteCourse(ctx, course.ID, "mentor-2", sec.RoleMentor)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_DeleteCourse_AdminBypassesOwnership(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCourse(ctx, course.ID, "admin-1", sec.RoleAdmin))
}

// # Chapters

/*
TestService_AddChapter covers ownership enforcement and position rules.
*/
func TestService_AddChapter(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	chapter, err := service.AddChapter(ctx, catalog.AddChapterInput{
		CourseID:  course.ID,
		Position:  1,
		Title:     "Hello World",
		ActorID:   "mentor-1",
		ActorRole: sec.RoleMentor,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, chapter.Position)
}

func TestService_AddChapter_ForbiddenForOtherMentor(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	_, err = service.AddChapter(ctx, catalog.AddChapterInput{
		CourseID:  course.ID,
		Position:  1,
		Title:     "Hijack",
		ActorID:   "mentor-2",
		ActorRole: sec.RoleMentor,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_AddChapter_AdminBypassesOwnership(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	_, err = service.AddChapter(ctx, catalog.AddChapterInput{
		CourseID:  course.ID,
		Position:  1,
		Title:     "Editorial fix",
		ActorID:   "admin-1",
		ActorRole: sec.RoleAdmin,
	})
	assert.NoError(t, err)
}

func TestService_AddChapter_RejectsNonPositivePosition(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	_, err = service.AddChapter(ctx, catalog.AddChapterInput{
		CourseID:  course.ID,
		Position:  0,
		Title:     "Zeroth",
		ActorID:   "mentor-1",
		ActorRole: sec.RoleMentor,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_AddChapter_DuplicatePositionConflict(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	input := catalog.AddChapterInput{
		CourseID:  course.ID,
		Position:  1,
		Title:     "First",
		ActorID:   "mentor-1",
		ActorRole: sec.RoleMentor,
	}
	_, err = service.AddChapter(ctx, input)
	require.NoError(t, err)

	input.Title = "Also first"
	_, err = service.AddChapter(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_ListChapters verifies ordering and course existence checks.
*/
func TestService_ListChapters(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "Go"})
	require.NoError(t, err)

	// Insert out of order; listing must come back sorted by position.
	for _, position := range []int{3, 1, 2} {
		_, err := service.AddChapter(ctx, catalog.AddChapterInput{
			CourseID:  course.ID,
			Position:  position,
			Title:     "Chapter",
			ActorID:   "mentor-1",
			ActorRole: sec.RoleMentor,
		})
		require.NoError(t, err)
	}

	chapters, err := service.ListChapters(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	for index, chapter := range chapters {
		assert.Equal(t, index+1, chapter.Position)
	}
}

func TestService_ListChapters_UnknownCourse(t *testing.T) {
	service := newTestService()

	_, err := service.ListChapters(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_FindChapter_WrongCourseIsNotFound(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	courseA, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "A"})
	require.NoError(t, err)
	courseB, err := service.CreateCourse(ctx, catalog.CreateCourseInput{MentorID: "mentor-1", Title: "B"})
	require.NoError(t, err)

	chapter, err := service.AddChapter(ctx, catalog.AddChapterInput{
		CourseID:  courseA.ID,
		Position:  1,
		Title:     "Only in A",
		ActorID:   "mentor-1",
		ActorRole: sec.RoleMentor,
	})
	require.NoError(t, err)

	_, err = service.FindChapter(ctx, courseB.ID, chapter.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	found, err := service.FindChapter(ctx, courseA.ID, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, chapter.ID, found.ID)
}
