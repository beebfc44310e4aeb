// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package enrollment_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edura-app/edura/internal/learn/catalog"
	"github.com/edura-app/edura/internal/learn/enrollment"
	"github.com/edura-app/edura/internal/platform/apperr"
)

// # Test Fakes

type fakeEnrollmentRepository struct {
	mu      sync.Mutex
	records map[string]*enrollment.Enrollment // keyed by studentID+courseID
}

func newFakeEnrollmentRepository() *fakeEnrollmentRepository {
	return &fakeEnrollmentRepository{records: make(map[string]*enrollment.Enrollment)}
}

func (r *fakeEnrollmentRepository) key(studentID, courseID string) string {
	return studentID + "/" + courseID
}

func (r *fakeEnrollmentRepository) Create(_ context.Context, e *enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(e.StudentID, e.CourseID)
	if _, ok := r.records[key]; ok {
		return apperr.Conflict("Student is already enrolled in this course")
	}
	clone := *e
	r.records[key] = &clone
	return nil
}

func (r *fakeEnrollmentRepository) Exists(_ context.Context, studentID, courseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[r.key(studentID, courseID)]
	return ok, nil
}

func (r *fakeEnrollmentRepository) ListByStudent(_ context.Context, studentID string) ([]*enrollment.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*enrollment.Enrollment
	for _, record := range r.records {
		if record.StudentID == studentID {
			clone := *record
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakeCourseFinder struct {
	known map[string]bool
}

func (f fakeCourseFinder) GetCourse(_ context.Context, id string) (*catalog.Course, error) {
	if f.known[id] {
		return &catalog.Course{ID: id}, nil
	}
	return nil, apperr.NotFound("Course")
}

func newTestService(courseIDs ...string) *enrollment.Service {
	known := make(map[string]bool)
	for _, id := range courseIDs {
		known[id] = true
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return enrollment.NewService(newFakeEnrollmentRepository(), fakeCourseFinder{known: known}, logger)
}

// # Tests

/*
TestService_Enroll verifies the happy path and membership visibility.
*/
func TestService_Enroll(t *testing.T) {
	service := newTestService("course-1")
	ctx := context.Background()

	created, err := service.Enroll(ctx, "student-1", "course-1")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	enrolled, err := service.IsEnrolled(ctx, "student-1", "course-1")
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrolled, err = service.IsEnrolled(ctx, "student-2", "course-1")
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestService_Enroll_UnknownCourse(t *testing.T) {
	service := newTestService()

	_, err := service.Enroll(context.Background(), "student-1", "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_Enroll_DuplicateConflict(t *testing.T) {
	service := newTestService("course-1")
	ctx := context.Background()

	_, err := service.Enroll(ctx, "student-1", "course-1")
	require.NoError(t, err)

	_, err = service.Enroll(ctx, "student-1", "course-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_ListForStudent(t *testing.T) {
	service := newTestService("course-1", "course-2")
	ctx := context.Background()

	_, err := service.Enroll(ctx, "student-1", "course-1")
	require.NoError(t, err)
	_, err = service.Enroll(ctx, "student-1", "course-2")
	require.NoError(t, err)
	_, err = service.Enroll(ctx, "student-2", "course-1")
	require.NoError(t, err)

	list, err := service.ListForStudent(ctx, "student-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
