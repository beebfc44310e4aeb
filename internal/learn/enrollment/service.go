// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package enrollment

import (
	"context"
	"log/slog"

	"github.com/edura-app/edura/internal/learn/catalog"
	"github.com/edura-app/edura/pkg/uuidv7"
)

// # Service Layer

// CourseFinder is the slice of the catalogue this package needs: existence
// checks before enrolling.
type CourseFinder interface {
	GetCourse(ctx context.Context, id string) (*catalog.Course, error)
}

// Service orchestrates course membership.
type Service struct {
	enrollmentRepo EnrollmentRepository
	courses        CourseFinder
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(enrollmentRepo EnrollmentRepository, courses CourseFinder, logger *slog.Logger) *Service {
	return &Service{
		enrollmentRepo: enrollmentRepo,
		courses:        courses,
		logger:         logger,
	}
}

// # Operations

/*
Enroll registers a student into a course.

Description: The course must exist and be visible. Duplicate enrollment is
rejected by the (studentid, courseid) unique constraint, so concurrent
requests for the same pair yield exactly one membership.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - *Enrollment: Created membership
  - error: NotFound (unknown course), Conflict (already enrolled), or storage errors
*/
func (service *Service) Enroll(context context.Context, studentID, courseID string) (*Enrollment, error) {
	if _, err := service.courses.GetCourse(context, courseID); err != nil {
		return nil, err
	}

	enrollment := &Enrollment{
		ID:        uuidv7.New(),
		StudentID: studentID,
		CourseID:  courseID,
	}

	if err := service.enrollmentRepo.Create(context, enrollment); err != nil {
		return nil, err
	}

	service.logger.Info("student_enrolled",
		slog.String("student_id", studentID),
		slog.String("course_id", courseID),
	)

	return enrollment, nil
}

/*
IsEnrolled reports whether a student is a member of a course.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - bool: Membership state
  - error: Storage errors
*/
func (service *Service) IsEnrolled(context context.Context, studentID, courseID string) (bool, error) {
	return service.enrollmentRepo.Exists(context, studentID, courseID)
}

// ListForStudent returns all of a student's enrollments, newest first.
func (service *Service) ListForStudent(context context.Context, studentID string) ([]*Enrollment, error) {
	return service.enrollmentRepo.ListByStudent(context, studentID)
}
