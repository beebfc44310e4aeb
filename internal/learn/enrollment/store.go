// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package enrollment

import "context"

// EnrollmentRepository abstracts persistence for course memberships.
type EnrollmentRepository interface {
	// Create persists a new enrollment. A duplicate (student, course) pair
	// surfaces as Conflict.
	Create(ctx context.Context, enrollment *Enrollment) error

	// Exists reports whether the student is enrolled in the course.
	Exists(ctx context.Context, studentID, courseID string) (bool, error)

	// ListByStudent returns all enrollments of a student, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*Enrollment, error)
}
