// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package enrollment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/database/schema"
	"github.com/edura-app/edura/internal/platform/dberr"
)

// enrollmentRepository implements the [EnrollmentRepository] interface using pgx.
type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository constructs a PostgreSQL backed enrollment store.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

/*
Create persists a new enrollment record into the learn.enrollment table.

Description: The (studentid, courseid) unique constraint is the authoritative
duplicate guard. No pre-check is performed here.

Parameters:
  - context: context.Context
  - enrollment: *Enrollment

Returns:
  - error: apperr.Conflict on duplicate membership, or execution errors
*/
func (repository *enrollmentRepository) Create(context context.Context, enrollment *Enrollment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.LearnEnrollment.Table,
		schema.LearnEnrollment.ID,
		schema.LearnEnrollment.StudentID,
		schema.LearnEnrollment.CourseID,
		schema.LearnEnrollment.EnrolledAt,
	)

	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Student is already enrolled in this course")
		}
		return fmt.Errorf("postgres: failed to create enrollment: %w", err)
	}

	return nil
}

/*
Exists reports whether a student is enrolled in a course.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - bool: Membership state
  - error: Execution errors
*/
func (repository *enrollmentRepository) Exists(context context.Context, studentID, courseID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s = $2
		)
	`,
		schema.LearnEnrollment.Table,
		schema.LearnEnrollment.StudentID,
		schema.LearnEnrollment.CourseID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, studentID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check enrollment: %w", err)
	}

	return exists, nil
}

/*
ListByStudent retrieves all enrollments of a student, newest first.

Parameters:
  - context: context.Context
  - studentID: string

Returns:
  - []*Enrollment: Memberships ordered by enrollment time descending
  - error: Execution errors
*/
func (repository *enrollmentRepository) ListByStudent(context context.Context, studentID string) ([]*Enrollment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
	`,
		schema.LearnEnrollment.ID,
		schema.LearnEnrollment.StudentID,
		schema.LearnEnrollment.CourseID,
		schema.LearnEnrollment.EnrolledAt,
		schema.LearnEnrollment.Table,
		schema.LearnEnrollment.StudentID,
		schema.LearnEnrollment.EnrolledAt,
	)

	rows, err := repository.pool.Query(context, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*Enrollment
	for rows.Next() {
		var enrollment Enrollment
		err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.EnrolledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &enrollment)
	}

	return enrollments, nil
}
