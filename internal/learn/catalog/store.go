// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package catalog

import "context"

// CourseRepository abstracts persistence for courses.
type CourseRepository interface {
	// Create persists a new course. Slug collisions surface as Conflict.
	Create(ctx context.Context, course *Course) error

	// FindByID retrieves a course by primary key, excluding soft-deleted rows.
	FindByID(ctx context.Context, id string) (*Course, error)

	// List returns published courses ordered by creation time, newest first,
	// together with the total count for pagination.
	List(ctx context.Context, limit, offset int) ([]*Course, int, error)

	// Update overwrites the mutable fields of a course.
	Update(ctx context.Context, course *Course) error

	// SoftDelete hides a course without destroying completion history.
	SoftDelete(ctx context.Context, id string) error
}

// ChapterRepository abstracts persistence for ordered chapters.
type ChapterRepository interface {
	// Create persists a new chapter. A position collision within the course
	// surfaces as Conflict.
	Create(ctx context.Context, chapter *Chapter) error

	// FindByID retrieves a chapter by primary key.
	FindByID(ctx context.Context, id string) (*Chapter, error)

	// ListByCourse returns every chapter of a course ordered by ascending
	// position.
	ListByCourse(ctx context.Context, courseID string) ([]*Chapter, error)
}
