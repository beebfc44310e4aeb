// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/database/schema"
	"github.com/edura-app/edura/internal/platform/dberr"
)

// # PostgreSQL Repositories

// courseRepository implements the [CourseRepository] interface using pgx.
type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository constructs a PostgreSQL backed course store.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

/*
Create persists a new course record into the learn.course table.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: apperr.Conflict on slug collision, or execution errors
*/
func (repository *courseRepository) Create(context context.Context, course *Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.LearnCourse.Table,
		schema.LearnCourse.ID,
		schema.LearnCourse.MentorID,
		schema.LearnCourse.Title,
		schema.LearnCourse.Slug,
		schema.LearnCourse.Description,
		schema.LearnCourse.IsPublished,
		schema.LearnCourse.CreatedAt,
		schema.LearnCourse.UpdatedAt,
	)

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		course.ID,
		course.MentorID,
		course.Title,
		course.Slug,
		course.Description,
		course.IsPublished,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A course with this title already exists")
		}
		return fmt.Errorf("postgres: failed to create course: %w", err)
	}

	return nil
}

/*
FindByID retrieves a course record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Course: Hydrated course entity
  - error: apperr.NotFound or execution errors
*/
func (repository *courseRepository) FindByID(context context.Context, id string) (*Course, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.LearnCourse.ID,
		schema.LearnCourse.MentorID,
		schema.LearnCourse.Title,
		schema.LearnCourse.Slug,
		schema.LearnCourse.Description,
		schema.LearnCourse.IsPublished,
		schema.LearnCourse.CreatedAt,
		schema.LearnCourse.UpdatedAt,
		schema.LearnCourse.Table,
		schema.LearnCourse.ID,
		schema.LearnCourse.DeletedAt,
	)

	course := &Course{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&course.ID,
		&course.MentorID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.IsPublished,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course")
		}
		return nil, fmt.Errorf("postgres: failed to find course by id: %w", err)
	}

	return course, nil
}

/*
List retrieves published courses with pagination metadata.

Description: Uses a window function to compute the total count in the same
round-trip as the page itself.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Course: Page of courses, newest first
  - int: Total published course count
  - error: Execution errors
*/
func (repository *courseRepository) List(context context.Context, limit, offset int) ([]*Course, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = TRUE AND %s IS NULL
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.LearnCourse.ID,
		schema.LearnCourse.MentorID,
		schema.LearnCourse.Title,
		schema.LearnCourse.Slug,
		schema.LearnCourse.Description,
		schema.LearnCourse.IsPublished,
		schema.LearnCourse.CreatedAt,
		schema.LearnCourse.UpdatedAt,
		schema.LearnCourse.Table,
		schema.LearnCourse.IsPublished,
		schema.LearnCourse.DeletedAt,
		schema.LearnCourse.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	var totalCount int

	for rows.Next() {
		var course Course
		err := rows.Scan(
			&course.ID,
			&course.MentorID,
			&course.Title,
			&course.Slug,
			&course.Description,
			&course.IsPublished,
			&course.CreatedAt,
			&course.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan course: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, totalCount, nil
}

/*
Update overwrites the mutable fields of a course.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: apperr.NotFound if targeting a missing row, or execution errors
*/
func (repository *courseRepository) Update(context context.Context, course *Course) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.LearnCourse.Table,
		schema.LearnCourse.Title,
		schema.LearnCourse.Description,
		schema.LearnCourse.IsPublished,
		schema.LearnCourse.UpdatedAt,
		schema.LearnCourse.ID,
		schema.LearnCourse.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query,
		course.ID,
		course.Title,
		course.Description,
		course.IsPublished,
	)

	if err != nil {
		return fmt.Errorf("postgres: failed to update course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	return nil
}

/*
SoftDelete hides a course record.

Description: Retention-friendly deletion. Completion and certificate history
referencing the course survives.
*/
func (repository *courseRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.LearnCourse.Table,
		schema.LearnCourse.DeletedAt,
		schema.LearnCourse.ID,
		schema.LearnCourse.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	return nil
}

// # Chapter Repository Implementation

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

/*
Create persists a new chapter record into the learn.chapter table.

Description: The (courseid, position) unique constraint rejects a second
chapter at the same position, which keeps the chapter ordering total.

Parameters:
  - context: context.Context
  - chapter: *Chapter

Returns:
  - error: apperr.Conflict on position collision, or execution errors
*/
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.LearnChapter.Table,
		schema.LearnChapter.ID,
		schema.LearnChapter.CourseID,
		schema.LearnChapter.Position,
		schema.LearnChapter.Title,
		schema.LearnChapter.Body,
		schema.LearnChapter.CreatedAt,
		schema.LearnChapter.UpdatedAt,
	)

	now := time.Now()
	chapter.CreatedAt = now
	chapter.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.CourseID,
		chapter.Position,
		chapter.Title,
		chapter.Body,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(fmt.Sprintf("Position %d is already taken in this course", chapter.Position))
		}
		return fmt.Errorf("postgres: failed to create chapter: %w", err)
	}

	return nil
}

/*
FindByID retrieves a chapter record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Chapter: Hydrated chapter entity
  - error: apperr.NotFound or execution errors
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.LearnChapter.ID,
		schema.LearnChapter.CourseID,
		schema.LearnChapter.Position,
		schema.LearnChapter.Title,
		schema.LearnChapter.Body,
		schema.LearnChapter.CreatedAt,
		schema.LearnChapter.UpdatedAt,
		schema.LearnChapter.Table,
		schema.LearnChapter.ID,
	)

	chapter := &Chapter{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&chapter.ID,
		&chapter.CourseID,
		&chapter.Position,
		&chapter.Title,
		&chapter.Body,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by id: %w", err)
	}

	return chapter, nil
}

/*
ListByCourse retrieves the full ordered chapter list of a course.

Description: Ascending position order. Progress checks depend on this
ordering, so it is fixed here rather than left to callers.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - []*Chapter: Chapters ordered by position
  - error: Execution errors
*/
func (repository *chapterRepository) ListByCourse(context context.Context, courseID string) ([]*Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.LearnChapter.ID,
		schema.LearnChapter.CourseID,
		schema.LearnChapter.Position,
		schema.LearnChapter.Title,
		schema.LearnChapter.Body,
		schema.LearnChapter.CreatedAt,
		schema.LearnChapter.UpdatedAt,
		schema.LearnChapter.Table,
		schema.LearnChapter.CourseID,
		schema.LearnChapter.Position,
	)

	rows, err := repository.pool.Query(context, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.CourseID,
			&chapter.Position,
			&chapter.Title,
			&chapter.Body,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, nil
}
