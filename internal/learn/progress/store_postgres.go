// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/database/schema"
	"github.com/edura-app/edura/internal/platform/dberr"
)

// completionRepository implements the [CompletionRepository] interface using pgx.
type completionRepository struct {
	pool *pgxpool.Pool
}

// NewCompletionRepository constructs a PostgreSQL backed completion store.
func NewCompletionRepository(pool *pgxpool.Pool) CompletionRepository {
	return &completionRepository{pool: pool}
}

/*
Create persists a completion record into the learn.completion table.

Description: The (studentid, chapterid) unique constraint rejects the second
of two racing inserts. The record is insert-only; there is no update path.

Parameters:
  - context: context.Context
  - record: *CompletionRecord

Returns:
  - error: apperr.Conflict on duplicate completion, or execution errors
*/
func (repository *completionRepository) Create(context context.Context, record *CompletionRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.LearnCompletion.Table,
		strings.Join(schema.LearnCompletion.Columns(), ", "),
	)

	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		record.ID,
		record.StudentID,
		record.CourseID,
		record.ChapterID,
		record.CompletedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Chapter is already completed")
		}
		return fmt.Errorf("postgres: failed to create completion: %w", err)
	}

	return nil
}

/*
ListChapterIDs returns the chapter IDs a student has completed in a course.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - []string: Completed chapter IDs (unordered)
  - error: Execution errors
*/
func (repository *completionRepository) ListChapterIDs(context context.Context, studentID, courseID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.LearnCompletion.ChapterID,
		schema.LearnCompletion.Table,
		schema.LearnCompletion.StudentID,
		schema.LearnCompletion.CourseID,
	)

	rows, err := repository.pool.Query(context, query, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list completions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan completion: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

/*
CountByCourse returns the student's completion count within a course.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - int: Number of completed chapters
  - error: Execution errors
*/
func (repository *completionRepository) CountByCourse(context context.Context, studentID, courseID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.LearnCompletion.Table,
		schema.LearnCompletion.StudentID,
		schema.LearnCompletion.CourseID,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, studentID, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count completions: %w", err)
	}

	return count, nil
}
