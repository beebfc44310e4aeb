// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package progress

import "context"

// CompletionRepository abstracts persistence for completion records.
//
// Records are insert-only. There is no update or delete: completing a chapter
// is a fact, not a state.
type CompletionRepository interface {
	// Create persists a completion record. A duplicate (studentid, chapterid)
	// pair surfaces as Conflict.
	Create(ctx context.Context, record *CompletionRecord) error

	// ListChapterIDs returns the IDs of every chapter the student has
	// completed within the course.
	ListChapterIDs(ctx context.Context, studentID, courseID string) ([]string, error)

	// CountByCourse returns the number of chapters the student has completed
	// within the course.
	CountByCourse(ctx context.Context, studentID, courseID string) (int, error)
}
