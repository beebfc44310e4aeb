// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

/*
Package progress implements sequential chapter completion tracking.

A student works through a course chapter by chapter, in position order. A
chapter can only be marked complete when every chapter before it is already
complete, so the completion set for a student is always a prefix of the
course's chapter sequence.

# Collaborators

The package reads chapter structure from the catalogue and membership from
the enrollment domain through narrow interfaces. It owns only the completion
records themselves.

# Concurrency

The ordered precondition checks run without locks. The database unique
constraint on (studentid, chapterid) is the authoritative guard: when two
identical requests race, exactly one insert succeeds and the loser is
reported the same AlreadyCompleted rejection it would have seen arriving a
moment later.
*/
package progress

import (
	"context"
	"time"

	"github.com/edura-app/edura/internal/learn/catalog"
)

// # Domain Entities

// CompletionRecord is the immutable fact that a student finished a chapter.
type CompletionRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	CourseID    string    `json:"course_id"`
	ChapterID   string    `json:"chapter_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Snapshot is a derived, point-in-time view of a student's standing in a
// course. It is computed on demand and never stored.
type Snapshot struct {
	CourseID             string `json:"course_id"`
	StudentID            string `json:"student_id"`
	TotalChapters        int    `json:"total_chapters"`
	CompletedChapters    int    `json:"completed_chapters"`
	CompletionPercentage int    `json:"completion_percentage"`
}

// # Collaborator Contracts

// ChapterCatalog is the slice of the catalogue this package needs.
type ChapterCatalog interface {
	// FindChapter resolves a chapter within a course. A chapter belonging to
	// a different course is NotFound.
	FindChapter(ctx context.Context, courseID, chapterID string) (*catalog.Chapter, error)

	// ListChapters returns the full chapter list of a course ordered by
	// ascending position.
	ListChapters(ctx context.Context, courseID string) ([]*catalog.Chapter, error)
}

// EnrollmentChecker reports course membership.
type EnrollmentChecker interface {
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)
}
