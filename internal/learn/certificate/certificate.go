// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

/*
Package certificate implements course completion certification.

A certificate is the permanent, insert-only record that a student finished
every chapter of a course. Issuance is always an explicit request; nothing in
the progress flow mints one as a side effect.

# Eligibility

The single authoritative predicate is count equality: a student is eligible
when the course has at least one chapter and their completion count equals
the chapter count. Percentage values are presentation only and never decide
eligibility.

# Idempotency

(studentid, courseid) is unique in the database. A second issue request, or
the loser of two racing ones, receives AlreadyIssued carrying the existing
certificate so clients end up with the original artifact either way.
*/
package certificate

import (
	"context"
	"time"

	"github.com/edura-app/edura/internal/learn/catalog"
	"github.com/edura-app/edura/internal/learn/progress"
	"github.com/edura-app/edura/internal/users/auth"
)

// # Domain Entities

// Certificate is the permanent record of a completed course.
type Certificate struct {
	ID               string    `json:"id"`
	StudentID        string    `json:"student_id"`
	CourseID         string    `json:"course_id"`
	ArtifactLocation string    `json:"artifact_location"`
	IssuedAt         time.Time `json:"issued_at"`
}

// Eligibility is the result of the certification predicate for one
// student/course pair.
type Eligibility struct {
	CourseID          string `json:"course_id"`
	StudentID         string `json:"student_id"`
	Eligible          bool   `json:"eligible"`
	TotalChapters     int    `json:"total_chapters"`
	CompletedChapters int    `json:"completed_chapters"`
}

// # Collaborator Contracts

// Renderer produces the downloadable certificate artifact.
//
// Render is stateless and safe to re-run: a failed issuance can retry without
// cleanup, at worst leaving an orphaned artifact behind.
type Renderer interface {
	// Render writes the artifact and returns its opaque location.
	Render(ctx context.Context, studentName, courseTitle string, issuedAt time.Time) (string, error)
}

// ProgressReader supplies the completion counts eligibility is decided on.
type ProgressReader interface {
	GetSnapshot(ctx context.Context, studentID, courseID string) (*progress.Snapshot, error)
}

// CourseFinder resolves course metadata for rendering.
type CourseFinder interface {
	GetCourse(ctx context.Context, id string) (*catalog.Course, error)
}

// UserDirectory resolves the student's display identity for rendering.
type UserDirectory interface {
	Profile(ctx context.Context, userID string) (*auth.User, error)
}
