// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package progress

import (
	"context"
	"log/slog"
	"math"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates sequential completion tracking.
//
// The service is authorization-agnostic: it trusts the studentID it is given.
// Deciding who may act on whose behalf is the handler layer's job.
type Service struct {
	completionRepo CompletionRepository
	chapters       ChapterCatalog
	enrollments    EnrollmentChecker
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(
	completionRepo CompletionRepository,
	chapters ChapterCatalog,
	enrollments EnrollmentChecker,
	logger *slog.Logger,
) *Service {
	return &Service{
		completionRepo: completionRepo,
		chapters:       chapters,
		enrollments:    enrollments,
		logger:         logger,
	}
}

// # Completion

/*
MarkComplete records that a student finished a chapter.

Description: Runs the precondition checks in a fixed order so a request
failing several of them always reports the same rejection:

 1. The chapter must exist within the course (NotFound).
 2. The student must be enrolled (Forbidden).
 3. Every chapter with a lower position must already be complete
    (PrerequisiteNotMet, naming the first unmet chapter).
 4. The chapter must not already be complete (AlreadyCompleted).

Completing the final chapter does not issue a certificate; certification is a
separate, explicit request.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string
  - chapterID: string

Returns:
  - *CompletionRecord: The persisted record
  - error: One of the ordered rejections above, or storage errors
*/
func (service *Service) MarkComplete(context context.Context, studentID, courseID, chapterID string) (*CompletionRecord, error) {

	// 1. Resolve the chapter within the course.
	chapter, err := service.chapters.FindChapter(context, courseID, chapterID)
	if err != nil {
		return nil, err
	}

	// 2. Membership check.
	enrolled, err := service.enrollments.IsEnrolled(context, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.Forbidden("Student is not enrolled in this course")
	}

	// 3. Sequential-order check against the full chapter list.
	completed, err := service.completedSet(context, studentID, courseID)
	if err != nil {
		return nil, err
	}

	all, err := service.chapters.ListChapters(context, courseID)
	if err != nil {
		return nil, err
	}

	for _, earlier := range all {
		if earlier.Position >= chapter.Position {
			break
		}
		if _, done := completed[earlier.ID]; !done {
			// The list is position-ordered, so this is the FIRST unmet chapter.
			return nil, apperr.PrerequisiteNotMet(earlier.Title, earlier.Position)
		}
	}

	// 4. Repeat check.
	if _, done := completed[chapter.ID]; done {
		return nil, apperr.AlreadyCompleted(chapter.Title)
	}

	record := &CompletionRecord{
		ID:        uuidv7.New(),
		StudentID: studentID,
		CourseID:  courseID,
		ChapterID: chapter.ID,
	}

	if err := service.completionRepo.Create(context, record); err != nil {
		// A concurrent duplicate loses the insert race; same outcome as
		// arriving after the winner.
		if apperr.IsCode(err, "CONFLICT") {
			return nil, apperr.AlreadyCompleted(chapter.Title)
		}
		return nil, err
	}

	service.logger.Info("chapter_completed",
		slog.String("student_id", studentID),
		slog.String("course_id", courseID),
		slog.String("chapter_id", chapter.ID),
		slog.Int("position", chapter.Position),
	)

	return record, nil
}

// # Snapshot

/*
GetSnapshot computes a student's current standing in a course.

Description: completionPercentage = round(100 * completed / total), reported
as an integer. A course with no chapters yields the zero snapshot, never a
division by zero.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - *Snapshot: Derived progress view
  - error: apperr.NotFound (unknown course) or storage errors
*/
func (service *Service) GetSnapshot(context context.Context, studentID, courseID string) (*Snapshot, error) {
	all, err := service.chapters.ListChapters(context, courseID)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		CourseID:      courseID,
		StudentID:     studentID,
		TotalChapters: len(all),
	}

	if len(all) == 0 {
		return snapshot, nil
	}

	completedCount, err := service.completionRepo.CountByCourse(context, studentID, courseID)
	if err != nil {
		return nil, err
	}

	snapshot.CompletedChapters = completedCount
	snapshot.CompletionPercentage = int(math.Round(100 * float64(completedCount) / float64(len(all))))

	return snapshot, nil
}

// completedSet loads the student's completions for a course as a lookup set.
func (service *Service) completedSet(context context.Context, studentID, courseID string) (map[string]struct{}, error) {
	ids, err := service.completionRepo.ListChapterIDs(context, studentID, courseID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
