// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package catalog

import (
	"context"
	"log/slog"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/sec"
	"github.com/edura-app/edura/internal/platform/validate"
	"github.com/edura-app/edura/pkg/slug"
	"github.com/edura-app/edura/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for the course catalogue.
type Service struct {
	courseRepo  CourseRepository
	chapterRepo ChapterRepository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(courseRepo CourseRepository, chapterRepo ChapterRepository, logger *slog.Logger) *Service {
	return &Service{
		courseRepo:  courseRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// # Course Operations

// CreateCourseInput holds the data required to open a new course.
type CreateCourseInput struct {
	MentorID    string
	Title       string
	Description string
	IsPublished bool
}

/*
CreateCourse validates and persists a new course owned by a mentor.

Description: Generates a URL-safe slug from the title and a time-sortable ID.

Parameters:
  - context: context.Context
  - input: CreateCourseInput

Returns:
  - *Course: Created entity
  - error: Validation, Conflict (duplicate slug), or persistence errors
*/
func (service *Service) CreateCourse(context context.Context, input CreateCourseInput) (*Course, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	course := &Course{
		ID:          uuidv7.New(),
		MentorID:    input.MentorID,
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		IsPublished: input.IsPublished,
	}

	if err := service.courseRepo.Create(context, course); err != nil {
		return nil, err
	}

	service.logger.Info("course_created",
		slog.String("course_id", course.ID),
		slog.String("mentor_id", course.MentorID),
	)

	return course, nil
}

/*
ListCourses retrieves a paginated view of published courses.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Course: Matched courses
  - int: Total course count
  - error: Storage errors
*/
func (service *Service) ListCourses(context context.Context, limit, offset int) ([]*Course, int, error) {
	return service.courseRepo.List(context, limit, offset)
}

// GetCourse retrieves a single course by its ID.
func (service *Service) GetCourse(context context.Context, id string) (*Course, error) {
	return service.courseRepo.FindByID(context, id)
}

/*
CourseOwner resolves the mentor who owns a course.

Description: Used by the handler layer to decide whether a mentor may view
another student's progress or mutate course content.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - string: Mentor ID
  - error: apperr.NotFound if the course does not exist
*/
func (service *Service) CourseOwner(context context.Context, courseID string) (string, error) {
	course, err := service.courseRepo.FindByID(context, courseID)
	if err != nil {
		return "", err
	}
	return course.MentorID, nil
}

// UpdateCourseInput holds the mutable course fields plus the caller identity.
type UpdateCourseInput struct {
	CourseID    string
	Title       string
	Description string
	IsPublished bool

	// ActorID and ActorRole identify the caller for the ownership check.
	ActorID   string
	ActorRole sec.UserRole
}

/*
UpdateCourse overwrites the mutable fields of a course.

Description: Mentors may only edit their own courses, admins any. The slug is
fixed at creation so existing course links survive a retitle.

Parameters:
  - context: context.Context
  - input: UpdateCourseInput

Returns:
  - *Course: Updated entity
  - error: NotFound, Forbidden, Validation, or persistence errors
*/
func (service *Service) UpdateCourse(context context.Context, input UpdateCourseInput) (*Course, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	course, err := service.courseRepo.FindByID(context, input.CourseID)
	if err != nil {
		return nil, err
	}

	if input.ActorRole != sec.RoleAdmin && course.MentorID != input.ActorID {
		return nil, apperr.Forbidden("Only the course owner can edit this course")
	}

	course.Title = input.Title
	course.Description = input.Description
	course.IsPublished = input.IsPublished

	if err := service.courseRepo.Update(context, course); err != nil {
		return nil, err
	}

	service.logger.Info("course_updated",
		slog.String("course_id", course.ID),
		slog.String("actor_id", input.ActorID),
	)

	return course, nil
}

/*
DeleteCourse soft-deletes a course.

Description: Mentors may only retire their own courses, admins any. The row
is hidden, not destroyed, so completion and certificate history referencing
the course survives.

Parameters:
  - context: context.Context
  - courseID: string
  - actorID: string
  - actorRole: sec.UserRole

Returns:
  - error: NotFound, Forbidden, or persistence errors
*/
func (service *Service) DeleteCourse(context context.Context, courseID, actorID string, actorRole sec.UserRole) error {
	course, err := service.courseRepo.FindByID(context, courseID)
	if err != nil {
		return err
	}

	if actorRole != sec.RoleAdmin && course.MentorID != actorID {
		return apperr.Forbidden("Only the course owner can delete this course")
	}

	if err := service.courseRepo.SoftDelete(context, courseID); err != nil {
		return err
	}

	service.logger.Info("course_deleted",
		slog.String("course_id", courseID),
		slog.String("actor_id", actorID),
	)

	return nil
}

// # Chapter Operations

// AddChapterInput holds the data required to append a chapter to a course.
type AddChapterInput struct {
	CourseID string
	Position int
	Title    string
	Body     string

	// ActorID and ActorRole identify the caller for the ownership check.
	ActorID   string
	ActorRole sec.UserRole
}

/*
AddChapter validates ownership and persists a new chapter at a fixed position.

Description: Mentors may only extend their own courses, admins any. Position
uniqueness within the course is enforced by the database constraint, so two
concurrent inserts at the same position cannot both succeed.

Parameters:
  - context: context.Context
  - input: AddChapterInput

Returns:
  - *Chapter: Created entity
  - error: NotFound, Forbidden, Validation, or Conflict errors
*/
func (service *Service) AddChapter(context context.Context, input AddChapterInput) (*Chapter, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		Positive(FieldPosition, input.Position)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	course, err := service.courseRepo.FindByID(context, input.CourseID)
	if err != nil {
		return nil, err
	}

	if input.ActorRole != sec.RoleAdmin && course.MentorID != input.ActorID {
		return nil, apperr.Forbidden("Only the course owner can add chapters")
	}

	chapter := &Chapter{
		ID:       uuidv7.New(),
		CourseID: course.ID,
		Position: input.Position,
		Title:    input.Title,
		Body:     input.Body,
	}

	if err := service.chapterRepo.Create(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_added",
		slog.String("chapter_id", chapter.ID),
		slog.String("course_id", chapter.CourseID),
		slog.Int("position", chapter.Position),
	)

	return chapter, nil
}

/*
ListChapters returns every chapter of a course ordered by ascending position.

Description: The course must exist; an unknown course yields NotFound rather
than an empty list so callers can distinguish "no chapters yet" from a bad ID.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - []*Chapter: Ordered chapters
  - error: apperr.NotFound or storage errors
*/
func (service *Service) ListChapters(context context.Context, courseID string) ([]*Chapter, error) {
	if _, err := service.courseRepo.FindByID(context, courseID); err != nil {
		return nil, err
	}
	return service.chapterRepo.ListByCourse(context, courseID)
}

// FindChapter retrieves a chapter and verifies it belongs to the given course.
//
// A chapter that exists under a different course is reported as NotFound, so
// callers cannot probe chapter IDs across course boundaries.
func (service *Service) FindChapter(context context.Context, courseID, chapterID string) (*Chapter, error) {
	chapter, err := service.chapterRepo.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.CourseID != courseID {
		return nil, apperr.NotFound("Chapter")
	}
	return chapter, nil
}
