// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package progress

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/middleware"
	requestutil "github.com/edura-app/edura/internal/platform/request"
	"github.com/edura-app/edura/internal/platform/respond"
	"github.com/edura-app/edura/internal/platform/sec"
)

// OwnershipResolver resolves the mentor who owns a course. Used to decide
// whether a mentor may view a student's progress.
type OwnershipResolver interface {
	CourseOwner(ctx context.Context, courseID string) (string, error)
}

// Handler implements progress-related HTTP endpoints.
//
// # Authorization Contract
//
// Students act on their own progress only. Mentors may additionally read the
// progress of students enrolled in courses they own. Admins may read
// anyone's. The service below this handler is deliberately
// authorization-agnostic.
type Handler struct {
	progressService *Service
	ownership       OwnershipResolver
	enrollments     EnrollmentChecker
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, ownership OwnershipResolver, enrollments EnrollmentChecker) *Handler {
	return &Handler{progressService: service, ownership: ownership, enrollments: enrollments}
}

// RegisterRoutes attaches progress endpoints to the shared /courses router.
//
// # Endpoints
//   - POST /{courseID}/chapters/{chapterID}/complete : Marks a chapter done.
//   - GET  /{courseID}/progress                      : Own snapshot.
//   - GET  /{courseID}/students/{studentID}/progress : Snapshot of a student.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{courseID}/chapters/{chapterID}/complete", handler.markComplete)
		r.Get("/{courseID}/progress", handler.ownSnapshot)
		r.Get("/{courseID}/students/{studentID}/progress", handler.studentSnapshot)
	})
}

// completionResponse pairs the new record with the refreshed snapshot so the
// client can update its course view without a second request.
type completionResponse struct {
	Completion *CompletionRecord `json:"completion"`
	Progress   *Snapshot         `json:"progress"`
}

/*
MarkComplete records the authenticated student's completion of a chapter.

POST /api/v1/courses/{courseID}/chapters/{chapterID}/complete

Response:
  - 200: completionResponse: Record plus refreshed snapshot
  - 403: ErrForbidden: Not enrolled
  - 404: ErrNotFound: Unknown course or chapter
  - 409: AlreadyCompleted: Chapter already done
  - 422: PrerequisiteNotMet: An earlier chapter is incomplete
*/
func (handler *Handler) markComplete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID := requestutil.Param(request, "courseID")
	chapterID := requestutil.Param(request, "chapterID")

	record, err := handler.progressService.MarkComplete(request.Context(), userID, courseID, chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.progressService.GetSnapshot(request.Context(), userID, courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, completionResponse{Completion: record, Progress: snapshot})
}

/*
OwnSnapshot returns the authenticated user's standing in a course.

GET /api/v1/courses/{courseID}/progress

Response:
  - 200: Snapshot
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) ownSnapshot(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.progressService.GetSnapshot(request.Context(), userID, requestutil.Param(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshot)
}

/*
StudentSnapshot returns a named student's standing in a course.

GET /api/v1/courses/{courseID}/students/{studentID}/progress

Description: Permitted for the student themselves, the course-owning mentor
when the student is enrolled, and admins. Any other caller receives Forbidden.

Response:
  - 200: Snapshot
  - 403: ErrForbidden: Caller may not view this student's progress
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) studentSnapshot(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID := requestutil.Param(request, "courseID")
	studentID := requestutil.Param(request, "studentID")

	if err := handler.authorizeView(request.Context(), claims, courseID, studentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.progressService.GetSnapshot(request.Context(), studentID, courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshot)
}

// authorizeView applies the progress visibility rules.
func (handler *Handler) authorizeView(ctx context.Context, claims *sec.AuthClaims, courseID, studentID string) error {
	if claims.UserID == studentID {
		return nil
	}

	role := sec.UserRole(claims.Role)
	if role == sec.RoleAdmin {
		return nil
	}

	if role == sec.RoleMentor {
		owner, err := handler.ownership.CourseOwner(ctx, courseID)
		if err != nil {
			return err
		}
		if owner == claims.UserID {
			// Owning the course is not enough: mentors see the progress of
			// their enrolled students only.
			enrolled, err := handler.enrollments.IsEnrolled(ctx, studentID, courseID)
			if err != nil {
				return err
			}
			if enrolled {
				return nil
			}
		}
	}

	return apperr.Forbidden("You may not view this student's progress")
}
