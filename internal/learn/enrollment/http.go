// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edura-app/edura/internal/platform/middleware"
	requestutil "github.com/edura-app/edura/internal/platform/request"
	"github.com/edura-app/edura/internal/platform/respond"
)

// Handler implements enrollment-related HTTP endpoints.
type Handler struct {
	enrollmentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{enrollmentService: service}
}

// RegisterCourseRoutes attaches the enroll endpoint to the shared /courses router.
//
// # Endpoints
//   - POST /{courseID}/enroll : Enrolls the authenticated student.
func (handler *Handler) RegisterCourseRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Post("/{courseID}/enroll", handler.enroll)
}

// RegisterMeRoutes attaches self-service endpoints to the /me router.
//
// # Endpoints
//   - GET /enrollments : Lists the authenticated user's enrollments.
func (handler *Handler) RegisterMeRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/enrollments", handler.listOwn)
}

/*
Enroll registers the authenticated user into a course.

POST /api/v1/courses/{courseID}/enroll

Response:
  - 201: Enrollment: Created membership
  - 404: ErrNotFound: Unknown course
  - 409: ErrConflict: Already enrolled
*/
func (handler *Handler) enroll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollment, err := handler.enrollmentService.Enroll(request.Context(), userID, requestutil.Param(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, enrollment)
}

/*
ListOwn returns the authenticated user's course memberships.

GET /api/v1/me/enrollments

Response:
  - 200: []Enrollment newest first
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollments, err := handler.enrollmentService.ListForStudent(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, enrollments)
}
