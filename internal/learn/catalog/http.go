// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edura-app/edura/internal/platform/middleware"
	requestutil "github.com/edura-app/edura/internal/platform/request"
	"github.com/edura-app/edura/internal/platform/respond"
	"github.com/edura-app/edura/internal/platform/sec"
	"github.com/edura-app/edura/internal/platform/validate"
	"github.com/edura-app/edura/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements catalogue-related HTTP endpoints.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

// RegisterRoutes attaches catalogue endpoints to the shared /courses router.
//
// The router is shared with the enrollment, progress, and certificate
// handlers, which register their own patterns under /{courseID}.
//
// # Endpoints
//   - GET  /                     : Public course listing.
//   - POST /                     : Creates a course (mentor or admin).
//   - GET  /{courseID}           : Course detail.
//   - PUT    /{courseID}           : Updates a course (course owner or admin).
//   - DELETE /{courseID}           : Soft-deletes a course (course owner or admin).
//   - GET  /{courseID}/chapters  : Ordered chapter listing.
//   - POST /{courseID}/chapters  : Appends a chapter (course owner or admin).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCourses)
	router.Get("/{courseID}", handler.getCourse)
	router.Get("/{courseID}/chapters", handler.listChapters)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(sec.RoleMentor)).Post("/", handler.createCourse)
		r.With(middleware.RequireRole(sec.RoleMentor)).Put("/{courseID}", handler.updateCourse)
		r.With(middleware.RequireRole(sec.RoleMentor)).Delete("/{courseID}", handler.deleteCourse)
		r.With(middleware.RequireRole(sec.RoleMentor)).Post("/{courseID}/chapters", handler.addChapter)
	})
}

// # Request Payloads

type createCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

type updateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

type addChapterRequest struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

/*
ListCourses returns a paginated listing of published courses.

GET /api/v1/courses

Response:
  - 200: []Course with pagination metadata
*/
func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	courses, total, err := handler.catalogService.ListCourses(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetCourse returns a single course by ID.

GET /api/v1/courses/{courseID}

Response:
  - 200: Course
  - 404: ErrNotFound: Unknown or deleted course
*/
func (handler *Handler) getCourse(writer http.ResponseWriter, request *http.Request) {
	course, err := handler.catalogService.GetCourse(request.Context(), requestutil.Param(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
CreateCourse opens a new course owned by the authenticated mentor.

POST /api/v1/courses

Request:
  - Body: createCourseRequest (Title, Description, IsPublished)

Response:
  - 201: Course: Created course
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Caller is not a mentor or admin
  - 409: ErrConflict: Duplicate title slug
*/
func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course, err := handler.catalogService.CreateCourse(request.Context(), CreateCourseInput{
		MentorID:    userID,
		Title:       input.Title,
		Description: input.Description,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}

/*
UpdateCourse overwrites the mutable fields of a course.

PUT /api/v1/courses/{courseID}

Request:
  - Body: updateCourseRequest (Title, Description, IsPublished)

Response:
  - 200: Course: Updated course
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Caller does not own the course
  - 404: ErrNotFound: Unknown or deleted course
*/
func (handler *Handler) updateCourse(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course, err := handler.catalogService.UpdateCourse(request.Context(), UpdateCourseInput{
		CourseID:    requestutil.Param(request, "courseID"),
		Title:       input.Title,
		Description: input.Description,
		IsPublished: input.IsPublished,
		ActorID:     claims.UserID,
		ActorRole:   sec.UserRole(claims.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
DeleteCourse soft-deletes a course.

DELETE /api/v1/courses/{courseID}

Response:
  - 204: No Content: Course retired
  - 403: ErrForbidden: Caller does not own the course
  - 404: ErrNotFound: Unknown or deleted course
*/
func (handler *Handler) deleteCourse(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.catalogService.DeleteCourse(
		request.Context(),
		requestutil.Param(request, "courseID"),
		claims.UserID,
		sec.UserRole(claims.Role),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ListChapters returns the ordered chapter list of a course.

GET /api/v1/courses/{courseID}/chapters

Response:
  - 200: []Chapter ordered by ascending position
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.catalogService.ListChapters(request.Context(), requestutil.Param(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

/*
AddChapter appends a chapter to a course at a fixed position.

POST /api/v1/courses/{courseID}/chapters

Request:
  - Body: addChapterRequest (Position, Title, Body)

Response:
  - 201: Chapter: Created chapter
  - 403: ErrForbidden: Caller does not own the course
  - 404: ErrNotFound: Unknown course
  - 409: ErrConflict: Position already taken
*/
func (handler *Handler) addChapter(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	chapter, err := handler.catalogService.AddChapter(request.Context(), AddChapterInput{
		CourseID:  requestutil.Param(request, "courseID"),
		Position:  input.Position,
		Title:     input.Title,
		Body:      input.Body,
		ActorID:   claims.UserID,
		ActorRole: sec.UserRole(claims.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}
