// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package certificate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edura-app/edura/internal/platform/middleware"
	requestutil "github.com/edura-app/edura/internal/platform/request"
	"github.com/edura-app/edura/internal/platform/respond"
)

// ArtifactResolver maps stored artifact locations to servable file paths.
type ArtifactResolver interface {
	Resolve(location string) (string, error)
}

// Handler implements certification-related HTTP endpoints.
type Handler struct {
	certificateService *Service
	artifacts          ArtifactResolver
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, artifacts ArtifactResolver) *Handler {
	return &Handler{certificateService: service, artifacts: artifacts}
}

// RegisterCourseRoutes attaches certification endpoints to the shared
// /courses router.
//
// # Endpoints
//   - GET  /{courseID}/certificate/eligibility : Eligibility verdict.
//   - POST /{courseID}/certificate             : Issues the certificate.
func (handler *Handler) RegisterCourseRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/{courseID}/certificate/eligibility", handler.eligibility)
		r.Post("/{courseID}/certificate", handler.issue)
	})
}

// Routes returns a [chi.Router] for the /certificates prefix.
//
// # Endpoints
//   - GET /                          : Lists the caller's certificates.
//   - GET /{certificateID}/download  : Streams the artifact.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.listOwn)
	router.Get("/{certificateID}/download", handler.download)
	return router
}

/*
Eligibility reports whether the caller can be certified for a course.

GET /api/v1/courses/{courseID}/certificate/eligibility

Response:
  - 200: Eligibility verdict with the underlying counts
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) eligibility(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	eligibility, err := handler.certificateService.CheckEligibility(request.Context(), userID, requestutil.Param(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, eligibility)
}

/*
Issue mints the caller's certificate for a completed course.

POST /api/v1/courses/{courseID}/certificate

Response:
  - 201: Certificate: Newly issued certificate
  - 404: ErrNotFound: Unknown course
  - 409: AlreadyIssued: Existing certificate carried in the error payload
  - 422: NotEligible: Course not fully completed
*/
func (handler *Handler) issue(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	certificate, err := handler.certificateService.Issue(request.Context(), userID, requestutil.Param(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, certificate)
}

/*
ListOwn returns the caller's certificates.

GET /api/v1/certificates

Response:
  - 200: []Certificate newest first
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	certificates, err := handler.certificateService.ListForStudent(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, certificates)
}

/*
Download streams the artifact of one of the caller's certificates.

GET /api/v1/certificates/{certificateID}/download

Description: Ownership mismatches and unknown IDs are both 404. The handler
never distinguishes the two cases.

Response:
  - 200: text/html artifact
  - 404: ErrNotFound: Missing certificate, foreign certificate, or lost artifact
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	certificate, err := handler.certificateService.FetchForDownload(request.Context(), userID, requestutil.Param(request, "certificateID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.artifacts.Resolve(certificate.ArtifactLocation)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Disposition", `attachment; filename="certificate.html"`)
	http.ServeFile(writer, request, path)
}
