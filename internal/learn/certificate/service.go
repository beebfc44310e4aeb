// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package certificate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates certificate eligibility, issuance, and retrieval.
type Service struct {
	certificateRepo CertificateRepository
	progressReader  ProgressReader
	courses         CourseFinder
	users           UserDirectory
	renderer        Renderer
	logger          *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(
	certificateRepo CertificateRepository,
	progressReader ProgressReader,
	courses CourseFinder,
	users UserDirectory,
	renderer Renderer,
	logger *slog.Logger,
) *Service {
	return &Service{
		certificateRepo: certificateRepo,
		progressReader:  progressReader,
		courses:         courses,
		users:           users,
		renderer:        renderer,
		logger:          logger,
	}
}

// # Eligibility

/*
CheckEligibility evaluates the certification predicate for a student.

Description: Eligible means the course has at least one chapter and the
student's completion count equals the chapter count. An empty course is never
certifiable. This count equality is the only eligibility test in the system;
issuance re-runs the same predicate.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - *Eligibility: Predicate result with the underlying counts
  - error: apperr.NotFound (unknown course) or storage errors
*/
func (service *Service) CheckEligibility(context context.Context, studentID, courseID string) (*Eligibility, error) {
	snapshot, err := service.progressReader.GetSnapshot(context, studentID, courseID)
	if err != nil {
		return nil, err
	}

	return &Eligibility{
		CourseID:          courseID,
		StudentID:         studentID,
		Eligible:          snapshot.TotalChapters > 0 && snapshot.CompletedChapters == snapshot.TotalChapters,
		TotalChapters:     snapshot.TotalChapters,
		CompletedChapters: snapshot.CompletedChapters,
	}, nil
}

// # Issuance

/*
Issue mints the certificate for a completed course.

Description: Re-checks eligibility even if the client just saw an eligible
verdict, then checks for an existing certificate immediately before the
render step so the common repeat request never pays for rendering. The
unique constraint covers the remaining race: if a concurrent request wins
the insert, the existing row is fetched and returned inside AlreadyIssued.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - *Certificate: The newly issued certificate
  - error: NotEligible, AlreadyIssued (carrying the existing certificate),
    NotFound, or rendering/storage errors
*/
func (service *Service) Issue(context context.Context, studentID, courseID string) (*Certificate, error) {
	eligibility, err := service.CheckEligibility(context, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, apperr.NotEligible(eligibility.CompletedChapters, eligibility.TotalChapters)
	}

	// Cheap pre-render duplicate check. The unique constraint below is the
	// authoritative one. Only a clean NotFound may proceed to render.
	existing, err := service.certificateRepo.FindByStudentAndCourse(context, studentID, courseID)
	if err == nil {
		return nil, apperr.AlreadyIssued().WithData(existing)
	}
	if !apperr.IsCode(err, "NOT_FOUND") {
		return nil, err
	}

	course, err := service.courses.GetCourse(context, courseID)
	if err != nil {
		return nil, err
	}

	student, err := service.users.Profile(context, studentID)
	if err != nil {
		return nil, err
	}

	studentName := student.DisplayName
	if studentName == "" {
		studentName = student.Username
	}

	certificate := &Certificate{
		ID:        uuidv7.New(),
		StudentID: studentID,
		CourseID:  courseID,
		IssuedAt:  time.Now(),
	}

	location, err := service.renderer.Render(context, studentName, course.Title, certificate.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("certificate_service_render_failed: %w", err)
	}
	certificate.ArtifactLocation = location

	if err := service.certificateRepo.Create(context, certificate); err != nil {
		if apperr.IsCode(err, "CONFLICT") {
			// Lost the insert race. Hand back the winner's certificate; the
			// freshly rendered artifact is orphaned, which is harmless.
			if existing, findErr := service.certificateRepo.FindByStudentAndCourse(context, studentID, courseID); findErr == nil {
				return nil, apperr.AlreadyIssued().WithData(existing)
			}
		}
		return nil, err
	}

	service.logger.Info("certificate_issued",
		slog.String("certificate_id", certificate.ID),
		slog.String("student_id", studentID),
		slog.String("course_id", courseID),
	)

	return certificate, nil
}

// # Retrieval

/*
FetchForDownload resolves a certificate for its owner.

Description: An ownership mismatch is reported as NotFound, identically to a
missing row. Certificates are private documents; a Forbidden here would
confirm to a probing caller that the ID exists.

Parameters:
  - context: context.Context
  - studentID: string (the requesting owner)
  - certificateID: string

Returns:
  - *Certificate: The owned certificate
  - error: apperr.NotFound for missing rows AND foreign ownership
*/
func (service *Service) FetchForDownload(context context.Context, studentID, certificateID string) (*Certificate, error) {
	certificate, err := service.certificateRepo.FindByID(context, certificateID)
	if err != nil {
		return nil, err
	}

	if certificate.StudentID != studentID {
		return nil, apperr.NotFound("Certificate")
	}

	return certificate, nil
}

// ListForStudent returns all certificates of a student, newest first.
func (service *Service) ListForStudent(context context.Context, studentID string) ([]*Certificate, error) {
	return service.certificateRepo.ListByStudent(context, studentID)
}
