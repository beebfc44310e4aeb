// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package certificate

import "context"

// CertificateRepository abstracts persistence for issued certificates.
//
// Certificates are insert-only. Revocation or deletion is an administrative
// concern handled outside this service.
type CertificateRepository interface {
	// Create persists a certificate. A duplicate (studentid, courseid) pair
	// surfaces as Conflict.
	Create(ctx context.Context, certificate *Certificate) error

	// FindByID retrieves a certificate by primary key.
	FindByID(ctx context.Context, id string) (*Certificate, error)

	// FindByStudentAndCourse retrieves the certificate for a student/course
	// pair, or NotFound.
	FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*Certificate, error)

	// ListByStudent returns all certificates of a student, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*Certificate, error)
}
