// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/database/schema"
	"github.com/edura-app/edura/internal/platform/dberr"
)

// certificateRepository implements the [CertificateRepository] interface using pgx.
type certificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository constructs a PostgreSQL backed certificate store.
func NewCertificateRepository(pool *pgxpool.Pool) CertificateRepository {
	return &certificateRepository{pool: pool}
}

/*
Create persists a certificate record into the learn.certificate table.

Description: The (studentid, courseid) unique constraint guarantees at most
one certificate per student per course, including under concurrent issuance.

Parameters:
  - context: context.Context
  - certificate: *Certificate

Returns:
  - error: apperr.Conflict on duplicate issuance, or execution errors
*/
func (repository *certificateRepository) Create(context context.Context, certificate *Certificate) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.LearnCertificate.Table,
		schema.LearnCertificate.ID,
		schema.LearnCertificate.StudentID,
		schema.LearnCertificate.CourseID,
		schema.LearnCertificate.ArtifactLocation,
		schema.LearnCertificate.IssuedAt,
	)

	if certificate.IssuedAt.IsZero() {
		certificate.IssuedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		certificate.ID,
		certificate.StudentID,
		certificate.CourseID,
		certificate.ArtifactLocation,
		certificate.IssuedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Certificate already issued for this course")
		}
		return fmt.Errorf("postgres: failed to create certificate: %w", err)
	}

	return nil
}

/*
FindByID retrieves a certificate record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Certificate: Hydrated certificate entity
  - error: apperr.NotFound or execution errors
*/
func (repository *certificateRepository) FindByID(context context.Context, id string) (*Certificate, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.LearnCertificate.ID,
		schema.LearnCertificate.StudentID,
		schema.LearnCertificate.CourseID,
		schema.LearnCertificate.ArtifactLocation,
		schema.LearnCertificate.IssuedAt,
		schema.LearnCertificate.Table,
		schema.LearnCertificate.ID,
	)

	certificate := &Certificate{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&certificate.ID,
		&certificate.StudentID,
		&certificate.CourseID,
		&certificate.ArtifactLocation,
		&certificate.IssuedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Certificate")
		}
		return nil, fmt.Errorf("postgres: failed to find certificate by id: %w", err)
	}

	return certificate, nil
}

/*
FindByStudentAndCourse retrieves the certificate for a student/course pair.

Parameters:
  - context: context.Context
  - studentID: string
  - courseID: string

Returns:
  - *Certificate: Hydrated certificate entity
  - error: apperr.NotFound or execution errors
*/
func (repository *certificateRepository) FindByStudentAndCourse(context context.Context, studentID, courseID string) (*Certificate, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.LearnCertificate.ID,
		schema.LearnCertificate.StudentID,
		schema.LearnCertificate.CourseID,
		schema.LearnCertificate.ArtifactLocation,
		schema.LearnCertificate.IssuedAt,
		schema.LearnCertificate.Table,
		schema.LearnCertificate.StudentID,
		schema.LearnCertificate.CourseID,
	)

	certificate := &Certificate{}
	err := repository.pool.QueryRow(context, query, studentID, courseID).Scan(
		&certificate.ID,
		&certificate.StudentID,
		&certificate.CourseID,
		&certificate.ArtifactLocation,
		&certificate.IssuedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Certificate")
		}
		return nil, fmt.Errorf("postgres: failed to find certificate: %w", err)
	}

	return certificate, nil
}

/*
ListByStudent retrieves all certificates of a student, newest first.

Parameters:
  - context: context.Context
  - studentID: string

Returns:
  - []*Certificate: Certificates ordered by issuance time descending
  - error: Execution errors
*/
func (repository *certificateRepository) ListByStudent(context context.Context, studentID string) ([]*Certificate, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
	`,
		schema.LearnCertificate.ID,
		schema.LearnCertificate.StudentID,
		schema.LearnCertificate.CourseID,
		schema.LearnCertificate.ArtifactLocation,
		schema.LearnCertificate.IssuedAt,
		schema.LearnCertificate.Table,
		schema.LearnCertificate.StudentID,
		schema.LearnCertificate.IssuedAt,
	)

	rows, err := repository.pool.Query(context, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list certificates: %w", err)
	}
	defer rows.Close()

	var certificates []*Certificate
	for rows.Next() {
		var certificate Certificate
		err := rows.Scan(
			&certificate.ID,
			&certificate.StudentID,
			&certificate.CourseID,
			&certificate.ArtifactLocation,
			&certificate.IssuedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan certificate: %w", err)
		}
		certificates = append(certificates, &certificate)
	}

	return certificates, nil
}
