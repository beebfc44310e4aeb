// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package schema

// LearnCertificateTable represents the 'learn.certificate' table
type LearnCertificateTable struct {
	Table            string
	ID               string
	StudentID        string
	CourseID         string
	ArtifactLocation string
	IssuedAt         string
}

// LearnCertificate is the schema definition for learn.certificate.
//
// (studentid, courseid) is unique: at most one certificate per student per
// course, enforced by the database so concurrent issue requests cannot mint two.
var LearnCertificate = LearnCertificateTable{
	Table:            "learn.certificate",
	ID:               "id",
	StudentID:        "studentid",
	CourseID:         "courseid",
	ArtifactLocation: "artifactlocation",
	IssuedAt:         "issuedat",
}
