// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package schema

// LearnEnrollmentTable represents the 'learn.enrollment' table
type LearnEnrollmentTable struct {
	Table      string
	ID         string
	StudentID  string
	CourseID   string
	EnrolledAt string
}

// LearnEnrollment is the schema definition for learn.enrollment.
//
// (studentid, courseid) is unique: a student enrolls in a course at most once.
var LearnEnrollment = LearnEnrollmentTable{
	Table:      "learn.enrollment",
	ID:         "id",
	StudentID:  "studentid",
	CourseID:   "courseid",
	EnrolledAt: "enrolledat",
}
