// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

/*
Package enrollment tracks which students are enrolled in which courses.

Enrollment is the membership gate of the learning domain: progress can only be
recorded for enrolled students, so every completion request consults this
package first.

# Uniqueness

(studentid, courseid) is unique in the database. A student enrolls in a course
at most once; repeated enroll requests are rejected as Conflict.
*/
package enrollment

import "time"

// Enrollment represents a student's membership in a course.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
