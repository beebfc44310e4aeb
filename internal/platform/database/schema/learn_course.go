// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

// Package schema centralizes table and column identifiers for the learn.*
// tables so repositories never embed raw string literals in query text.
package schema

// LearnCourseTable represents the 'learn.course' table
type LearnCourseTable struct {
	Table       string
	ID          string
	MentorID    string
	Title       string
	Slug        string
	Description string
	IsPublished string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// LearnCourse is the schema definition for learn.course
var LearnCourse = LearnCourseTable{
	Table:       "learn.course",
	ID:          "id",
	MentorID:    "mentorid",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	IsPublished: "ispublished",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}
