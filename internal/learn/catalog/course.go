// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

/*
Package catalog manages the course and chapter catalogue.

It owns the structural side of the learning domain: what courses exist, who
teaches them, and the ordered list of chapters that make up each course.
Progress tracking and certification build on top of this package but never
mutate it.

# Chapter Ordering

Chapters carry a 1-indexed position that is unique within their course. The
ordering is total, which is what allows the progress layer to reason about
"every earlier chapter" without ambiguity.
*/
package catalog

import "time"

// # Domain Entities

// Course represents a published unit of teaching owned by a mentor.
type Course struct {
	ID          string     `json:"id"`
	MentorID    string     `json:"mentor_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Chapter is a single ordered lesson within a course.
type Chapter struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Position  int       `json:"position"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPosition    = "position"
	FieldBody        = "body"
	FieldCourseID    = "course_id"
)
