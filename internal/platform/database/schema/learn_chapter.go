// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package schema

// LearnChapterTable represents the 'learn.chapter' table
type LearnChapterTable struct {
	Table     string
	ID        string
	CourseID  string
	Position  string
	Title     string
	Body      string
	CreatedAt string
	UpdatedAt string
}

// LearnChapter is the schema definition for learn.chapter.
//
// (courseid, position) is unique: no two chapters of the same course share a
// position, which is what makes the sequential-completion ordering total.
var LearnChapter = LearnChapterTable{
	Table:     "learn.chapter",
	ID:        "id",
	CourseID:  "courseid",
	Position:  "position",
	Title:     "title",
	Body:      "body",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
