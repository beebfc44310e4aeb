// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package schema

// LearnCompletionTable represents the 'learn.completion' table
type LearnCompletionTable struct {
	Table       string
	ID          string
	StudentID   string
	CourseID    string
	ChapterID   string
	CompletedAt string
}

// LearnCompletion is the schema definition for learn.completion.
//
// (studentid, chapterid) is unique. The constraint, not the application-level
// existence check, is the authoritative guard against duplicate completions
// under concurrent requests.
var LearnCompletion = LearnCompletionTable{
	Table:       "learn.completion",
	ID:          "id",
	StudentID:   "studentid",
	CourseID:    "courseid",
	ChapterID:   "chapterid",
	CompletedAt: "completedat",
}

// Columns returns the insertable column list in declaration order.
func (t LearnCompletionTable) Columns() []string {
	return []string{t.ID, t.StudentID, t.CourseID, t.ChapterID, t.CompletedAt}
}
