// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/sec"
)

// stubOwnership answers CourseOwner with a fixed mentor ID.
type stubOwnership struct {
	owner string
}

func (s stubOwnership) CourseOwner(context.Context, string) (string, error) {
	return s.owner, nil
}

// stubEnrollments reports membership from a fixed studentID set.
type stubEnrollments struct {
	enrolled map[string]bool
}

func (s stubEnrollments) IsEnrolled(_ context.Context, studentID, _ string) (bool, error) {
	return s.enrolled[studentID], nil
}

/*
TestHandler_AuthorizeView verifies the snapshot visibility rules: a student
sees their own, an admin sees anyone's, and a mentor sees only students
enrolled in a course the mentor owns.
*/
func TestHandler_AuthorizeView(t *testing.T) {
	handler := &Handler{
		ownership:   stubOwnership{owner: "mentor-1"},
		enrollments: stubEnrollments{enrolled: map[string]bool{"student-1": true}},
	}

	tests := []struct {
		name      string
		claims    *sec.AuthClaims
		studentID string
		allowed   bool
	}{
		{
			name:      "student_views_self",
			claims:    &sec.AuthClaims{UserID: "student-1", Role: string(sec.RoleStudent)},
			studentID: "student-1",
			allowed:   true,
		},
		{
			name:      "student_views_other",
			claims:    &sec.AuthClaims{UserID: "student-2", Role: string(sec.RoleStudent)},
			studentID: "student-1",
			allowed:   false,
		},
		{
			name:      "admin_views_anyone",
			claims:    &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleAdmin)},
			studentID: "student-2",
			allowed:   true,
		},
		{
			name:      "owning_mentor_views_enrolled_student",
			claims:    &sec.AuthClaims{UserID: "mentor-1", Role: string(sec.RoleMentor)},
			studentID: "student-1",
			allowed:   true,
		},
		{
			name:      "owning_mentor_views_unenrolled_student",
			claims:    &sec.AuthClaims{UserID: "mentor-1", Role: string(sec.RoleMentor)},
			studentID: "student-2",
			allowed:   false,
		},
		{
			name:      "foreign_mentor_views_enrolled_student",
			claims:    &sec.AuthClaims{UserID: "mentor-2", Role: string(sec.RoleMentor)},
			studentID: "student-1",
			allowed:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := handler.authorizeView(context.Background(), tc.claims, "course-1", tc.studentID)

			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		})
	}
}
