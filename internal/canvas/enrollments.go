package canvas

import (
	"context"
	"fmt"
	"net/url"
)

// Enrollment represents a user's enrollment in a course, including the
// computed course grade.
// See: https://canvas.instructure.com/doc/api/enrollments.html
type Enrollment struct {
	ID            int64   `json:"id,omitempty"`
	CourseID      int64   `json:"course_id,omitempty"`
	UserID        int64   `json:"user_id,omitempty"`
	Type          string  `json:"type,omitempty"`
	Role          string  `json:"role,omitempty"`
	State         string  `json:"enrollment_state,omitempty"`
	Grades        *Grades `json:"grades,omitempty"`
	ComputedScore float64 `json:"computed_current_score,omitempty"`
	ComputedGrade string  `json:"computed_current_grade,omitempty"`
}

// Grades holds the current and final grade of an enrollment.
type Grades struct {
	CurrentScore *float64 `json:"current_score,omitempty"`
	CurrentGrade string   `json:"current_grade,omitempty"`
	FinalScore   *float64 `json:"final_score,omitempty"`
	FinalGrade   string   `json:"final_grade,omitempty"`
}

// ListEnrollmentsOptions contains options for listing enrollments.
type ListEnrollmentsOptions struct {
	ListOptions
	// State filters by enrollment state: active, invited, completed.
	State []string
	// Type filters by enrollment type, for example StudentEnrollment.
	Type []string
}

// ListEnrollments lists the current user's enrollments with grades.
// See: https://canvas.instructure.com/doc/api/enrollments.html#method.enrollments_api.index
func (c *Client) ListEnrollments(ctx context.Context, opts *ListEnrollmentsOptions) ([]*Enrollment, *PageResult, error) {
	query := url.Values{}
	if opts != nil {
		query = opts.ListOptions.query()
		for _, s := range opts.State {
			query.Add("state[]", s)
		}
		for _, t := range opts.Type {
			query.Add("type[]", t)
		}
	}

	var enrollments []*Enrollment
	page, err := c.doGetPage(ctx, "/users/self/enrollments", query, &enrollments)
	if err != nil {
		return nil, nil, err
	}

	return enrollments, page, nil
}

// ListCourseEnrollments lists the enrollments of one course.
// See: https://canvas.instructure.com/doc/api/enrollments.html#method.enrollments_api.index
func (c *Client) ListCourseEnrollments(ctx context.Context, courseID int64, opts *ListEnrollmentsOptions) ([]*Enrollment, *PageResult, error) {
	if courseID <= 0 {
		return nil, nil, fmt.Errorf("course ID is required")
	}

	query := url.Values{}
	if opts != nil {
		query = opts.ListOptions.query()
		for _, s := range opts.State {
			query.Add("state[]", s)
		}
		for _, t := range opts.Type {
			query.Add("type[]", t)
		}
	}

	var enrollments []*Enrollment
	path := fmt.Sprintf("/courses/%d/enrollments", courseID)
	page, err := c.doGetPage(ctx, path, query, &enrollments)
	if err != nil {
		return nil, nil, err
	}

	return enrollments, page, nil
}
