package canvas

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Course represents a Canvas course.
// See: https://canvas.instructure.com/doc/api/courses.html
type Course struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	CourseCode     string       `json:"course_code"`
	WorkflowState  string       `json:"workflow_state"`
	StartAt        *time.Time   `json:"start_at,omitempty"`
	EndAt          *time.Time   `json:"end_at,omitempty"`
	EnrollmentTerm int64        `json:"enrollment_term_id,omitempty"`
	TotalStudents  int          `json:"total_students,omitempty"`
	PublicSyllabus bool         `json:"public_syllabus,omitempty"`
	DefaultView    string       `json:"default_view,omitempty"`
	Enrollments    []Enrollment `json:"enrollments,omitempty"`
	Calendar       *Calendar    `json:"calendar,omitempty"`
}

// Calendar holds a course's calendar export link.
type Calendar struct {
	ICS string `json:"ics"`
}

// ListCoursesOptions contains options for listing courses.
type ListCoursesOptions struct {
	ListOptions
	// EnrollmentState filters by the caller's enrollment: active,
	// invited_or_pending, or completed.
	EnrollmentState string
	// State filters by course workflow state: unpublished, available,
	// completed, deleted.
	State []string
	// Include adds optional response fields such as total_students or term.
	Include []string
}

// ListCourses lists the courses the current user is enrolled in.
// See: https://canvas.instructure.com/doc/api/courses.html#method.courses.index
func (c *Client) ListCourses(ctx context.Context, opts *ListCoursesOptions) ([]*Course, *PageResult, error) {
	query := url.Values{}
	if opts != nil {
		query = opts.ListOptions.query()
		if opts.EnrollmentState != "" {
			query.Set("enrollment_state", opts.EnrollmentState)
		}
		for _, s := range opts.State {
			query.Add("state[]", s)
		}
		for _, inc := range opts.Include {
			query.Add("include[]", inc)
		}
	}

	var courses []*Course
	page, err := c.doGetPage(ctx, "/courses", query, &courses)
	if err != nil {
		return nil, nil, err
	}

	return courses, page, nil
}

// GetCourse retrieves a course by ID.
// See: https://canvas.instructure.com/doc/api/courses.html#method.courses.show
func (c *Client) GetCourse(ctx context.Context, courseID int64, include ...string) (*Course, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("course ID is required")
	}

	query := url.Values{}
	for _, inc := range include {
		query.Add("include[]", inc)
	}

	var course Course
	if err := c.doGet(ctx, fmt.Sprintf("/courses/%d", courseID), query, &course); err != nil {
		return nil, err
	}

	return &course, nil
}
