package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	"github.com/sageleaf-labs/canvas-cli/internal/cmdutil"
	"github.com/sageleaf-labs/canvas-cli/internal/table"
	"github.com/sageleaf-labs/canvas-cli/internal/ui"
)

func newGradesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "grades [course]",
		Aliases: []string{"grade", "gr"},
		Short:   "Show your grades",
		Long: `Show your grades.

Without arguments, shows the current grade for every course you are
enrolled in. With a course ID or URL, shows your graded submissions
for that course's assignments.

Example:
  cnv grades
  cnv grades 101
  cnv grades 101 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runGradeSummary(cmd, all)
			}

			courseID, err := cmdutil.ParseCourseRef(args[0])
			if err != nil {
				return err
			}
			return runCourseGrades(cmd, courseID, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Fetch all pages of results")

	cmd.AddCommand(newGradesCommentCmd())

	return cmd
}

func newGradesCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <course> <assignment> <text>",
		Short: "Comment on your submission",
		Long: `Attach a text comment to your submission for an assignment.

The text accepts @file to read the comment from a file, or - to read
it from stdin.

Example:
  cnv grades comment 101 7 "Resubmitted with the fixed bibliography."`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseRef(ctx, args[0])
			if err != nil {
				return err
			}
			assignmentID, err := cmdutil.ParseAssignmentRef(args[1])
			if err != nil {
				return err
			}
			text, err := cmdutil.ResolveValueInput(args[2])
			if err != nil {
				return err
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			submission, err := client.CommentOnSubmission(ctx, courseID, assignmentID, text)
			if err != nil {
				return fmt.Errorf("failed to comment on submission: %w", err)
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, submission)
		},
	}
}

// runGradeSummary prints one line per enrollment with the computed
// course grade. Course names come from a second lookup; enrollments
// only carry course IDs.
func runGradeSummary(cmd *cobra.Command, all bool) error {
	ctx := cmd.Context()
	client, err := clientFromContext(ctx)
	if err != nil {
		return err
	}

	opts := &canvas.ListEnrollmentsOptions{State: []string{"active"}}
	enrollments, page, err := client.ListEnrollments(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list enrollments: %w", err)
	}
	if all {
		for page.HasNext() {
			next := page.NextPage()
			if next == 0 {
				break
			}
			opts.Page = next
			var more []*canvas.Enrollment
			more, page, err = client.ListEnrollments(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list enrollments: %w", err)
			}
			enrollments = append(enrollments, more...)
		}
	}

	// Best-effort course name lookup; the summary still renders with
	// bare IDs when the course list is unavailable.
	names := make(map[int64]string)
	if courses, _, err := client.ListCourses(ctx, nil); err == nil {
		for _, c := range courses {
			names[c.ID] = c.Name
		}
	}

	enrollments = applyListLimit(ctx, enrollments)
	return printList(ctx, enrollments, gradeSummaryTableView(enrollments, names, ui.FromContext(ctx)))
}

// runCourseGrades prints the user's submissions for a course, one line
// per assignment.
func runCourseGrades(cmd *cobra.Command, courseID int64, all bool) error {
	ctx := cmd.Context()
	client, err := clientFromContext(ctx)
	if err != nil {
		return err
	}

	opts := &canvas.ListSubmissionsOptions{Include: []string{"assignment"}}
	submissions, page, err := client.ListSubmissions(ctx, courseID, opts)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if all {
		for page.HasNext() {
			next := page.NextPage()
			if next == 0 {
				break
			}
			opts.Page = next
			var more []*canvas.Submission
			more, page, err = client.ListSubmissions(ctx, courseID, opts)
			if err != nil {
				return fmt.Errorf("failed to list submissions: %w", err)
			}
			submissions = append(submissions, more...)
		}
	}

	submissions = applyListLimit(ctx, submissions)
	return printList(ctx, submissions, submissionTableView(submissions, ui.FromContext(ctx)))
}

func gradeSummaryTableView(enrollments []*canvas.Enrollment, names map[int64]string, u *ui.UI) tableView {
	cols := []table.Column{
		{Key: "course_id", Header: "ID", Width: 7, Align: table.AlignRight},
		{Key: "course", Header: "COURSE", Flex: 3, MinWidth: 12},
		{Key: "score", Header: "SCORE", Width: 6, Align: table.AlignRight, Color: scoreColor(u)},
		{Key: "grade", Header: "GRADE", Width: 5},
	}

	rows := make([]table.Row, 0, len(enrollments))
	for _, e := range enrollments {
		name := names[e.CourseID]
		if name == "" {
			name = fmt.Sprintf("course %d", e.CourseID)
		}
		row := table.Row{
			"course_id": e.CourseID,
			"course":    name,
		}
		if e.Grades != nil {
			if e.Grades.CurrentScore != nil {
				row["score"] = fmt.Sprintf("%.1f", *e.Grades.CurrentScore)
				row["score_value"] = *e.Grades.CurrentScore
			}
			row["grade"] = e.Grades.CurrentGrade
		}
		rows = append(rows, row)
	}
	return tableView{cols: cols, rows: rows}
}

func submissionTableView(submissions []*canvas.Submission, u *ui.UI) tableView {
	cols := []table.Column{
		{Key: "assignment", Header: "ASSIGNMENT", Flex: 3, MinWidth: 12},
		{Key: "score", Header: "SCORE", Width: 9, Align: table.AlignRight, Color: scoreColor(u)},
		{Key: "grade", Header: "GRADE", Width: 5},
		{Key: "status", Header: "STATUS", Width: 11, Color: func(value string, row table.Row) string {
			switch row.Get("status") {
			case "missing", "late":
				return u.Red(value)
			case "graded":
				return u.Green(value)
			default:
				return value
			}
		}},
	}

	rows := make([]table.Row, 0, len(submissions))
	for _, s := range submissions {
		row := table.Row{
			"grade":  s.Grade,
			"status": submissionStatus(s),
		}
		if s.Assignment != nil {
			row["assignment"] = s.Assignment.Name
			if s.Score != nil {
				row["score"] = fmt.Sprintf("%.4g/%.4g", *s.Score, s.Assignment.PointsPossible)
				if s.Assignment.PointsPossible > 0 {
					row["score_value"] = *s.Score / s.Assignment.PointsPossible * 100
				}
			}
		} else {
			row["assignment"] = fmt.Sprintf("assignment %d", s.AssignmentID)
			if s.Score != nil {
				row["score"] = fmt.Sprintf("%.4g", *s.Score)
			}
		}
		rows = append(rows, row)
	}
	return tableView{cols: cols, rows: rows}
}

// submissionStatus reduces a submission to one display word.
func submissionStatus(s *canvas.Submission) string {
	switch {
	case s.Excused:
		return "excused"
	case s.Missing:
		return "missing"
	case s.Late:
		return "late"
	default:
		return s.WorkflowState
	}
}

// scoreColor colors percentage scores: green from 90, yellow from 70,
// red below. Rows without a numeric score pass through unstyled.
func scoreColor(u *ui.UI) func(string, table.Row) string {
	return func(value string, row table.Row) string {
		score, ok := row["score_value"].(float64)
		if !ok {
			return u.Faint(value)
		}
		switch {
		case score >= 90:
			return u.Green(value)
		case score >= 70:
			return u.Yellow(value)
		default:
			return u.Red(value)
		}
	}
}
