package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	"github.com/sageleaf-labs/canvas-cli/internal/cmdutil"
	"github.com/sageleaf-labs/canvas-cli/internal/table"
	"github.com/sageleaf-labs/canvas-cli/internal/ui"
)

func newCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course", "c"},
		Short:   "Browse Canvas courses",
		Long:    `List and inspect the courses you are enrolled in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// When invoked without subcommand, default to list
			listCmd := newCoursesListCmd()
			listCmd.SetContext(cmd.Context())
			return listCmd.RunE(listCmd, args)
		},
	}

	cmd.AddCommand(newCoursesListCmd())
	cmd.AddCommand(newCoursesGetCmd())

	return cmd
}

func newCoursesListCmd() *cobra.Command {
	var enrollmentState string
	var all bool
	var perPage int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your courses",
		Long: `List the courses you are enrolled in.

By default only courses with an active enrollment are shown.
Use --state to include invited or completed enrollments, and --all to
follow pagination to the end.

Example:
  cnv courses list
  cnv courses list --state completed
  cnv courses list --all -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			opts := &canvas.ListCoursesOptions{
				EnrollmentState: enrollmentState,
				Include:         []string{"total_students", "term"},
			}
			opts.PerPage = perPage

			courses, page, err := client.ListCourses(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list courses: %w", err)
			}

			if all {
				for page.HasNext() {
					next := page.NextPage()
					if next == 0 {
						break
					}
					opts.Page = next
					var more []*canvas.Course
					more, page, err = client.ListCourses(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to list courses: %w", err)
					}
					courses = append(courses, more...)
				}
			}

			courses = applyListLimit(ctx, courses)
			return printList(ctx, courses, courseTableView(courses, ui.FromContext(ctx)))
		},
	}

	cmd.Flags().StringVar(&enrollmentState, "state", "active", "Enrollment state filter: active|invited_or_pending|completed")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch all pages of results")
	cmd.Flags().IntVar(&perPage, "page-size", 0, "Number of items per page (max 100)")

	return cmd
}

func newCoursesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <course>",
		Aliases: []string{"g"},
		Short:   "Get a course by ID or URL",
		Long: `Retrieve a single course.

Accepts a numeric course ID or a Canvas web URL pasted from the
browser.

Example:
  cnv courses get 101
  cnv courses get https://canvas.example.edu/courses/101`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := cmdutil.ParseCourseRef(args[0])
			if err != nil {
				return err
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			course, err := client.GetCourse(ctx, courseID, "total_students", "term")
			if err != nil {
				return fmt.Errorf("failed to get course: %w", err)
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, course)
		},
	}
}

// courseTableView declares the adaptive table for course lists: the
// code column yields to the name column under pressure, and the state
// column colors active enrollments.
func courseTableView(courses []*canvas.Course, u *ui.UI) tableView {
	cols := []table.Column{
		{Key: "id", Header: "ID", Width: 7, Align: table.AlignRight},
		{Key: "code", Header: "CODE", Flex: 1, MinWidth: 6, MaxWidth: 14},
		{Key: "name", Header: "NAME", Flex: 3, MinWidth: 12},
		{Key: "state", Header: "STATE", Width: 11, Color: func(value string, row table.Row) string {
			switch row.Get("state") {
			case "available":
				return u.Green(value)
			case "completed":
				return u.Faint(value)
			default:
				return value
			}
		}},
	}

	rows := make([]table.Row, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, table.Row{
			"id":    c.ID,
			"code":  c.CourseCode,
			"name":  c.Name,
			"state": c.WorkflowState,
		})
	}
	return tableView{cols: cols, rows: rows}
}
