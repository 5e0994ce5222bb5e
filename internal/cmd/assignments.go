package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	"github.com/sageleaf-labs/canvas-cli/internal/cmdutil"
	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
	"github.com/sageleaf-labs/canvas-cli/internal/htmltext"
	"github.com/sageleaf-labs/canvas-cli/internal/table"
	"github.com/sageleaf-labs/canvas-cli/internal/ui"
)

func newAssignmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignments",
		Aliases: []string{"assignment", "a"},
		Short:   "Browse course assignments",
		Long:    `List and inspect the assignments of a course.`,
	}

	cmd.AddCommand(newAssignmentsListCmd())
	cmd.AddCommand(newAssignmentsGetCmd())
	cmd.AddCommand(newAssignmentsSubmitCmd())

	return cmd
}

func newAssignmentsListCmd() *cobra.Command {
	var bucket string
	var search string
	var orderBy string
	var all bool
	var perPage int

	cmd := &cobra.Command{
		Use:     "list <course>",
		Aliases: []string{"ls"},
		Short:   "List assignments of a course",
		Long: `List the assignments of a course.

The course may be given as a numeric ID or a Canvas web URL. Use
--bucket to filter by due-date bucket (upcoming, overdue, past,
undated, unsubmitted) and --search to match assignment names.

Example:
  cnv assignments list 101
  cnv assignments list 101 --bucket upcoming
  cnv assignments list 101 --search quiz -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseRef := ""
			if len(args) > 0 {
				courseRef = args[0]
			}
			courseID, err := resolveCourseRef(ctx, courseRef)
			if err != nil {
				return err
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			opts := &canvas.ListAssignmentsOptions{
				Bucket:     bucket,
				SearchTerm: search,
				OrderBy:    orderBy,
			}
			opts.PerPage = perPage

			assignments, page, err := client.ListAssignments(ctx, courseID, opts)
			if err != nil {
				return fmt.Errorf("failed to list assignments: %w", err)
			}

			if all {
				for page.HasNext() {
					next := page.NextPage()
					if next == 0 {
						break
					}
					opts.Page = next
					var more []*canvas.Assignment
					more, page, err = client.ListAssignments(ctx, courseID, opts)
					if err != nil {
						return fmt.Errorf("failed to list assignments: %w", err)
					}
					assignments = append(assignments, more...)
				}
			}

			assignments = applyListLimit(ctx, assignments)
			return printList(ctx, assignments, assignmentTableView(assignments, ui.FromContext(ctx)))
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Due-date bucket: past|overdue|undated|ungraded|unsubmitted|upcoming|future")
	cmd.Flags().StringVar(&search, "search", "", "Only assignments whose name contains the term")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "Sort order: position|name|due_at")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch all pages of results")
	cmd.Flags().IntVar(&perPage, "page-size", 0, "Number of items per page (max 100)")

	return cmd
}

func newAssignmentsGetCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "get <course> <assignment>",
		Aliases: []string{"g"},
		Short:   "Get an assignment",
		Long: `Retrieve a single assignment.

Both arguments accept numeric IDs or Canvas web URLs. When a full
assignment URL is given as the first argument, the second may be
omitted.

Example:
  cnv assignments get 101 7
  cnv assignments get https://canvas.example.edu/courses/101/assignments/7`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseRef(ctx, args[0])
			if err != nil {
				return err
			}

			assignmentRef := args[0]
			if len(args) == 2 {
				assignmentRef = args[1]
			}
			assignmentID, err := cmdutil.ParseAssignmentRef(assignmentRef)
			if err != nil {
				return err
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			assignment, err := client.GetAssignment(ctx, courseID, assignmentID)
			if err != nil {
				return fmt.Errorf("failed to get assignment: %w", err)
			}

			if plain {
				assignment.Description = htmltext.Flatten(assignment.Description)
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, assignment)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Flatten the HTML description to plain text")

	return cmd
}

func newAssignmentsSubmitCmd() *cobra.Command {
	var submitURL string
	var text string
	var comment string

	cmd := &cobra.Command{
		Use:   "submit <course> <assignment>",
		Short: "Submit work for an assignment",
		Long: `Hand in work for an assignment.

Exactly one of --url (a link submission) or --text (a text-entry
submission) is required. --text accepts @file to read the content from
a file, or - to read it from stdin.

Example:
  cnv assignments submit 101 7 --url https://github.com/me/project
  cnv assignments submit 101 7 --text @essay.md
  cat essay.md | cnv assignments submit 101 7 --text -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseRef(ctx, args[0])
			if err != nil {
				return err
			}
			assignmentRef := args[0]
			if len(args) == 2 {
				assignmentRef = args[1]
			}
			assignmentID, err := cmdutil.ParseAssignmentRef(assignmentRef)
			if err != nil {
				return err
			}

			opts := &canvas.SubmitAssignmentOptions{Comment: comment}
			switch {
			case submitURL != "" && text != "":
				return clierrors.NewUserError(
					"--url and --text are mutually exclusive",
					"Pass exactly one of --url or --text",
				)
			case submitURL != "":
				opts.Type = "online_url"
				opts.URL = submitURL
			case text != "":
				body, err := cmdutil.ResolveValueInput(text)
				if err != nil {
					return err
				}
				opts.Type = "online_text_entry"
				opts.Body = body
			default:
				return clierrors.NewUserError(
					"nothing to submit",
					"Pass --url <link> or --text <content>",
				)
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			submission, err := client.SubmitAssignment(ctx, courseID, assignmentID, opts)
			if err != nil {
				return fmt.Errorf("failed to submit assignment: %w", err)
			}

			printer := printerForContext(ctx)
			return printer.Print(ctx, submission)
		},
	}

	cmd.Flags().StringVar(&submitURL, "url", "", "Submit a link (online_url submission)")
	cmd.Flags().StringVar(&text, "text", "", "Submit text content (online_text_entry); @file and - are supported")
	cmd.Flags().StringVar(&comment, "comment", "", "Attach a text comment to the submission")

	return cmd
}

// assignmentTableView declares the adaptive table for assignment
// lists. Due dates color by urgency: overdue red, due within 48 hours
// yellow.
func assignmentTableView(assignments []*canvas.Assignment, u *ui.UI) tableView {
	now := time.Now()

	cols := []table.Column{
		{Key: "id", Header: "ID", Width: 7, Align: table.AlignRight},
		{Key: "name", Header: "NAME", Flex: 3, MinWidth: 12},
		{Key: "due", Header: "DUE", Width: 16, Color: func(value string, row table.Row) string {
			due, ok := row["due_at"].(time.Time)
			if !ok {
				return u.Faint(value)
			}
			switch {
			case due.Before(now):
				return u.Red(value)
			case due.Before(now.Add(48 * time.Hour)):
				return u.Yellow(value)
			default:
				return value
			}
		}},
		{Key: "points", Header: "PTS", Width: 6, Align: table.AlignRight},
	}

	rows := make([]table.Row, 0, len(assignments))
	for _, a := range assignments {
		row := table.Row{
			"id":     a.ID,
			"name":   a.Name,
			"points": a.PointsPossible,
		}
		if a.DueAt != nil {
			row["due"] = a.DueAt.Format("2006-01-02 15:04")
			row["due_at"] = *a.DueAt
		} else {
			row["due"] = "no due date"
		}
		rows = append(rows, row)
	}
	return tableView{cols: cols, rows: rows}
}
