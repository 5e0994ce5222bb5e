package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
	"github.com/sageleaf-labs/canvas-cli/internal/table"
	"github.com/sageleaf-labs/canvas-cli/internal/ui"
)

func newFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file", "f"},
		Short:   "Browse and download course files",
		Long:    `List the files of a course and download them.`,
	}

	cmd.AddCommand(newFilesListCmd())
	cmd.AddCommand(newFilesDownloadCmd())

	return cmd
}

func newFilesListCmd() *cobra.Command {
	var search string
	var sortBy string
	var order string
	var all bool
	var perPage int

	cmd := &cobra.Command{
		Use:     "list <course>",
		Aliases: []string{"ls"},
		Short:   "List files of a course",
		Long: `List the files of a course.

Example:
  cnv files list 101
  cnv files list 101 --search .pdf --sort size --order desc`,
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

			opts := &canvas.ListFilesOptions{
				SearchTerm: search,
				Sort:       sortBy,
				Order:      order,
			}
			opts.PerPage = perPage

			files, page, err := client.ListFiles(ctx, courseID, opts)
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}

			if all {
				for page.HasNext() {
					next := page.NextPage()
					if next == 0 {
						break
					}
					opts.Page = next
					var more []*canvas.File
					more, page, err = client.ListFiles(ctx, courseID, opts)
					if err != nil {
						return fmt.Errorf("failed to list files: %w", err)
					}
					files = append(files, more...)
				}
			}

			files = applyListLimit(ctx, files)
			return printList(ctx, files, fileTableView(files, ui.FromContext(ctx)))
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only files whose name contains the term")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key: name|size|created_at|updated_at")
	cmd.Flags().StringVar(&order, "order", "", "Sort direction: asc|desc")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch all pages of results")
	cmd.Flags().IntVar(&perPage, "page-size", 0, "Number of items per page (max 100)")

	return cmd
}

func newFilesDownloadCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "download <file-id>",
		Aliases: []string{"dl"},
		Short:   "Download a file",
		Long: `Download a file by its ID.

The file is written to its original filename in the current directory
unless --out names a different path. Use '--out -' to stream the file
to stdout.

Example:
  cnv files download 4401
  cnv files download 4401 --out syllabus.pdf
  cnv files download 4401 --out - | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fileID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || fileID <= 0 {
				return clierrors.NewUserError(
					fmt.Sprintf("invalid file ID %q", args[0]),
					"Find file IDs with 'cnv files list <course>'",
				)
			}

			client, err := clientFromContext(ctx)
			if err != nil {
				return err
			}

			file, err := client.GetFile(ctx, fileID)
			if err != nil {
				return fmt.Errorf("failed to get file: %w", err)
			}
			if file.URL == "" {
				return clierrors.NewUserError(
					fmt.Sprintf("file %d has no download URL", fileID),
					"The file may be locked or hidden for your role",
				)
			}

			if outPath == "-" {
				_, err := client.DownloadFile(ctx, file.URL, stdoutFromContext(ctx))
				return err
			}

			target := outPath
			if target == "" {
				target = file.Filename
			}
			out, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
			defer func() { _ = out.Close() }()

			n, err := client.DownloadFile(ctx, file.URL, out)
			if err != nil {
				return err
			}

			ui.FromContext(ctx).Success("Downloaded %s (%d bytes)", target, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "O", "", "Output path ('-' for stdout)")

	return cmd
}

func fileTableView(files []*canvas.File, u *ui.UI) tableView {
	cols := []table.Column{
		{Key: "id", Header: "ID", Width: 7, Align: table.AlignRight},
		{Key: "name", Header: "NAME", Flex: 3, MinWidth: 12},
		{Key: "size", Header: "SIZE", Width: 8, Align: table.AlignRight},
		{Key: "type", Header: "TYPE", Flex: 1, MinWidth: 8, MaxWidth: 24, Color: func(value string, row table.Row) string {
			return u.Faint(value)
		}},
	}

	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		rows = append(rows, table.Row{
			"id":   f.ID,
			"name": f.DisplayName,
			"size": formatSize(f.Size),
			"type": f.ContentType,
		})
	}
	return tableView{cols: cols, rows: rows}
}

// formatSize renders a byte count with a binary unit suffix.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
