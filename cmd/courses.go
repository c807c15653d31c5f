package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eduplat/campus-cli/internal/adapters/api"
	"github.com/eduplat/campus-cli/internal/adapters/rest"
)

func newCoursesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse and manage the course catalog",
	}

	cmd.AddCommand(
		newCoursesListCmd(app),
		newCoursesShowCmd(app),
		newCoursesExportCmd(app),
	)

	return cmd
}

func newCoursesListCmd(app *app) *cobra.Command {
	var (
		subject string
		all     bool
		page    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published courses (or the full catalog with --all)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var courses []api.Course

			if all {
				result, err := app.courses.List(cmd.Context(), api.Page{Page: page, Limit: limit})
				if err != nil {
					return err
				}
				courses = result.List
			} else {
				var err error
				courses, err = app.courses.Published(cmd.Context(), subject)
				if err != nil {
					return err
				}
			}

			if len(courses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No courses found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tTEACHER")
			for _, c := range courses {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Title, c.Subject, c.TeacherName)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "filter published courses by subject")
	cmd.Flags().BoolVar(&all, "all", false, "list the full paged catalog, including drafts")
	cmd.Flags().IntVar(&page, "page", 1, "catalog page (with --all)")
	cmd.Flags().IntVar(&limit, "limit", 20, "courses per page (with --all)")

	return cmd
}

func newCoursesShowCmd(app *app) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one course in detail",
		RunE: func(cmd *cobra.Command, _ []string) error {
			course, err := app.courses.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", course.Title, course.ID)
			fmt.Fprintf(out, "Subject: %s\n", course.Subject)
			fmt.Fprintf(out, "Teacher: %s\n", course.TeacherName)
			if course.Description != "" {
				fmt.Fprintf(out, "\n%s\n", course.Description)
			}
			if course.Cover != "" {
				fmt.Fprintf(out, "\nCover: %s\n", app.assets.AssetURL(course.Cover))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "course id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newCoursesExportCmd(app *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the course catalog as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var blob rest.Blob

			err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Exporting courses...", func(ctx context.Context) error {
				var fetchErr error
				blob, fetchErr = app.courses.ExportCSV(ctx)
				return fetchErr
			})
			if err != nil {
				return err
			}

			target := filepath.Join(outDir, blob.Filename)
			if err := os.WriteFile(target, blob.Data, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", target, len(blob.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "directory to save the export into")

	return cmd
}
