package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newEnrollCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Manage course enrollments",
	}

	cmd.AddCommand(
		newEnrollJoinCmd(app),
		newEnrollDropCmd(app),
		newEnrollListCmd(app),
		newEnrollProgressCmd(app),
	)

	return cmd
}

func newEnrollJoinCmd(app *app) *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Enroll in a course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.sessions.Session()
			if !session.Authenticated() {
				return errors.New("not signed in; run `campus login` first")
			}

			result, err := app.enrollments.Enroll(cmd.Context(), courseID, session.User.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course id")
	_ = cmd.MarkFlagRequired("course")

	return cmd
}

func newEnrollDropCmd(app *app) *cobra.Command {
	var enrollmentID int64

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop an enrollment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.enrollments.Drop(cmd.Context(), enrollmentID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&enrollmentID, "id", 0, "enrollment id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newEnrollListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your enrollments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.sessions.Session()
			if !session.Authenticated() {
				return errors.New("not signed in; run `campus login` first")
			}

			enrollments, err := app.enrollments.ForStudent(cmd.Context(), session.User.ID)
			if err != nil {
				return err
			}

			if len(enrollments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No enrollments yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCOURSE\tPROGRESS")
			for _, e := range enrollments {
				fmt.Fprintf(w, "%d\t%s\t%d%%\n", e.ID, e.Course, e.Progress)
			}
			return w.Flush()
		},
	}
}

func newEnrollProgressCmd(app *app) *cobra.Command {
	var (
		enrollmentID int64
		progress     int
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record study progress on an enrollment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if progress < 0 || progress > 100 {
				return errors.New("progress must be between 0 and 100")
			}

			result, err := app.enrollments.UpdateProgress(cmd.Context(), enrollmentID, progress)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&enrollmentID, "id", 0, "enrollment id")
	cmd.Flags().IntVar(&progress, "percent", 0, "completion percentage")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("percent")

	return cmd
}
