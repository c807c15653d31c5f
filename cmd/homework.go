package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eduplat/campus-cli/internal/adapters/api"
	"github.com/eduplat/campus-cli/internal/adapters/rest"
)

func newHomeworkCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homework",
		Short: "List, submit and grade homework",
	}

	cmd.AddCommand(
		newHomeworkListCmd(app),
		newHomeworkSubmitCmd(app),
		newHomeworkGradeCmd(app),
	)

	return cmd
}

func newHomeworkListCmd(app *app) *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your homework, or a course's homework with --course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.sessions.Session()
			if !session.Authenticated() {
				return errors.New("not signed in; run `campus login` first")
			}

			var (
				list []api.Homework
				err  error
			)
			if courseID > 0 {
				list, err = app.homework.ForCourse(cmd.Context(), courseID)
			} else {
				list, err = app.homework.ForStudent(cmd.Context(), session.User.ID)
			}
			if err != nil {
				return err
			}

			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No homework found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDEADLINE\tSCORE")
			for _, h := range list {
				score := "-"
				if h.Score != nil {
					score = strconv.Itoa(*h.Score)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", h.ID, h.Title, h.Deadline, score)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course id to list homework for")

	return cmd
}

func newHomeworkSubmitCmd(app *app) *cobra.Command {
	var (
		homeworkID int64
		answer     string
		files      []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an answer, optionally with attachments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var attachments []rest.FilePart
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read attachment: %w", err)
				}
				attachments = append(attachments, rest.FilePart{
					Field: "files",
					Name:  filepath.Base(path),
					Data:  data,
				})
			}

			result, err := app.homework.Submit(cmd.Context(), homeworkID, answer, attachments...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&homeworkID, "id", 0, "homework id")
	cmd.Flags().StringVar(&answer, "answer", "", "answer text")
	cmd.Flags().StringSliceVar(&files, "file", nil, "attachment file, repeatable")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newHomeworkGradeCmd(app *app) *cobra.Command {
	var (
		homeworkID int64
		studentID  int64
		score      int
		feedback   string
	)

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a student's submission (teachers only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.homework.Grade(cmd.Context(), homeworkID, studentID, score, feedback)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&homeworkID, "id", 0, "homework id")
	cmd.Flags().Int64Var(&studentID, "student", 0, "student id")
	cmd.Flags().IntVar(&score, "score", 0, "score out of 100")
	cmd.Flags().StringVar(&feedback, "feedback", "", "feedback text")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
