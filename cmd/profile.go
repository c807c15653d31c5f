package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eduplat/campus-cli/internal/domain"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your own profile and study settings",
	}

	cmd.AddCommand(
		newProfileUpdateCmd(app),
		newProfileAvatarCmd(app),
		newProfileGoalCmd(app),
	)

	return cmd
}

func currentUser(app *app) (*domain.User, error) {
	session := app.sessions.Session()
	if !session.Authenticated() {
		return nil, errors.New("not signed in; run `campus login` first")
	}
	return session.User, nil
}

func newProfileUpdateCmd(app *app) *cobra.Command {
	var (
		name  string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update display name or phone number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := currentUser(app)
			if err != nil {
				return err
			}

			updated := *user
			if name != "" {
				updated.Name = name
			}
			if phone != "" {
				updated.Phone = phone
			}

			saved, err := app.users.UpdateProfile(cmd.Context(), user.ID, updated)
			if err != nil {
				return err
			}
			if err := app.sessions.UpdateUser(saved); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s\n", saved.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")

	return cmd
}

func newProfileAvatarCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Upload a new avatar image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := currentUser(app)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read avatar file: %w", err)
			}

			result, err := app.users.UploadAvatar(cmd.Context(), user.ID, filepath.Base(file), data)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "image file to upload")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newProfileGoalCmd(app *app) *cobra.Command {
	var (
		dailyMinutes int
		weeklyHours  int
	)

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Set your study goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := currentUser(app)
			if err != nil {
				return err
			}

			settings, _, err := app.profile.LoadSettings(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			if dailyMinutes > 0 {
				settings.StudyGoal.DailyMinutes = dailyMinutes
			}
			if weeklyHours > 0 {
				settings.StudyGoal.WeeklyHours = weeklyHours
			}

			if err := app.profile.UpdateSettings(cmd.Context(), user.ID, settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Study goal: %d min/day, %d h/week\n",
				settings.StudyGoal.DailyMinutes, settings.StudyGoal.WeeklyHours)
			return nil
		},
	}

	cmd.Flags().IntVar(&dailyMinutes, "daily-minutes", 0, "daily study goal in minutes")
	cmd.Flags().IntVar(&weeklyHours, "weekly-hours", 0, "weekly study goal in hours")

	return cmd
}
