package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduplat/campus-cli/internal/adapters/realtime"
	"github.com/eduplat/campus-cli/internal/adapters/render/status"
)

func newStatusCmd(app *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session, enrollments and settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot := status.Snapshot{
				Session:           app.sessions.Session(),
				RealtimeConnected: app.channel.State() == realtime.StateOpen,
			}

			if snapshot.Session.Authenticated() {
				userID := snapshot.Session.User.ID

				if verify {
					snapshot.Check = verifySession(cmd, app, userID)
				}

				settings, fromCache, err := app.profile.LoadSettings(cmd.Context(), userID)
				if err == nil {
					snapshot.Settings = &settings
					snapshot.SettingsFromCache = fromCache
				}

				enrollments, err := app.enrollments.ForStudent(cmd.Context(), userID)
				if err == nil {
					for _, e := range enrollments {
						snapshot.Courses = append(snapshot.Courses, status.CourseLine{
							Title:    e.Course,
							Progress: e.Progress,
						})
					}
				}
			}

			out, err := status.Render(snapshot)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "ask the server whether the token and account are still valid")
	return cmd
}

// verifySession probes the auth service for token and account validity. A
// request that errors out counts as a rejection; an envelope whose data is
// not a boolean is read as a pass, since the call itself succeeded.
func verifySession(cmd *cobra.Command, app *app, userID int64) *status.ServerCheck {
	check := status.ServerCheck{TokenValid: true, AccountActive: true}

	if result, err := app.authAPI.ValidateToken(cmd.Context(), userID); err != nil {
		check.TokenValid = false
	} else {
		var valid bool
		if decodeErr := result.DecodeData(&valid); decodeErr == nil {
			check.TokenValid = valid
		}
	}

	if result, err := app.authAPI.CheckStatus(cmd.Context(), userID); err != nil {
		check.AccountActive = false
	} else {
		var active bool
		if decodeErr := result.DecodeData(&active); decodeErr == nil {
			check.AccountActive = active
		}
	}

	return &check
}
