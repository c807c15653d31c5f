package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eduplat/campus-cli/internal/domain"
)

const watchConnectTimeout = 10 * time.Second

// newWatchCmd keeps a live session open: heartbeat probing in the
// background and realtime notifications streamed to the terminal until
// the user interrupts or the session is force-closed.
func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream realtime notifications until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.sessions.Session().Authenticated() {
				return errors.New("not signed in; run `campus login` first")
			}

			notifications := make(chan domain.Notification, 16)
			ended := make(chan string, 1)
			connected := make(chan struct{}, 1)

			unsubNotification := app.channel.OnNotification(func(n domain.Notification) {
				select {
				case notifications <- n:
				default:
				}
			})
			defer unsubNotification()

			unsubForceLogout := app.channel.OnForceLogout(func(reason string) {
				app.coordinator.ForceLogout(reason)
				select {
				case ended <- reason:
				default:
				}
			})
			defer unsubForceLogout()

			unsubConnected := app.channel.OnConnected(func() {
				select {
				case connected <- struct{}{}:
				default:
				}
			})
			defer unsubConnected()

			app.heartbeat.Start()
			defer app.heartbeat.Stop()

			err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Connecting to campus notifications...", func(ctx context.Context) error {
				app.channel.Connect()
				select {
				case <-connected:
					return nil
				case reason := <-ended:
					return fmt.Errorf("session closed by server: %s", reason)
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(watchConnectTimeout):
					return errors.New("timed out waiting for the notification socket")
				}
			})
			if err != nil {
				return err
			}
			defer app.channel.Disconnect()

			fmt.Fprintln(cmd.OutOrStdout(), "Connected. Waiting for notifications (ctrl-c to stop).")

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case reason := <-ended:
					return fmt.Errorf("session closed by server: %s", reason)
				case n := <-notifications:
					printNotification(cmd, n)
				}
			}
		},
	}
}

func printNotification(cmd *cobra.Command, n domain.Notification) {
	title := n.Title
	if title == "" {
		title = string(n.Type)
	}
	level := n.Level
	if level == "" {
		level = "info"
	}
	if n.Content != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", level, title, n.Content)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", level, title)
}
