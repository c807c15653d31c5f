package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read stored notifications (use `campus watch` for live ones)",
	}

	cmd.AddCommand(
		newNotificationsListCmd(app),
		newNotificationsReadCmd(app),
	)

	return cmd
}

func newNotificationsListCmd(app *app) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your notification history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := currentUser(app)
			if err != nil {
				return err
			}

			records, err := app.notifications.ForUser(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSENT\tREAD")
			shown := 0
			for _, record := range records {
				if unreadOnly && record.Read {
					continue
				}
				read := " "
				if record.Read {
					read = "✓"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", record.ID, record.Title, record.SentAt, read)
				shown++
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notifications.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "show only unread notifications")

	return cmd
}

func newNotificationsReadCmd(app *app) *cobra.Command {
	var (
		id  int64
		all bool
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Mark notifications as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := currentUser(app)
			if err != nil {
				return err
			}

			if all {
				result, err := app.notifications.MarkAllRead(cmd.Context(), user.ID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			}

			if id == 0 {
				return fmt.Errorf("either --id or --all is required")
			}
			result, err := app.notifications.MarkRead(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "notification id")
	cmd.Flags().BoolVar(&all, "all", false, "mark every notification read")

	return cmd
}
