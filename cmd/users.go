package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eduplat/campus-cli/internal/adapters/api"
	"github.com/eduplat/campus-cli/internal/domain"
)

func newUsersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer platform accounts (admins only)",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersStatusCmd(app),
		newUsersDeleteCmd(app),
	)

	return cmd
}

func newUsersListCmd(app *app) *cobra.Command {
	var (
		page  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List platform accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.users.List(cmd.Context(), api.Page{Page: page, Limit: limit})
			if err != nil {
				return err
			}

			var payload struct {
				List       []domain.User  `json:"list"`
				Pagination api.Pagination `json:"pagination"`
			}
			if err := result.DecodeData(&payload); err != nil {
				return fmt.Errorf("decode user list: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tSTATUS")
			for _, u := range payload.List {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", u.ID, u.Username, u.Name, u.Role, u.Status)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d accounts)\n",
				payload.Pagination.Page, payload.Pagination.Pages, payload.Pagination.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "accounts per page")

	return cmd
}

func newUsersStatusCmd(app *app) *cobra.Command {
	var (
		id     int64
		enable bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Enable or disable an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			operator, err := currentUser(app)
			if err != nil {
				return err
			}

			status := 0
			if enable {
				status = 1
			}

			result, err := app.users.UpdateStatus(cmd.Context(), id, status, operator.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "account id")
	cmd.Flags().BoolVar(&enable, "enable", false, "enable instead of disable")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newUsersDeleteCmd(app *app) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			operator, err := currentUser(app)
			if err != nil {
				return err
			}

			result, err := app.users.Delete(cmd.Context(), id, operator.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "account id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
