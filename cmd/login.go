package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", session.User.Name, session.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.sessions.Session().Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}

			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newRegisterCmd(app *app) *cobra.Command {
	var (
		email    string
		username string
		name     string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.authAPI.Register(cmd.Context(), email, username, name, password, role); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run `campus login` to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&username, "username", "", "unique username")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", "student", "account role (student or teacher)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newResetPasswordCmd(app *app) *cobra.Command {
	var (
		email    string
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a forgotten password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.authAPI.ResetPassword(cmd.Context(), email, name, password); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name on the account, used for verification")
	cmd.Flags().StringVar(&password, "new-password", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("new-password")

	return cmd
}
