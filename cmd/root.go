package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "campus",
		Short:         "Campus CLI: learn, submit and stay connected from the terminal",
		Long:          "campus talks to the campus learning platform: sign in, browse the course catalog, manage enrollments, hand in homework, and follow realtime notifications.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newResetPasswordCmd(app),
		newStatusCmd(app),
		newProfileCmd(app),
		newUsersCmd(app),
		newCoursesCmd(app),
		newHomeworkCmd(app),
		newEnrollCmd(app),
		newNotificationsCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
