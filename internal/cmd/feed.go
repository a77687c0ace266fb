package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelay/cli/pkg/client"
	"github.com/reelay/cli/pkg/service"
)

var feedLimit int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Feed commands",
	Long:  "Watch and browse the Reelay video feed",
}

var feedWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the feed interactively",
	Long: `Open an interactive watch session. Logged-in users get their
personalized feed; anonymous users get the latest public videos.

Keys: j/space next, k previous, l like, f follow, s save,
v view count, r reload, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()

		// Anonymous sessions are allowed; they just watch the public
		// feed without social actions.
		actingUserID := ""
		if creds := authSvc.CurrentCredentials(); creds != nil {
			if _, err := authSvc.EnsureAuthenticated(); err != nil {
				return err
			}
			actingUserID = creds.UserID
		} else {
			client.Init()
		}

		session := service.NewFeedSession(actingUserID)
		return session.Run()
	},
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one batch of the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		feedSvc := service.NewFeedService()

		if creds := authSvc.CurrentCredentials(); creds != nil {
			if _, err := authSvc.EnsureAuthenticated(); err != nil {
				return err
			}
			return feedSvc.ListRecommended(feedLimit)
		}
		return feedSvc.ListLatest()
	},
}

func init() {
	feedListCmd.Flags().IntVar(&feedLimit, "limit", 10, "Number of videos to fetch")

	feedCmd.AddCommand(feedWatchCmd)
	feedCmd.AddCommand(feedListCmd)
}
