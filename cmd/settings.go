package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/deploy"
	"github.com/autobrr/rocketdeploy/pkg/logger"
	"github.com/autobrr/rocketdeploy/pkg/notification"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the resolved notification settings",
	Long: `This command prints the notification settings after placeholders are replaced.

The webhook is shown by domain only.`,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("settings")

		dc := deploy.NewContext(config.Config)

		s, err := notification.ResolveSettings(config.Config.RocketChat, dc)
		if err != nil {
			log.WithError(err).Fatal("Failed resolving settings")
		}

		title := fmt.Sprintf("%s: %s to %s", s.Title, dc.Branch, dc.Target)
		fmt.Println(renderTable(title, []string{"Setting", "Value"}, settingsRows(s)))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
