package cmd

import (
	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/logger"
	"github.com/autobrr/rocketdeploy/pkg/notification"
)

var notifyCmd = &cobra.Command{
	Use:   "notify [start|success|failure]",
	Short: "Send a deployment notification",
	Long: `Sends the start (default), success or failure notification to the configured webhook.

Nothing is sent when rocketchat.webhook is not set.`,

	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"start", "success", "failure"},
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("notify")

		var kindArg string
		if len(args) > 0 {
			kindArg = args[0]
		}

		kind, err := notification.ParseKind(kindArg)
		if err != nil {
			log.WithError(err).Fatal("Failed parsing notification kind")
		}

		registry, _ := newLifecycle()
		run := newRun()

		if err := registry.Run(cmd.Context(), kind.Task(), run); err != nil {
			log.WithError(err).Fatalf("Failed sending %s notification", kind)
		}

		log.Infof("Finished %s", kind.Task())
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
