package cmd

import (
	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run [TASK]",
	Short: "Run a registered task",
	Long:  `This command runs a single task by name, e.g. rocketchat:notify:success.`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("run")

		registry, _ := newLifecycle()
		run := newRun()

		if err := registry.Run(cmd.Context(), args[0], run); err != nil {
			log.WithError(err).Fatalf("Failed running task: %q", args[0])
		}

		log.Infof("Finished %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
