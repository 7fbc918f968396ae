package cmd

import (
	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/logger"
)

var hookCmd = &cobra.Command{
	Use:   "hook [before|after] [EVENT]",
	Short: "Fire the tasks bound to a lifecycle event",
	Long: `This command runs every task bound to the before or after point of a deploy event.

Without hooks in the config file the defaults are:
  before deploy          -> rocketchat:notify
  after  deploy:success  -> rocketchat:notify:success
  after  deploy:failed   -> rocketchat:notify:failure`,

	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{config.PhaseBefore, config.PhaseAfter},
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("hook")

		phase, event := args[0], args[1]
		if phase != config.PhaseBefore && phase != config.PhaseAfter {
			log.Fatalf("Unknown hook phase: %q", phase)
		}

		_, lifecycle := newLifecycle()
		run := newRun()

		if err := lifecycle.Fire(cmd.Context(), phase, event, run); err != nil {
			log.WithError(err).WithField("run", run.ID).Fatalf("Failed firing %s %s", phase, event)
		}

		log.WithField("run", run.ID).Infof("Fired %s %s (run started %s)", phase, event, run.Since())
	},
}

func init() {
	rootCmd.AddCommand(hookCmd)
}
