package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/config"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List registered tasks and their hook bindings",

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		registry, lifecycle := newLifecycle()

		fmt.Println(renderTable(config.Config.RocketChat.Title+" tasks",
			[]string{"Task", "Description", "Hooks"}, taskRows(registry, lifecycle)))
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}
