package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/runtime"
)

const repoSlug = "autobrr/rocketdeploy"

var flagUpdateCheck bool

var updateCmd = &cobra.Command{
	Use:           "update",
	Short:         "Update rocketdeploy",
	Long:          `Update rocketdeploy to the latest release, or only report it with --check.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		repo := selfupdate.ParseSlug(repoSlug)

		if flagUpdateCheck {
			latest, found, err := selfupdate.DetectLatest(cmd.Context(), repo)
			if err != nil {
				return fmt.Errorf("could not check for updates: %w", err)
			}

			if !found || latest.LessOrEqual(runtime.Version) {
				fmt.Printf("rocketdeploy %s is up to date\n", runtime.Version)
				return nil
			}

			fmt.Printf("rocketdeploy %s is available (running %s)\n", latest.Version(), runtime.Version)
			return nil
		}

		release, err := selfupdate.UpdateSelf(cmd.Context(), runtime.Version, repo)
		if err != nil {
			return fmt.Errorf("could not update binary: %w", err)
		}

		fmt.Printf("Successfully updated to version: %s\n", release.Version())
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&flagUpdateCheck, "check", false, "Only report whether a newer release exists")

	updateCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} [--check]

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)

	rootCmd.AddCommand(updateCmd)
}
