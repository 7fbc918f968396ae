package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/runtime"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints the version, commit, build date and the User-Agent sent with webhook requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version:    %s\n", runtime.Version)
		fmt.Printf("Commit:     %s\n", runtime.GitCommit)
		if built := buildTime(runtime.Timestamp); built != "" {
			fmt.Printf("Build Time: %s\n", built)
		}
		fmt.Printf("User-Agent: %s\n", runtime.UserAgent())
	},
	DisableFlagsInUseLine: true,
}

// buildTime formats a unix timestamp set at link time. Unset stamps print
// nothing; anything unparsable is shown raw.
func buildTime(stamp string) string {
	if stamp == "" || stamp == "unknown" {
		return ""
	}

	unixTime, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return stamp + " (raw)"
	}

	built := time.Unix(unixTime, 0)
	return fmt.Sprintf("%s (%s)", built.UTC().Format(time.RFC3339), humanize.Time(built))
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
