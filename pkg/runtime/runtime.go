package runtime

// Set at build time via -ldflags "-X github.com/autobrr/rocketdeploy/pkg/runtime.Version=..."
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)

// UserAgent identifies outbound webhook requests.
func UserAgent() string {
	return "rocketdeploy/" + Version
}
