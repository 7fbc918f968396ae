package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/logger"
)

var (
	// Global flags
	flagLogLevel   = 0
	flagConfigFile = "config.yaml"
	flagLogFile    = ""
	flagEnvFile    = ".env"

	// Deploy overrides
	flagUser   string
	flagBranch string
	flagTarget string

	// Global vars
	log         *logrus.Entry
	initialized bool
)

var rootCmd = &cobra.Command{
	Use:   "rocketdeploy",
	Short: "Deployment notifications for Rocket.Chat",
	Long: `rocketdeploy sends deployment status notifications to a Rocket.Chat incoming webhook.

Bind the notify tasks to your deploy lifecycle:

  rocketdeploy hook before deploy
  rocketdeploy hook after deploy:success
  rocketdeploy hook after deploy:failed
`,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Parse persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", flagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", flagLogFile, "Log file (disabled when empty)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", flagEnvFile, ".env file loaded before ROCKETDEPLOY__ variables")
	rootCmd.PersistentFlags().CountVarP(&flagLogLevel, "verbose", "v", "Verbose level")

	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Override deploy.user")
	rootCmd.PersistentFlags().StringVar(&flagBranch, "branch", "", "Override deploy.branch")
	rootCmd.PersistentFlags().StringVar(&flagTarget, "target", "", "Override deploy.target")
}

func initCore() {
	if initialized {
		return
	}

	// Init Logging
	if err := logger.Init(flagLogLevel, flagLogFile); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logging")
	}

	log = logger.GetLogger("app")

	// the default config file is optional, an explicit one is not
	configFile := flagConfigFile
	if !rootCmd.PersistentFlags().Changed("config") {
		if _, err := os.Stat(configFile); err != nil {
			configFile = ""
		}
	}

	// Init Config
	if err := config.Init(configFile, flagEnvFile); err != nil {
		log.WithError(err).Fatal("Failed to initialize config")
	}

	// Apply deploy overrides
	overrides := map[string]string{
		"user":   flagUser,
		"branch": flagBranch,
		"target": flagTarget,
	}
	for name, value := range overrides {
		if !rootCmd.PersistentFlags().Changed(name) {
			continue
		}
		if err := config.Set("deploy."+name, value); err != nil {
			log.WithError(err).Fatalf("Failed overriding deploy.%s", name)
		}
	}

	cfg, err := config.Current()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	config.Config = cfg

	// Show Using
	config.ShowUsing()
	log.Debug("------------------")

	initialized = true
}
