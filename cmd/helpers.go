package cmd

import (
	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/deploy"
	"github.com/autobrr/rocketdeploy/pkg/hooks"
)

// newLifecycle registers the notification tasks and binds them per config.
func newLifecycle() (*hooks.Registry, *hooks.Lifecycle) {
	registry := hooks.NewRegistry()
	if err := hooks.RegisterRocketChat(registry, config.Current, nil); err != nil {
		log.WithError(err).Fatal("Failed registering tasks")
	}

	lifecycle := hooks.NewLifecycle(registry)
	if err := lifecycle.BindConfig(config.Config.Hooks); err != nil {
		log.WithError(err).Fatal("Failed binding hooks")
	}

	return registry, lifecycle
}

func newRun() *deploy.Run {
	run := deploy.NewRun(deploy.NewContext(config.Config))

	log.WithField("run", run.ID).
		Debugf("Deploy context: application=%s user=%s branch=%s target=%s",
			run.Context.Application, run.Context.User, run.Context.Branch, run.Context.Target)
	return run
}
