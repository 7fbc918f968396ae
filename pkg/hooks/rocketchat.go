package hooks

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/deploy"
	"github.com/autobrr/rocketdeploy/pkg/logger"
	"github.com/autobrr/rocketdeploy/pkg/notification"
)

// ConfigLoader returns the current configuration. It is called on every task
// run so overrides made between runs are picked up.
type ConfigLoader func() (*config.Configuration, error)

var taskDescriptions = map[notification.Kind]string{
	notification.KindStart:   "Notifies RocketChat",
	notification.KindSuccess: "Notifies RocketChat about deploy finish",
	notification.KindFailure: "Notifies RocketChat about deploy failure",
}

// RegisterRocketChat registers the rocketchat:notify, rocketchat:notify:success
// and rocketchat:notify:failure tasks. A nil httpClient uses the default
// webhook client.
func RegisterRocketChat(registry *Registry, load ConfigLoader, httpClient *http.Client) error {
	log := logger.GetLogger("rocketchat")

	for _, kind := range notification.Kinds {
		kind := kind

		err := registry.Task(kind.Task(), taskDescriptions[kind], func(ctx context.Context, run *deploy.Run) error {
			cfg, err := load()
			if err != nil {
				return errors.Wrap(err, "load config")
			}

			// nothing is resolved without a webhook
			if !cfg.RocketChat.CanSend() {
				log.Tracef("No webhook configured, skipping %s", kind.Task())
				return nil
			}

			dc := deploy.NewContext(cfg)
			if run != nil && run.Context != nil {
				dc = run.Context
			}

			settings, err := notification.ResolveSettings(cfg.RocketChat, dc)
			if err != nil {
				return err
			}

			entry := log
			if run != nil {
				entry = entry.WithField("run", run.ID)
			}

			return notification.NewRocketChat(entry, settings, httpClient).Notify(ctx, kind)
		})
		if err != nil {
			return err
		}
	}

	return nil
}
