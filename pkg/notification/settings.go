package notification

import (
	"github.com/autobrr/autobrr/pkg/errors"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/deploy"
	"github.com/autobrr/rocketdeploy/pkg/expression"
)

// Settings is the resolved notification configuration: placeholders already
// replaced, computed defaults applied. Empty strings mean "not set".
type Settings struct {
	WebhookURL string
	Title      string
	Username   string

	Text        string
	SuccessText string
	FailureText string

	Color        string
	SuccessColor string
	FailureColor string

	Channel string
	RoomID  string

	IconURL   string
	IconEmoji string

	// When gates sending; nil always sends.
	When *expression.CompiledExpression
	// Deploy is the environment When is evaluated against. Kind is filled per call.
	Deploy expression.Env
}

// ResolveSettings interpolates the configured strings with dc and compiles the
// when expression. A nil dc leaves strings as configured.
func ResolveSettings(cfg config.RocketChatConfig, dc *deploy.Context) (Settings, error) {
	s := Settings{
		WebhookURL:   cfg.Webhook,
		Title:        cfg.Title,
		Username:     cfg.Username,
		Text:         cfg.Text,
		SuccessText:  cfg.SuccessText,
		FailureText:  cfg.FailureText,
		Color:        cfg.Color,
		SuccessColor: cfg.SuccessColor,
		FailureColor: cfg.FailureColor,
		Channel:      cfg.Channel,
		RoomID:       cfg.RoomID,
		IconURL:      cfg.IconURL,
		IconEmoji:    cfg.IconEmoji,
	}

	if dc != nil {
		fields := map[string]*string{
			"webhook":      &s.WebhookURL,
			"title":        &s.Title,
			"username":     &s.Username,
			"text":         &s.Text,
			"success_text": &s.SuccessText,
			"failure_text": &s.FailureText,
			"channel":      &s.Channel,
			"room_id":      &s.RoomID,
			"icon_url":     &s.IconURL,
			"icon_emoji":   &s.IconEmoji,
		}

		for name, field := range fields {
			parsed, err := dc.Parse(*field)
			if err != nil {
				return Settings{}, errors.Wrap(err, "resolve rocketchat.%s", name)
			}
			*field = parsed
		}

		s.Deploy = expression.Env{
			Application: dc.Application,
			User:        dc.User,
			Branch:      dc.Branch,
			Target:      dc.Target,
			Vars:        dc.Vars,
		}
	}

	when, err := expression.Compile(cfg.When)
	if err != nil {
		return Settings{}, errors.Wrap(err, "rocketchat.when")
	}
	s.When = when

	return s, nil
}

// Message returns the attachment text and color for kind.
func (s Settings) Message(kind Kind) (text string, color string) {
	switch kind {
	case KindSuccess:
		return s.SuccessText, s.SuccessColor
	case KindFailure:
		return s.FailureText, s.FailureColor
	}
	return s.Text, s.Color
}
