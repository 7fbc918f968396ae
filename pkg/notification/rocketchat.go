package notification

import (
	"context"
	"net/http"

	"github.com/autobrr/autobrr/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/httputils"
)

type RocketChatMessage struct {
	Text        string                 `json:"text"`
	Username    *string                `json:"username"`
	Attachments []RocketChatAttachment `json:"attachments"`
	Channel     string                 `json:"channel,omitempty"`
	RoomID      string                 `json:"roomId,omitempty"`
	Avatar      string                 `json:"avatar,omitempty"`
	Emoji       string                 `json:"emoji,omitempty"`
}

type RocketChatAttachment struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// BuildPayload builds the webhook body for kind. Channel and room are only
// present when set; the icon is the avatar url when set, else the emoji.
func BuildPayload(s Settings, kind Kind) RocketChatMessage {
	text, color := s.Message(kind)

	msg := RocketChatMessage{
		Text: s.Title,
		Attachments: []RocketChatAttachment{{
			Text:  text,
			Color: color,
		}},
		Channel: s.Channel,
		RoomID:  s.RoomID,
	}

	if s.Username != "" {
		username := s.Username
		msg.Username = &username
	}

	if s.IconURL != "" {
		msg.Avatar = s.IconURL
	} else if s.IconEmoji != "" {
		msg.Emoji = s.IconEmoji
	}

	return msg
}

type RocketChat struct {
	log      *logrus.Entry
	settings Settings

	httpClient *http.Client
}

// NewRocketChat returns the Rocket.Chat sender. A nil httpClient gets the
// default webhook client.
func NewRocketChat(log *logrus.Entry, settings Settings, httpClient *http.Client) *RocketChat {
	sender := &RocketChat{
		log:        log.WithField("sender", "rocketchat"),
		settings:   settings,
		httpClient: httpClient,
	}

	if sender.httpClient == nil {
		sender.httpClient = httputils.NewWebhookHttpClient(sender.log)
	}

	return sender
}

func (r *RocketChat) Name() string {
	return "rocketchat"
}

func (r *RocketChat) CanSend() bool {
	return r.settings.WebhookURL != ""
}

func (r *RocketChat) NotifyStart(ctx context.Context) error {
	return r.Notify(ctx, KindStart)
}

func (r *RocketChat) NotifySuccess(ctx context.Context) error {
	return r.Notify(ctx, KindSuccess)
}

func (r *RocketChat) NotifyFailure(ctx context.Context) error {
	return r.Notify(ctx, KindFailure)
}

// Notify sends the kind's notification. Without a webhook, or when the when
// expression is false, nothing is sent and nil is returned. Errors from the
// webhook client are returned unchanged.
func (r *RocketChat) Notify(ctx context.Context, kind Kind) error {
	if !r.CanSend() {
		r.log.Tracef("No webhook configured, skipping %s", kind.Task())
		return nil
	}

	env := r.settings.Deploy
	env.Kind = kind.String()

	send, err := r.settings.When.Check(&env)
	if err != nil {
		return errors.Wrap(err, "evaluate rocketchat.when")
	}

	if !send {
		r.log.Debugf("Skipping %s, when expression is false: %s", kind.Task(), r.settings.When.Text)
		return nil
	}

	msg := BuildPayload(r.settings, kind)

	if err := httputils.PostJSON(ctx, r.httpClient, r.settings.WebhookURL, msg); err != nil {
		return err
	}

	r.log.WithField("webhook", config.WebhookDomain(r.settings.WebhookURL)).
		Debugf("Sent %s notification to rocketchat", kind)
	return nil
}
