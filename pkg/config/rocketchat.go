package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/bobesa/go-domain-util/domainutil"

	"github.com/autobrr/rocketdeploy/pkg/regex"
)

const (
	DefaultIconEmoji    = ":robot:"
	DefaultColor        = "#000000"
	DefaultSuccessColor = "#00c100"
	DefaultFailureColor = "#ff0909"

	DefaultText        = "_{{user}}_ deploying `{{branch}}` to *{{target}}*"
	DefaultSuccessText = "Deploy to *{{target}}* successful"
	DefaultFailureText = "Deploy to *{{target}}* failed"
)

var hexColor = regex.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RocketChatConfig holds the rocketchat.* settings as configured, before
// template placeholders are resolved. Empty strings mean "not set".
type RocketChatConfig struct {
	Webhook  string `yaml:"webhook" koanf:"webhook"`
	Title    string `yaml:"title" koanf:"title"`
	Username string `yaml:"username" koanf:"username"`

	Channel string `yaml:"channel" koanf:"channel"`
	RoomID  string `yaml:"room_id" koanf:"room_id"`

	IconURL   string `yaml:"icon_url" koanf:"icon_url"`
	IconEmoji string `yaml:"icon_emoji" koanf:"icon_emoji"`

	Color        string `yaml:"color" koanf:"color"`
	SuccessColor string `yaml:"success_color" koanf:"success_color"`
	FailureColor string `yaml:"failure_color" koanf:"failure_color"`

	Text        string `yaml:"text" koanf:"text"`
	SuccessText string `yaml:"success_text" koanf:"success_text"`
	FailureText string `yaml:"failure_text" koanf:"failure_text"`

	// When is an optional boolean expression gating every notification.
	When string `yaml:"when" koanf:"when"`
}

// Defaults returns the built-in registry values in koanf key form.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"application":              "",
		"rocketchat.icon_emoji":    DefaultIconEmoji,
		"rocketchat.color":         DefaultColor,
		"rocketchat.success_color": DefaultSuccessColor,
		"rocketchat.failure_color": DefaultFailureColor,
		"rocketchat.text":          DefaultText,
		"rocketchat.success_text":  DefaultSuccessText,
		"rocketchat.failure_text":  DefaultFailureText,
	}
}

func (c RocketChatConfig) CanSend() bool {
	return strings.TrimSpace(c.Webhook) != ""
}

func (c RocketChatConfig) Validate() error {
	if c.Webhook != "" && !strings.Contains(c.Webhook, "{{") {
		if err := validateAbsoluteURL(c.Webhook); err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
	}

	if c.IconURL != "" && !strings.Contains(c.IconURL, "{{") {
		if err := validateAbsoluteURL(c.IconURL); err != nil {
			return fmt.Errorf("icon_url: %w", err)
		}
	}

	for name, color := range map[string]string{
		"color":         c.Color,
		"success_color": c.SuccessColor,
		"failure_color": c.FailureColor,
	} {
		if color == "" {
			continue
		}
		if !hexColor.MatchString(color) {
			return fmt.Errorf("%s: %q is not a hex color", name, color)
		}
	}

	return nil
}

// Redacted returns a copy safe for logging: the webhook token is replaced by
// the webhook's domain.
func (c RocketChatConfig) Redacted() RocketChatConfig {
	c.Webhook = WebhookDomain(c.Webhook)
	return c
}

// WebhookDomain returns the registrable domain of a webhook URL, or an empty
// string when none can be determined.
func WebhookDomain(webhook string) string {
	if webhook == "" {
		return ""
	}

	u, err := url.Parse(webhook)
	if err != nil || u.Hostname() == "" {
		return "<invalid>"
	}

	if net.ParseIP(u.Hostname()) != nil {
		return u.Hostname()
	}

	if d := domainutil.Domain(u.Hostname()); d != "" {
		return d
	}
	return u.Hostname()
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
