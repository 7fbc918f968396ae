package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/hooks"
	"github.com/autobrr/rocketdeploy/pkg/notification"
)

func TestRenderTable(t *testing.T) {
	t.Run("no headers", func(t *testing.T) {
		assert.Empty(t, renderTable("", nil, [][]string{{"a"}}))
	})

	t.Run("short rows are padded", func(t *testing.T) {
		out := renderTable("MyApp tasks", []string{"Task", "Description", "Hooks"}, [][]string{
			{"rocketchat:notify", "Notifies RocketChat", "before deploy"},
			{"custom"},
		})

		assert.Contains(t, out, "MyApp tasks")
		assert.Contains(t, out, "TASK")
		assert.Contains(t, out, "rocketchat:notify")
		assert.Contains(t, out, "before deploy")
		assert.Contains(t, out, "custom")
	})

	t.Run("long values wrap", func(t *testing.T) {
		long := strings.Repeat("x", maxValueWidth*2)
		out := renderTable("", []string{"Setting", "Value"}, [][]string{{"text", long}})

		assert.NotContains(t, out, long)
	})
}

func TestTaskRows(t *testing.T) {
	registry := hooks.NewRegistry()
	require.NoError(t, hooks.RegisterRocketChat(registry, func() (*config.Configuration, error) {
		return nil, assert.AnError
	}, nil))

	lifecycle := hooks.NewLifecycle(registry)
	require.NoError(t, lifecycle.BindConfig(config.DefaultHooks()))

	rows := taskRows(registry, lifecycle)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{notification.TaskNotify, "Notifies RocketChat", "before deploy"}, rows[0])
	assert.Equal(t, notification.TaskNotifyFailure, rows[1][0])
	assert.Equal(t, "after deploy:failed", rows[1][2])
	assert.Equal(t, notification.TaskNotifySuccess, rows[2][0])
	assert.Equal(t, "after deploy:success", rows[2][2])

	// unbound tasks show a dash
	unbound := hooks.NewLifecycle(registry)
	assert.Equal(t, "-", taskRows(registry, unbound)[0][2])
}

func TestSettingsRows(t *testing.T) {
	s := notification.Settings{
		WebhookURL:   "https://chat.example.com/hooks/secret-token",
		Title:        "MyApp",
		Text:         "deploying",
		Color:        config.DefaultColor,
		SuccessText:  "done",
		SuccessColor: config.DefaultSuccessColor,
		FailureText:  "broken",
		FailureColor: config.DefaultFailureColor,
		IconEmoji:    config.DefaultIconEmoji,
	}

	rows := settingsRows(s)

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		require.Len(t, row, 2)
		values[row[0]] = row[1]
		assert.NotContains(t, row[1], "secret-token")
	}

	assert.Equal(t, "example.com", values["webhook"])
	assert.Equal(t, "MyApp", values["title"])
	assert.Equal(t, "deploying", values["start text"])
	assert.Equal(t, config.DefaultSuccessColor, values["success color"])
	assert.Equal(t, "broken", values["failure text"])
	assert.Equal(t, "", values["when"])

	assert.Equal(t, "(not set)", settingsRows(notification.Settings{})[0][1])
}

func TestBuildTime(t *testing.T) {
	assert.Empty(t, buildTime(""))
	assert.Empty(t, buildTime("unknown"))
	assert.Equal(t, "yesterday (raw)", buildTime("yesterday"))
	assert.True(t, strings.HasPrefix(buildTime("0"), "1970-01-01T00:00:00Z ("))
}
