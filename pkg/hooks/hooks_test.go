package hooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/deploy"
	"github.com/autobrr/rocketdeploy/pkg/httputils"
	"github.com/autobrr/rocketdeploy/pkg/notification"
)

func recorder(calls *[]string, name string, err error) TaskFunc {
	return func(ctx context.Context, run *deploy.Run) error {
		*calls = append(*calls, name)
		return err
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	var calls []string

	require.NoError(t, r.Task("b", "second", recorder(&calls, "b", nil)))
	require.NoError(t, r.Task("a", "first", recorder(&calls, "a", nil)))
	assert.Error(t, r.Task("a", "again", recorder(&calls, "a", nil)))
	assert.Error(t, r.Task("", "nameless", recorder(&calls, "", nil)))
	assert.Error(t, r.Task("nil", "no fn", nil))

	assert.Equal(t, []string{"a", "b"}, r.Names())

	require.NoError(t, r.Run(context.Background(), "b", nil))
	assert.Equal(t, []string{"b"}, calls)

	assert.Error(t, r.Run(context.Background(), "missing", nil))
}

func TestLifecycle_BindAndFire(t *testing.T) {
	r := NewRegistry()
	var calls []string
	boom := errors.New("boom")

	require.NoError(t, r.Task("one", "", recorder(&calls, "one", nil)))
	require.NoError(t, r.Task("two", "", recorder(&calls, "two", boom)))
	require.NoError(t, r.Task("three", "", recorder(&calls, "three", nil)))

	l := NewLifecycle(r)
	require.NoError(t, l.Before("deploy", "one"))
	require.NoError(t, l.Before("deploy", "one"))
	require.NoError(t, l.Before("deploy", "three"))
	require.NoError(t, l.After("deploy", "two"))
	require.NoError(t, l.After("deploy", "three"))

	assert.Error(t, l.Before("deploy", "unknown"))
	assert.Error(t, l.Bind("during", "deploy", "one"))

	assert.Equal(t, []string{"one", "three"}, l.Tasks(config.PhaseBefore, "deploy"))
	assert.Equal(t, []string{"after deploy", "before deploy"}, l.BoundTo("three"))
	assert.Empty(t, l.BoundTo("missing"))

	ctx := context.Background()
	require.NoError(t, l.Fire(ctx, config.PhaseBefore, "deploy", nil))
	assert.Equal(t, []string{"one", "three"}, calls)

	calls = nil
	err := l.Fire(ctx, config.PhaseAfter, "deploy", nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"two"}, calls, "first failure stops the event")

	calls = nil
	require.NoError(t, l.Fire(ctx, config.PhaseAfter, "rollback", nil))
	assert.Empty(t, calls)
}

type webhookServer struct {
	*httptest.Server
	hits     int32
	messages []notification.RocketChatMessage
}

func newWebhookServer(t *testing.T) *webhookServer {
	t.Helper()

	ws := &webhookServer{}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ws.hits, 1)
		var msg notification.RocketChatMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode: %v", err)
		}
		ws.messages = append(ws.messages, msg)
	}))
	t.Cleanup(ws.Close)
	return ws
}

func loaderFor(t *testing.T, values map[string]interface{}) (*koanf.Koanf, ConfigLoader) {
	t.Helper()

	k := koanf.New(config.Delimiter)
	require.NoError(t, k.Load(confmap.Provider(config.Defaults(), config.Delimiter), nil))
	require.NoError(t, k.Load(confmap.Provider(values, config.Delimiter), nil))

	return k, func() (*config.Configuration, error) {
		return config.Load(k)
	}
}

func TestRegisterRocketChat_DefaultBindings(t *testing.T) {
	ws := newWebhookServer(t)

	_, load := loaderFor(t, map[string]interface{}{
		"application":        "MyApp",
		"deploy.user":        "alice",
		"deploy.branch":      "main",
		"deploy.target":      "production",
		"rocketchat.webhook": ws.URL + "/hooks/abc",
	})

	r := NewRegistry()
	require.NoError(t, RegisterRocketChat(r, load, nil))
	assert.Equal(t, []string{notification.TaskNotify, notification.TaskNotifyFailure, notification.TaskNotifySuccess}, r.Names())

	cfg, err := load()
	require.NoError(t, err)

	l := NewLifecycle(r)
	require.NoError(t, l.BindConfig(cfg.Hooks))

	run := deploy.NewRun(deploy.NewContext(cfg))
	ctx := context.Background()

	require.NoError(t, l.Fire(ctx, config.PhaseBefore, "deploy", run))
	require.NoError(t, l.Fire(ctx, config.PhaseAfter, "deploy:success", run))
	require.NoError(t, l.Fire(ctx, config.PhaseAfter, "deploy:failed", run))

	require.Len(t, ws.messages, 3)

	start := ws.messages[0]
	assert.Equal(t, "MyApp", start.Text)
	assert.Nil(t, start.Username)
	assert.Equal(t, ":robot:", start.Emoji)
	assert.Equal(t, "_alice_ deploying `main` to *production*", start.Attachments[0].Text)
	assert.Equal(t, "#000000", start.Attachments[0].Color)

	assert.Equal(t, "Deploy to *production* successful", ws.messages[1].Attachments[0].Text)
	assert.Equal(t, "#00c100", ws.messages[1].Attachments[0].Color)
	assert.Equal(t, "Deploy to *production* failed", ws.messages[2].Attachments[0].Text)
	assert.Equal(t, "#ff0909", ws.messages[2].Attachments[0].Color)
}

func TestRegisterRocketChat_ReadsConfigFreshEachRun(t *testing.T) {
	ws := newWebhookServer(t)

	k, load := loaderFor(t, map[string]interface{}{
		"deploy.target": "production",
	})

	r := NewRegistry()
	require.NoError(t, RegisterRocketChat(r, load, nil))

	ctx := context.Background()
	require.NoError(t, r.Run(ctx, notification.TaskNotifyFailure, nil))
	assert.EqualValues(t, 0, atomic.LoadInt32(&ws.hits), "no webhook means no call")

	require.NoError(t, k.Load(confmap.Provider(map[string]interface{}{
		"rocketchat.webhook":  ws.URL,
		"rocketchat.icon_url": "https://cdn.example.com/bot.png",
	}, config.Delimiter), nil))

	require.NoError(t, r.Run(ctx, notification.TaskNotifyFailure, nil))
	require.EqualValues(t, 1, atomic.LoadInt32(&ws.hits))
	assert.Equal(t, "https://cdn.example.com/bot.png", ws.messages[0].Avatar)
	assert.Empty(t, ws.messages[0].Emoji)
}

func TestRegisterRocketChat_TransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	webhookURL := server.URL
	server.Close()

	_, load := loaderFor(t, map[string]interface{}{
		"rocketchat.webhook": webhookURL,
	})

	r := NewRegistry()
	require.NoError(t, RegisterRocketChat(r, load, nil))

	l := NewLifecycle(r)
	require.NoError(t, l.Before("deploy", notification.TaskNotify))

	err := l.Fire(context.Background(), config.PhaseBefore, "deploy", nil)

	var te *httputils.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, httputils.CodeCouldNotConnect, te.Code)
}

func TestRegisterRocketChat_UnknownPlaceholderFails(t *testing.T) {
	ws := newWebhookServer(t)

	_, load := loaderFor(t, map[string]interface{}{
		"rocketchat.webhook": ws.URL,
		"rocketchat.text":    "{{release}} going out",
	})

	r := NewRegistry()
	require.NoError(t, RegisterRocketChat(r, load, nil))

	assert.Error(t, r.Run(context.Background(), notification.TaskNotify, nil))
	assert.EqualValues(t, 0, atomic.LoadInt32(&ws.hits))
}

func TestRegisterRocketChat_NoWebhookSkipsResolution(t *testing.T) {
	ws := newWebhookServer(t)

	_, load := loaderFor(t, map[string]interface{}{
		"rocketchat.text": "{{release}} going out",
		"rocketchat.when": "Target ==",
	})

	r := NewRegistry()
	require.NoError(t, RegisterRocketChat(r, load, nil))

	for _, task := range r.Names() {
		assert.NoError(t, r.Run(context.Background(), task, nil), task)
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(&ws.hits))
}
