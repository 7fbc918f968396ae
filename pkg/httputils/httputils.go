package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/rocketdeploy/pkg/runtime"
)

const (
	WebhookTimeout        = 5 * time.Second
	WebhookConnectTimeout = 5 * time.Second
	WebhookMaxRedirects   = 10

	// responses are drained up to this size so the connection can be reused
	maxDrainBytes = 64 << 10
)

// NewWebhookHttpClient returns a client for one-shot webhook delivery: a single
// attempt, 5s connect and total timeouts, at most 10 redirects. Responses are
// handed back as-is whatever their status.
func NewWebhookHttpClient(log *logrus.Entry) *http.Client {
	transport := cleanhttp.DefaultPooledTransport()
	transport.DialContext = (&net.Dialer{
		Timeout:   WebhookConnectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = WebhookConnectTimeout

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient = &http.Client{
		Timeout:   WebhookTimeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= WebhookMaxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
	retryClient.RequestLogHook = func(l retryablehttp.Logger, request *http.Request, i int) {
		// set user-agent
		if request != nil {
			request.Header.Set("User-Agent", runtime.UserAgent())
		}
	}
	retryClient.ResponseLogHook = func(l retryablehttp.Logger, response *http.Response) {
		if log != nil && response != nil {
			log.Tracef("Webhook response status: %d", response.StatusCode)
		}
	}
	retryClient.Logger = nil
	return retryClient.StandardClient()
}

// PostJSON sends payload to webhookURL as a pretty-printed JSON body. The
// response status is not inspected; only transport failures are errors.
func PostJSON(ctx context.Context, client *http.Client, webhookURL string, payload any) error {
	if client == nil {
		return ErrMissingDependency
	}

	if webhookURL == "" {
		return ErrInvalidArgument
	}

	body, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return NewTransportError(err)
	}

	// net/http writes Content-Length from this field, not from req.Header
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return NewTransportError(err)
	}
	defer res.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDrainBytes))
	return nil
}
