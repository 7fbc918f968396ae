package httputils

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

var (
	// ErrMissingDependency is returned when no HTTP client is available to send with.
	ErrMissingDependency = errors.New("http client unavailable")

	// ErrInvalidArgument is returned when the webhook url is empty.
	ErrInvalidArgument = errors.New("webhook url must not be empty")

	ErrTooManyRedirects = errors.Errorf("stopped after %d redirects", WebhookMaxRedirects)
)

// TransportCode classifies a transport failure. Values match libcurl's error
// codes so operators can compare them with curl output.
type TransportCode int

const (
	CodeUnsupportedProtocol    TransportCode = 1
	CodeMalformedURL           TransportCode = 3
	CodeCouldNotResolveHost    TransportCode = 6
	CodeCouldNotConnect        TransportCode = 7
	CodeOperationTimedOut      TransportCode = 28
	CodeSSLConnectError        TransportCode = 35
	CodeTooManyRedirects       TransportCode = 47
	CodeReceiveError           TransportCode = 56
	CodePeerFailedVerification TransportCode = 60
)

func (c TransportCode) String() string {
	switch c {
	case CodeUnsupportedProtocol:
		return "unsupported protocol"
	case CodeMalformedURL:
		return "malformed url"
	case CodeCouldNotResolveHost:
		return "could not resolve host"
	case CodeCouldNotConnect:
		return "could not connect"
	case CodeOperationTimedOut:
		return "operation timed out"
	case CodeSSLConnectError:
		return "ssl connect error"
	case CodeTooManyRedirects:
		return "too many redirects"
	case CodePeerFailedVerification:
		return "peer certificate verification failed"
	}
	return "receive failure"
}

// TransportError is a failure below HTTP: DNS, connect, TLS, timeout or redirect loop.
type TransportError struct {
	Code    TransportCode
	Message string
	Err     error
}

func NewTransportError(err error) *TransportError {
	return &TransportError{
		Code:    classify(err),
		Message: err.Error(),
		Err:     err,
	}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error %d (%s): %s", int(e.Code), e.Code, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func classify(err error) TransportCode {
	var (
		dnsErr       *net.DNSError
		netErr       net.Error
		opErr        *net.OpError
		urlErr       *url.Error
		certErr      *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
	)

	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return CodeTooManyRedirects
	case errors.As(err, &dnsErr):
		return CodeCouldNotResolveHost
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return CodeOperationTimedOut
	case errors.As(err, &certErr),
		errors.As(err, &authorityErr),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidErr):
		return CodePeerFailedVerification
	case errors.As(err, &recordErr),
		errors.As(err, &alertErr):
		return CodeSSLConnectError
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.As(err, &opErr) && opErr.Op == "dial":
		return CodeCouldNotConnect
	case strings.Contains(err.Error(), "unsupported protocol scheme"):
		return CodeUnsupportedProtocol
	case errors.As(err, &urlErr) && urlErr.Op == "parse",
		strings.Contains(err.Error(), "no Host in request URL"):
		return CodeMalformedURL
	}

	return CodeReceiveError
}
