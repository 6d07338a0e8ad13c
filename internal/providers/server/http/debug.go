package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crmarques/bitgo/config"
	debugctx "github.com/crmarques/bitgo/debugctx"
)

const requestIDHeader = "X-Request-Id"

type tlsDebugInfo struct {
	enabled            bool
	insecureSkipVerify bool
	caCertFile         string
	clientCertFile     string
	clientKeyFile      string
}

func newTLSDebugInfo(tlsSettings *config.TLS) tlsDebugInfo {
	if tlsSettings == nil {
		return tlsDebugInfo{}
	}

	return tlsDebugInfo{
		enabled:            true,
		insecureSkipVerify: tlsSettings.InsecureSkipVerify,
		caCertFile:         strings.TrimSpace(tlsSettings.CACertFile),
		clientCertFile:     strings.TrimSpace(tlsSettings.ClientCertFile),
		clientKeyFile:      strings.TrimSpace(tlsSettings.ClientKeyFile),
	}
}

func (info tlsDebugInfo) mTLSEnabled() bool {
	return info.clientCertFile != "" && info.clientKeyFile != ""
}

func (g *Gateway) doRequest(ctx context.Context, resourceName string, request *http.Request) (*http.Response, error) {
	requestID := request.Header.Get(requestIDHeader)
	redacted := redactURLForDebug(request.URL)
	logger := g.logger.WithValues("request_id", requestID, "resource", resourceName, "method", request.Method, "url", redacted)

	debugctx.Printf(
		ctx,
		"http request id=%s resource=%q method=%q url=%q tls_enabled=%t mtls_enabled=%t tls_insecure_skip_verify=%t tls_ca_cert_file=%q",
		requestID,
		resourceName,
		request.Method,
		redacted,
		g.tlsDebug.enabled,
		g.tlsDebug.mTLSEnabled(),
		g.tlsDebug.insecureSkipVerify,
		g.tlsDebug.caCertFile,
	)
	logger.V(1).Info("dispatching request")

	started := time.Now()
	response, err := g.client.Do(request)
	if err != nil {
		debugctx.Printf(ctx, "http request failed id=%s resource=%q error=%v", requestID, resourceName, err)
		logger.Error(err, "request failed", "duration", time.Since(started))
		return nil, err
	}

	debugctx.Printf(ctx, "http response id=%s resource=%q status=%d", requestID, resourceName, response.StatusCode)
	logger.V(1).Info("received response", "status", response.StatusCode, "duration", time.Since(started))
	return response, nil
}

// redactURLForDebug hides query values, which can carry secrets such as a
// wallet passphrase on a read.
func redactURLForDebug(value *url.URL) string {
	if value == nil {
		return ""
	}

	cloned := *value
	cloned.User = nil

	query := cloned.Query()
	if len(query) > 0 {
		for key, values := range query {
			redacted := make([]string, len(values))
			for idx := range values {
				redacted[idx] = "<redacted>"
			}
			query[key] = redacted
		}
		cloned.RawQuery = query.Encode()
	}

	return cloned.String()
}
