package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxErrorBodyBytes caps what a failed exchange keeps on its TransportError.
// Successful bodies are read in full.
const maxErrorBodyBytes = 1 << 20

// execute performs exactly one round trip. Any transport failure or status
// of 300 and above is a TransportError; nothing is retried.
func (g *Gateway) execute(ctx context.Context, spec requestSpec) (body []byte, err error) {
	ctx, span := g.tracer.Start(
		ctx,
		spec.Resource,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", spec.Method),
			attribute.String("url.path", spec.Path),
		),
	)
	defer span.End()

	started := time.Now()
	statusCode := 0
	defer func() {
		g.metrics.observe(spec.Resource, spec.Method, statusCode, time.Since(started))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if g.limiter != nil {
		if waitErr := g.limiter.Wait(ctx); waitErr != nil {
			return nil, transportError(spec.Resource+": rate limiter wait failed", waitErr)
		}
	}

	request, err := g.newRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	response, err := g.doRequest(ctx, spec.Resource, request)
	if err != nil {
		return nil, transportError(spec.Resource+": remote request failed", err)
	}
	defer response.Body.Close()

	statusCode = response.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", statusCode))

	if response.StatusCode >= http.StatusMultipleChoices {
		body, err = io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		if err != nil {
			return nil, transportError(spec.Resource+": failed to read remote response body", err)
		}
		return nil, classifyStatusError(spec.Resource, response.StatusCode, body)
	}

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return nil, transportError(spec.Resource+": failed to read remote response body", err)
	}
	return body, nil
}

func (g *Gateway) newRequest(ctx context.Context, spec requestSpec) (*http.Request, error) {
	targetURL := joinBaseAndRequestPath(g.cfg.BaseURL(), spec.Path)
	if len(spec.Query) > 0 {
		targetURL += "?" + spec.Query.Encode()
	}

	var bodyReader io.Reader
	if spec.Body != nil {
		bodyReader = bytes.NewReader(spec.Body)
	}

	request, err := http.NewRequestWithContext(ctx, spec.Method, targetURL, bodyReader)
	if err != nil {
		return nil, internalError(fmt.Sprintf("%s: failed to create remote request", spec.Resource), err)
	}

	g.applyHeaders(request, spec.Body != nil)
	request.Header.Set(requestIDHeader, uuid.NewString())

	return request, nil
}

func statusLabel(statusCode int) string {
	if statusCode == 0 {
		return "error"
	}
	return strconv.Itoa(statusCode)
}
