package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/server"
)

type requestSpec struct {
	Resource string
	Method   string
	Path     string
	Query    url.Values
	Body     []byte
}

// composeRequest fills the path template of call from its params. What is
// left becomes the query string of reads or the JSON body of writes.
func composeRequest(call server.Call) (requestSpec, error) {
	method := strings.ToUpper(strings.TrimSpace(call.Method))
	if method == "" {
		return requestSpec{}, validationError(call.Resource+": request method is required", nil)
	}

	remaining := call.Params.Clone()
	if remaining == nil {
		remaining = params.Values{}
	}

	resolvedPath, err := expandPathTemplate(call.Resource, call.Path, remaining)
	if err != nil {
		return requestSpec{}, err
	}

	spec := requestSpec{
		Resource: call.Resource,
		Method:   method,
		Path:     resolvedPath,
	}

	if sendsBody(method) {
		body, err := encodeRequestBody(remaining)
		if err != nil {
			return requestSpec{}, err
		}
		spec.Body = body
		return spec, nil
	}

	query, err := encodeQuery(remaining)
	if err != nil {
		return requestSpec{}, err
	}
	spec.Query = query
	return spec, nil
}

// expandPathTemplate substitutes {name} segments and removes the used names
// from values. An unresolved trailing segment is dropped so one template
// serves both the collection and the item; an unresolved inner segment is an
// error.
func expandPathTemplate(resourceName string, template string, values params.Values) (string, error) {
	segments := strings.Split(strings.Trim(normalizeRequestPath(template), "/"), "/")
	resolved := make([]string, 0, len(segments))

	for idx, segment := range segments {
		name, ok := placeholderName(segment)
		if !ok {
			resolved = append(resolved, segment)
			continue
		}

		value, present := values[name]
		delete(values, name)

		text := ""
		if present {
			formatted, err := formatPathValue(value)
			if err != nil {
				return "", validationError(fmt.Sprintf("%s: path parameter %q", resourceName, name), err)
			}
			text = formatted
		}

		if strings.TrimSpace(text) == "" {
			if idx == len(segments)-1 {
				continue
			}
			return "", validationError(fmt.Sprintf("%s: path parameter %q is required", resourceName, name), nil)
		}
		resolved = append(resolved, url.PathEscape(text))
	}

	return "/" + strings.Join(resolved, "/"), nil
}

func placeholderName(segment string) (string, bool) {
	if len(segment) < 3 || !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
		return "", false
	}
	return segment[1 : len(segment)-1], true
}

func sendsBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return false
	default:
		return true
	}
}

func formatPathValue(value any) (string, error) {
	text, ok := formatScalar(value)
	if !ok {
		return "", fmt.Errorf("expected a scalar, got %T", value)
	}
	return text, nil
}

func formatScalar(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", true
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return "", false
	}
}

// encodeQuery renders scalars as text and anything nested as JSON.
// url.Values.Encode sorts the keys.
func encodeQuery(values params.Values) (url.Values, error) {
	if len(values) == 0 {
		return nil, nil
	}

	query := make(url.Values, len(values))
	for _, key := range values.Keys() {
		value := values[key]
		if value == nil {
			continue
		}
		if text, ok := formatScalar(value); ok {
			query.Set(key, text)
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, validationError(fmt.Sprintf("query parameter %q could not be encoded", key), err)
		}
		query.Set(key, string(encoded))
	}
	return query, nil
}

func normalizeRequestPath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if trimmed != "/" {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	return trimmed
}

func joinBaseAndRequestPath(baseURL string, requestPath string) string {
	return strings.TrimSuffix(baseURL, "/") + normalizeRequestPath(requestPath)
}
