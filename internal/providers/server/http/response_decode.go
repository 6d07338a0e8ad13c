package http

import (
	"bytes"
	"encoding/json"

	"github.com/crmarques/bitgo/faults"
	"github.com/crmarques/bitgo/params"
)

// encodeRequestBody always yields a JSON object; writes with no fields send
// {}.
func encodeRequestBody(values params.Values) ([]byte, error) {
	if len(values) == 0 {
		return []byte("{}"), nil
	}

	encoded, err := json.Marshal(map[string]any(values))
	if err != nil {
		return nil, validationError("failed to encode JSON request body", err)
	}
	return encoded, nil
}

func decodeJSONResponse(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, transportError("response body is not valid JSON", err)
	}
	return value, nil
}

func classifyStatusError(resourceName string, statusCode int, body []byte) error {
	err := faults.NewStatusError(statusCode, body)
	if resourceName != "" {
		err.Message = resourceName + ": " + err.Message
	}
	return err
}
