package params

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The As* helpers accept the native Go type plus the forms a value takes
// after JSON decoding or command-line parsing.

func AsString(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case json.Number:
		return typed.String(), nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(typed), nil
	default:
		return "", typeError("string", value)
	}
}

func AsBool(value any) (bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, typeError("boolean", value)
		}
		return parsed, nil
	default:
		return false, typeError("boolean", value)
	}
}

func AsInt64(value any) (int64, error) {
	switch typed := value.(type) {
	case int:
		return int64(typed), nil
	case int8:
		return int64(typed), nil
	case int16:
		return int64(typed), nil
	case int32:
		return int64(typed), nil
	case int64:
		return typed, nil
	case uint:
		return int64(typed), nil
	case uint8:
		return int64(typed), nil
	case uint16:
		return int64(typed), nil
	case uint32:
		return int64(typed), nil
	case uint64:
		if typed > math.MaxInt64 {
			return 0, typeError("integer", value)
		}
		return int64(typed), nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, so compare against 2^63.
		if typed != math.Trunc(typed) || typed >= 9223372036854775808.0 || typed < -9223372036854775808.0 {
			return 0, typeError("integer", value)
		}
		return int64(typed), nil
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0, typeError("integer", value)
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0, typeError("integer", value)
		}
		return parsed, nil
	default:
		return 0, typeError("integer", value)
	}
}

// AsAmount normalizes a non-negative integral amount of base units (satoshi,
// wei, drops) to its decimal string form, which the API expects for values
// beyond float precision.
func AsAmount(value any) (string, error) {
	var amount decimal.Decimal
	switch typed := value.(type) {
	case decimal.Decimal:
		amount = typed
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(typed))
		if err != nil {
			return "", typeError("amount", value)
		}
		amount = parsed
	case json.Number:
		parsed, err := decimal.NewFromString(typed.String())
		if err != nil {
			return "", typeError("amount", value)
		}
		amount = parsed
	case float64:
		amount = decimal.NewFromFloat(typed)
	default:
		integer, err := AsInt64(value)
		if err != nil {
			return "", typeError("amount", value)
		}
		amount = decimal.NewFromInt(integer)
	}

	if !amount.IsInteger() || amount.IsNegative() {
		return "", fmt.Errorf("amount %s must be a non-negative integer of base units", amount.String())
	}
	return amount.String(), nil
}

func AsObject(value any) (map[string]any, error) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, nil
	case Values:
		return map[string]any(typed), nil
	default:
		return nil, typeError("object", value)
	}
}

func AsList(value any) ([]any, error) {
	switch typed := value.(type) {
	case []any:
		return typed, nil
	case []map[string]any:
		items := make([]any, len(typed))
		for idx, item := range typed {
			items[idx] = item
		}
		return items, nil
	case []string:
		items := make([]any, len(typed))
		for idx, item := range typed {
			items[idx] = item
		}
		return items, nil
	default:
		return nil, typeError("list", value)
	}
}

func AsStrings(value any) ([]string, error) {
	switch typed := value.(type) {
	case []string:
		return typed, nil
	case string:
		return []string{typed}, nil
	case []any:
		items := make([]string, len(typed))
		for idx, item := range typed {
			converted, err := AsString(item)
			if err != nil {
				return nil, typeError("list of strings", value)
			}
			items[idx] = converted
		}
		return items, nil
	default:
		return nil, typeError("list of strings", value)
	}
}

func typeError(expected string, value any) error {
	return fmt.Errorf("expected %s, got %T", expected, value)
}
