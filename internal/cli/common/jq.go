package common

import (
	"context"
	"encoding/json"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/itchyny/gojq"
)

var jqCodeCache sync.Map

// ApplyJQ runs expression over value. One result is returned as is, several
// as a list; an empty expression returns value untouched.
func ApplyJQ(ctx context.Context, value any, expression string) (any, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return value, nil
	}

	code, err := cachedJQCode(trimmed)
	if err != nil {
		return nil, ValidationError("invalid jq expression", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	iterator := code.RunWithContext(ctx, queryValue(value))
	results := make([]any, 0, 1)
	for {
		item, ok := iterator.Next()
		if !ok {
			break
		}
		if itemErr, isErr := item.(error); isErr {
			return nil, ValidationError("failed to evaluate jq expression", itemErr)
		}
		results = append(results, item)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

func cachedJQCode(expression string) (*gojq.Code, error) {
	if cached, ok := jqCodeCache.Load(expression); ok {
		if typed, ok := cached.(*gojq.Code); ok && typed != nil {
			return typed, nil
		}
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, err
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, err
	}

	actual, _ := jqCodeCache.LoadOrStore(expression, code)
	typed, _ := actual.(*gojq.Code)
	if typed == nil {
		return code, nil
	}
	return typed, nil
}

// queryValue converts decoded responses to the value types gojq accepts.
func queryValue(value any) any {
	switch typed := value.(type) {
	case json.Number:
		return queryNumber(typed)
	case map[string]any:
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[key] = queryValue(item)
		}
		return converted
	case []any:
		converted := make([]any, len(typed))
		for idx, item := range typed {
			converted[idx] = queryValue(item)
		}
		return converted
	default:
		return value
	}
}

func queryNumber(number json.Number) any {
	text := number.String()
	if integer, err := strconv.Atoi(text); err == nil {
		return integer
	}
	if !strings.ContainsAny(text, ".eE") {
		if integer, ok := new(big.Int).SetString(text, 10); ok {
			return integer
		}
	}
	if float, err := strconv.ParseFloat(text, 64); err == nil {
		return float
	}
	return text
}
