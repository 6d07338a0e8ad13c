package common

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseAssignments turns key=value items into a request object. Values that
// parse as JSON literals keep their type (numbers stay json.Number), others
// are strings; dotted keys build nested objects.
func ParseAssignments(items []string) (map[string]any, error) {
	output := map[string]any{}
	for _, item := range items {
		if err := ApplyAssignment(output, item); err != nil {
			return nil, err
		}
	}
	return output, nil
}

func ApplyAssignment(target map[string]any, raw string) error {
	pieces := strings.SplitN(raw, "=", 2)
	if len(pieces) != 2 {
		return ValidationError("invalid assignment "+quoteAssignment(raw)+": expected key=value", nil)
	}

	key := strings.TrimSpace(pieces[0])
	if key == "" {
		return ValidationError("invalid assignment: key must not be empty", nil)
	}

	return setDottedAssignmentValue(target, key, assignmentValue(pieces[1]))
}

// MergeAssignments copies source into target, descending into objects both
// sides hold under the same key.
func MergeAssignments(target map[string]any, source map[string]any) {
	for key, value := range source {
		sourceChild, sourceIsObject := value.(map[string]any)
		targetChild, targetIsObject := target[key].(map[string]any)
		if sourceIsObject && targetIsObject {
			MergeAssignments(targetChild, sourceChild)
			continue
		}
		target[key] = value
	}
}

func assignmentValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil || decoder.More() {
		return trimmed
	}
	return decoded
}

func setDottedAssignmentValue(target map[string]any, dottedKey string, value any) error {
	segments := strings.Split(strings.TrimSpace(dottedKey), ".")
	current := target
	for idx, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return ValidationError("invalid assignment key: empty path segment", nil)
		}
		isLeaf := idx == len(segments)-1
		if isLeaf {
			current[segment] = value
			return nil
		}

		next, exists := current[segment]
		if !exists {
			child := map[string]any{}
			current[segment] = child
			current = child
			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return ValidationError("invalid assignment list: key path conflicts with scalar value", nil)
		}
		current = child
	}

	return nil
}

func quoteAssignment(raw string) string {
	return "\"" + strings.TrimSpace(raw) + "\""
}
