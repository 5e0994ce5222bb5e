package output

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

func applyOutputTransforms(ctx context.Context, data interface{}, format Format) (interface{}, error) {
	jsonPathRaw := strings.TrimSpace(JSONPathFromContext(ctx))
	if jsonPathRaw == "" {
		return data, nil
	}

	if format == FormatTable {
		return nil, clierrors.NewUserError(
			"--jsonpath is not supported with table output",
			"Use --output json|ndjson|yaml|text instead",
		)
	}

	return applyJSONPath(data, jsonPathRaw)
}

func normalizeToInterface(data interface{}) (interface{}, error) {
	switch data.(type) {
	case map[string]interface{}, []interface{}:
		return data, nil
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return out, nil
}

func applyJSONPath(data interface{}, raw string) (interface{}, error) {
	normalized := normalizeJSONPath(raw)
	if normalized == "" {
		return nil, clierrors.NewUserError("invalid --jsonpath value", "Example: --jsonpath '$[0].id'")
	}
	normalizedData, err := normalizeToInterface(data)
	if err != nil {
		return nil, err
	}
	value, err := jsonpath.Get(normalized, normalizedData)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --jsonpath value", "Example: --jsonpath '$[0].id'")
	}
	return value, nil
}

func normalizeJSONPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(trimmed, "$"), strings.HasPrefix(trimmed, "@"):
		// keep as-is
	case strings.HasPrefix(trimmed, "."), strings.HasPrefix(trimmed, "["):
		trimmed = "$" + trimmed
	default:
		trimmed = "$." + trimmed
	}
	return trimmed
}

// applyLimit truncates slice-shaped data to at most limit elements.
// Named slice types keep their type (and methods) through reflection
// slicing, so Tabular result lists survive limiting.
func applyLimit(data interface{}, limit int) interface{} {
	if limit <= 0 {
		return data
	}
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return data
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice && v.Len() > limit {
		return v.Slice(0, limit).Interface()
	}
	return data
}
