package container

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ProcessConfiguration merges the trees an extension received and decodes the
// result into T after validating it against a CUE schema.
//
// schema must declare the definition named by path (usually "#Config").
// Definitions are closed, so unknown keys are rejected, and CUE defaults fill
// in anything the trees leave out:
//
//	const schema = `#Config: { enabled: bool | *false }`
//	cfg, err := container.ProcessConfiguration[fooConfig](schema, "#Config", configs)
//
// Trees are merged in order; later scalars replace earlier ones and nested
// maps merge key by key.
func ProcessConfiguration[T any](schema, path string, configs []map[string]any) (*T, error) {
	merged := make(map[string]any)
	for _, config := range configs {
		merged = mergeReplace(merged, config)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("failed to compile configuration schema: %w", schemaValue.Err())
	}

	root := schemaValue.LookupPath(cue.ParsePath(path))
	if root.Err() != nil {
		return nil, fmt.Errorf("schema definition %s not found: %w", path, root.Err())
	}

	userValue := ctx.Encode(merged)
	if userValue.Err() != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", userValue.Err())
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatConfigurationError(err)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, formatConfigurationError(err)
	}
	return &result, nil
}

func formatConfigurationError(err error) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lines := make([]string, 0, len(list))
	for _, e := range list {
		path := strings.Join(cueerrors.Path(e), ".")
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(lines, "; "))
}

func mergeReplace(base, overlay map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overlay {
		if baseMap, ok := result[k].(map[string]any); ok {
			if overlayMap, ok := v.(map[string]any); ok {
				result[k] = mergeReplace(baseMap, overlayMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}
