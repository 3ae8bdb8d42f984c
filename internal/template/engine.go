package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders Go templates with the sprig function library. Templates see
// the context as their dot, e.g. {{ .environment | upper }}. Referencing a
// variable missing from the context is an error.
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine
func New() *Engine {
	return &Engine{funcs: sprig.TxtFuncMap()}
}

// Render executes text against context. name only shows up in errors.
func (e *Engine) Render(name, text string, context map[string]any) (string, error) {
	tmpl, err := template.New(name).Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Replace renders every string of value, recursing into maps and slices.
// Other values are returned as-is.
func (e *Engine) Replace(value any, context map[string]any) (any, error) {
	switch v := value.(type) {
	case string:
		if !strings.Contains(v, "{{") {
			return v, nil
		}
		return e.Render("value", v, context)
	case map[string]any:
		return e.replaceMapTemplates(v, context)
	case []any:
		return e.replaceSliceTemplates(v, context)
	default:
		return value, nil
	}
}

func (e *Engine) replaceMapTemplates(m map[string]any, context map[string]any) (map[string]any, error) {
	result := make(map[string]any, len(m))

	for key, value := range m {
		replacedValue, err := e.Replace(value, context)
		if err != nil {
			return nil, fmt.Errorf("error in key '%s': %w", key, err)
		}
		result[key] = replacedValue
	}

	return result, nil
}

func (e *Engine) replaceSliceTemplates(s []any, context map[string]any) ([]any, error) {
	result := make([]any, len(s))

	for i, value := range s {
		replacedValue, err := e.Replace(value, context)
		if err != nil {
			return nil, fmt.Errorf("error at index %d: %w", i, err)
		}
		result[i] = replacedValue
	}

	return result, nil
}
