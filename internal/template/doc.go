// Package template renders module configuration templates.
//
// Templates use text/template syntax with the sprig function library:
//
//	engine := template.New()
//	out, err := engine.Render("foo.yaml", "env: {{ .environment | upper }}", map[string]any{
//		"environment": "test",
//	})
//
// Replace walks a decoded YAML tree and renders each string that contains a
// template action.
package template
