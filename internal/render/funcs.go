package render

import (
	"strings"
	"text/template"
)

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// FuncMap returns template helpers for config rendering.
func FuncMap(tracker *EnvTracker, lookup LookupFunc) template.FuncMap {
	return template.FuncMap{
		"env": func(key string) string {
			tracker.markUsed(key)
			value, ok := lookup(key)
			if !ok {
				tracker.markMissing(key)
				return ""
			}
			return value
		},
		"envOr": func(key, def string) string {
			tracker.markUsed(key)
			if value, ok := lookup(key); ok && value != "" {
				return value
			}
			return def
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"quote": func(value string) string {
			return `"` + strings.ReplaceAll(strings.ReplaceAll(value, `\`, `\\`), `"`, `\"`) + `"`
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
