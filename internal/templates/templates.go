package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

//go:embed data/en.json
var files embed.FS

const messagesPath = "data/en.json"

// Renderer renders user-facing messages by key.
type Renderer interface {
	// Render returns a message by key.
	Render(key string, data any) (string, error)
}

// Bundle holds parsed message templates.
type Bundle struct {
	templates map[string]*template.Template
}

// Load parses the embedded message bundle.
func Load() (*Bundle, error) {
	raw, err := files.ReadFile(messagesPath)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return Parse(raw)
}

// Parse builds a bundle from a JSON object of key to template text.
func Parse(raw []byte) (*Bundle, error) {
	var messages map[string]string
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	parsed := make(map[string]*template.Template, len(messages))
	for key, value := range messages {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(value)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", key, err)
		}
		parsed[key] = tmpl
	}

	return &Bundle{templates: parsed}, nil
}

// Render renders a message by key with the supplied data.
func (b *Bundle) Render(key string, data any) (string, error) {
	if b == nil {
		return "", fmt.Errorf("templates bundle is nil")
	}
	tmpl, ok := b.templates[key]
	if !ok {
		return "", fmt.Errorf("template not found: %s", key)
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", key, err)
	}
	return out.String(), nil
}
