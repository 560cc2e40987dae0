package security

import (
	"strings"
	"unicode/utf8"
)

// MaxLoggedLength caps tool text copied into logs and audit events.
const MaxLoggedLength = 256

const redacted = "***"

var secretTools = map[string]struct{}{
	"password": {},
}

// IsSecretTool reports whether a tool's output must never be logged.
func IsSecretTool(tool string) bool {
	_, ok := secretTools[strings.ToLower(strings.TrimSpace(tool))]
	return ok
}

// RedactOutput returns output safe to log for tool.
func RedactOutput(tool, output string) string {
	if IsSecretTool(tool) && output != "" {
		return redacted
	}
	return Truncate(output, MaxLoggedLength)
}

// Truncate shortens value to at most limit runes, marking the cut.
func Truncate(value string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit]) + "..."
}
