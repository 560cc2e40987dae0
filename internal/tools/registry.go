package tools

import (
	"errors"
	"fmt"
)

// ID identifies a tool.
type ID string

// Tool identifiers in display order.
const (
	JSON     ID = "json"
	Base64   ID = "base64"
	URL      ID = "url"
	Hash     ID = "hash"
	UUID     ID = "uuid"
	Password ID = "password"
	QR       ID = "qr"
	Case     ID = "case"
)

// ErrUnknownTool is returned when a tool identifier is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Transform maps an input string to an output string.
type Transform func(input string) (string, error)

// Descriptor describes a registered tool.
type Descriptor struct {
	// ID is the stable tool key.
	ID ID
	// DisplayName is the short label shown in tool lists.
	DisplayName string
	// Title is the long tool name.
	Title string
	// Placeholder is the input hint.
	Placeholder string
	// Description explains the tool to MCP clients.
	Description string
	// IgnoresInput is set for generators that do not read their input.
	IgnoresInput bool
	// Idempotent is set when equal inputs always produce equal outputs.
	Idempotent bool
	// WritesFiles is set when the transform persists an artifact.
	WritesFiles bool
	// Transform runs the tool.
	Transform Transform
}

// Renderer renders user-facing messages by key.
type Renderer interface {
	// Render returns a message by key.
	Render(key string, data any) (string, error)
}

// Options configures tools that depend on process settings.
type Options struct {
	// QR configures where QR images are written.
	QR QRWriter
	// Messages renders confirmation messages; nil uses built-in text.
	Messages Renderer
}

// Registry is the fixed, ordered tool catalog. It is read-only after construction.
type Registry struct {
	ordered []Descriptor
	byID    map[ID]int
}

// NewRegistry builds the catalog.
func NewRegistry(opts Options) *Registry {
	qr := opts.QR
	if qr.Messages == nil {
		qr.Messages = opts.Messages
	}
	return mustRegistry([]Descriptor{
		{
			ID:          JSON,
			DisplayName: "JSON",
			Title:       "JSON Formatter",
			Placeholder: `{"key": "value"}`,
			Description: "Parse JSON text and pretty-print it with 2-space indentation, keeping key order.",
			Idempotent:  true,
			Transform:   FormatJSON,
		},
		{
			ID:          Base64,
			DisplayName: "Base64",
			Title:       "Base64 Encoder/Decoder",
			Placeholder: "Enter text...",
			Description: "Encode text as standard padded Base64 of its UTF-8 bytes.",
			Idempotent:  true,
			Transform:   EncodeBase64,
		},
		{
			ID:          URL,
			DisplayName: "URL",
			Title:       "URL Encoder/Decoder",
			Placeholder: "Enter URL...",
			Description: "Percent-encode every character outside the unreserved set, including '/'.",
			Idempotent:  true,
			Transform:   EncodeURL,
		},
		{
			ID:          Hash,
			DisplayName: "Hash",
			Title:       "Hash Generator",
			Placeholder: "Enter text to hash...",
			Description: "Compute MD5, SHA-256 and SHA-512 digests of the text as lowercase hex.",
			Idempotent:  true,
			Transform:   HashText,
		},
		{
			ID:           UUID,
			DisplayName:  "UUID",
			Title:        "UUID Generator",
			Placeholder:  "Click Generate",
			Description:  "Generate a random version 4 UUID. Input is ignored.",
			IgnoresInput: true,
			Transform:    NewUUID,
		},
		{
			ID:           Password,
			DisplayName:  "Password",
			Title:        "Password Generator",
			Placeholder:  "Click Generate",
			Description:  "Generate a 16-character random password from letters, digits and !@#$%^&*. Input is ignored.",
			IgnoresInput: true,
			Transform:    GeneratePassword,
		},
		{
			ID:          QR,
			DisplayName: "QR Code",
			Title:       "QR Code Generator",
			Placeholder: "Enter text for QR code...",
			Description: "Encode text as a QR code PNG and report where it was saved.",
			WritesFiles: true,
			Transform:   qr.Write,
		},
		{
			ID:          Case,
			DisplayName: "Case",
			Title:       "Case Converter",
			Placeholder: "Enter text...",
			Description: "Convert text to lowercase using Unicode case mapping.",
			Idempotent:  true,
			Transform:   Lower,
		},
	})
}

func mustRegistry(items []Descriptor) *Registry {
	r := &Registry{
		ordered: make([]Descriptor, 0, len(items)),
		byID:    make(map[ID]int, len(items)),
	}
	for _, item := range items {
		if item.ID == "" {
			panic("tools: descriptor without id")
		}
		if item.Transform == nil {
			panic(fmt.Sprintf("tools: %s has no transform", item.ID))
		}
		if _, exists := r.byID[item.ID]; exists {
			panic(fmt.Sprintf("tools: duplicate tool id %s", item.ID))
		}
		r.byID[item.ID] = len(r.ordered)
		r.ordered = append(r.ordered, item)
	}
	return r
}

// Get returns the descriptor for id.
func (r *Registry) Get(id ID) (Descriptor, error) {
	idx, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownTool, id)
	}
	return r.ordered[idx], nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// List returns descriptors in display order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// IDs returns tool identifiers in display order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.ordered))
	for i, item := range r.ordered {
		out[i] = item.ID
	}
	return out
}

// IsKnown reports whether id names one of the built-in tools.
func IsKnown(id ID) bool {
	switch id {
	case JSON, Base64, URL, Hash, UUID, Password, QR, Case:
		return true
	}
	return false
}
