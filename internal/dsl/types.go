package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the server settings.
	Server ServerConfig `yaml:"server"`
	// QR configures the QR code tool output.
	QR QRConfig `yaml:"qr"`
	// Tools overrides per-tool settings. Tools not listed stay enabled with defaults.
	Tools []ToolConfig `yaml:"tools"`
	// Resources lists static MCP resources.
	Resources []ResourceConfig `yaml:"resources"`
}

// ServerConfig defines server settings.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Transport selects the server transport ("http" or "stdio").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// ResultCache configures caching of idempotent tool outputs.
	ResultCache CacheConfig `yaml:"result_cache"`
	// HTTP configures HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// API enables the REST API under /api/.
	API *bool `yaml:"api"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// APIEnabled reports whether the REST API is mounted. It defaults to true.
func (c HTTPConfig) APIEnabled() bool {
	return c.API == nil || *c.API
}

// QRConfig configures QR image output.
type QRConfig struct {
	// OutputDir is where images are written; empty means the OS temp directory.
	OutputDir string `yaml:"output_dir"`
	// BoxSize is the pixel size of one module.
	BoxSize int `yaml:"box_size"`
	// ErrorCorrection is one of L, M, Q, H.
	ErrorCorrection string `yaml:"error_correction"`
}

// ToolConfig overrides settings of a built-in tool.
type ToolConfig struct {
	// ID is the tool identifier.
	ID string `yaml:"id"`
	// Disabled hides the tool from every surface.
	Disabled bool `yaml:"disabled"`
	// Description replaces the built-in MCP description.
	Description string `yaml:"description"`
	// RatePerMinute limits calls per minute.
	RatePerMinute int `yaml:"rate_per_minute"`
	// MaxTotal limits total calls.
	MaxTotal int `yaml:"max_total"`
	// MaxInputLength limits input size in bytes.
	MaxInputLength int `yaml:"max_input_length"`
}

// ResourceConfig declares a static MCP resource.
type ResourceConfig struct {
	// Name is a human-friendly resource name.
	Name string `yaml:"name"`
	// URI is the resource identifier.
	URI string `yaml:"uri"`
	// Description explains the resource.
	Description string `yaml:"description"`
	// MIMEType sets the content type.
	MIMEType string `yaml:"mime_type"`
	// Text is the static resource content.
	Text string `yaml:"text"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Enabled toggles caching.
	Enabled bool `yaml:"enabled"`
	// TTL controls how long cached outputs are kept.
	TTL string `yaml:"ttl"`
	// MaxEntries limits the cache size.
	MaxEntries int `yaml:"max_entries"`
}

// Tool returns the override for id, if any.
func (c *Config) Tool(id string) (ToolConfig, bool) {
	for _, tool := range c.Tools {
		if tool.ID == id {
			return tool, true
		}
	}
	return ToolConfig{}, false
}
