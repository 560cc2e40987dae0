package constants

// Server transports.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Audit event types.
const (
	EventToolCall    = "tool_call"
	EventToolOK      = "tool_ok"
	EventToolError   = "tool_error"
	EventLimitDenied = "limit_denied"
	EventCacheHit    = "cache_hit"
	EventCacheStore  = "cache_store"
)

// CatalogURI is the MCP resource listing registered tools.
const CatalogURI = "devterm://tools"
