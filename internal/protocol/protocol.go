package protocol

// Tool execution statuses.
const (
	StatusSuccess = "success"
	StatusDenied  = "denied"
	StatusError   = "error"
)

// ToolResponse is the fixed JSON response returned by every surface.
type ToolResponse struct {
	// Status indicates the execution status.
	Status string `json:"status"`
	// Tool is the executed tool identifier.
	Tool string `json:"tool"`
	// Output is the tool output, or an "Error: ..." message.
	Output string `json:"output"`
	// CorrelationID links related requests.
	CorrelationID string `json:"correlation_id"`
	// Cached is set when the output was served from the result cache.
	Cached bool `json:"cached,omitempty"`
}

// ToolInfo describes a tool to API clients.
type ToolInfo struct {
	// ID is the tool identifier.
	ID string `json:"id"`
	// Name is the short display name.
	Name string `json:"name"`
	// Title is the long tool name.
	Title string `json:"title"`
	// Placeholder is the input hint.
	Placeholder string `json:"placeholder"`
	// Description explains the tool.
	Description string `json:"description"`
	// IgnoresInput is set for generators.
	IgnoresInput bool `json:"ignores_input"`
}
