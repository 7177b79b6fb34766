package ir

// Version constants for the module schema and tool.
const (
	// IRVersion is the module schema version.
	IRVersion = "1"

	// ToolVersion is the symhash version recorded with each run.
	ToolVersion = "0.1.0"
)
