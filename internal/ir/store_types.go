package ir

// NOTE: These are store-layer records, not part of the function table.
// Decision rows reference their run by RunID.

// RunRecord is one persisted pipeline run.
type RunRecord struct {
	ID          string `json:"id"` // UUIDv7
	Module      string `json:"module"`
	ModuleHash  string `json:"module_hash"` // ModuleHash of the table before the run
	Pipeline    string `json:"pipeline"`    // canonical pipeline text
	Renamed     int    `json:"renamed"`
	Skipped     int    `json:"skipped"`
	IRVersion   string `json:"ir_version"`
	ToolVersion string `json:"tool_version"`
}

// DecisionRecord is one persisted pass outcome for one function.
type DecisionRecord struct {
	RunID    string `json:"run_id"`
	Seq      int64  `json:"seq"` // logical clock, never wall time
	Pass     string `json:"pass"`
	Index    int    `json:"index"`
	Original string `json:"original"`
	Renamed  string `json:"renamed,omitempty"`
	Changed  bool   `json:"changed"`
	Reason   string `json:"reason,omitempty"`
}
