package main

// Default limits for CLI commands.
const (
	DefaultExplainLimit = 5
	DefaultAuditLimit   = 20
)

// Valid input formats.
var validFormats = []string{"auto", "json", "csv", "yaml"}
