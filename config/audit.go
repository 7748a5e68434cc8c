package config

import "fmt"

// AuditConfig defines settings for the interpretation audit trail.
type AuditConfig struct {
	// Enabled turns audit persistence on.
	Enabled bool `json:"enabled"`
	// Path is the file location of the JSONL trail.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *AuditConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "interpretations.jsonl"
	}
}

// Validate checks mandatory fields.
func (c AuditConfig) Validate() error {
	if c.Enabled && c.Path == "" {
		return fmt.Errorf("path is required when audit is enabled")
	}
	return nil
}
