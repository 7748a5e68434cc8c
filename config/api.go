package config

import "fmt"

// APIConfig defines settings for the HTTP API server.
type APIConfig struct {
	// Address is the listen address of the HTTP API.
	Address string `json:"address"`
	// Token protects the audit endpoint when non-empty.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}
