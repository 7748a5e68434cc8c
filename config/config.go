// Package config loads the service configuration from a YAML or JSON
// file with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/timetable/core/metrics"
	"github.com/kilianp07/timetable/infra/gemini"
	"github.com/kilianp07/timetable/infra/mqtt"
)

type Config struct {
	Interpreter gemini.Config  `json:"interpreter"`
	API         APIConfig      `json:"api"`
	Metrics     metrics.Config `json:"metrics"`
	MQTT        mqtt.Config    `json:"mqtt"`
	Audit       AuditConfig    `json:"audit"`
}

// Load reads the file at path, applies K_ environment overrides and
// validates the result. Env keys map to config paths with __ as the
// separator, e.g. K_INTERPRETER__API_KEY.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Interpreter.SetDefaults()
	cfg.API.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Audit.SetDefaults()
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Audit.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
