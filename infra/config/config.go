// Package config loads the default attribute values of the learner objects.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const path = "infra/config"

// Config holds the attribute values applied to every new object.
type Config struct {
	Attributes map[string]interface{} `yaml:"attributes"`
}

// Load loads the config from the given file.
func Load(file string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("could not load config '%s': %w", file, err)
	}
	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not unmarshal the config '%s': %w", file, err)
	}
	if cfg.Attributes == nil {
		cfg.Attributes = make(map[string]interface{})
	}
	log.Info().Str("file", file).Int("attributes", len(cfg.Attributes)).Msg("loaded config")
	return cfg, nil
}

// MustLoad loads the default config for the given object.
func MustLoad(object string) Config {
	cfg, err := Load(filepath.Join(path, fmt.Sprintf("%s.yaml", object)))
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
