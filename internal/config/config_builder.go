package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder layers partial configs on top of each other. A layer added
// later overrides the non-zero fields of the layers before it; Defaults fill
// whatever is left empty.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 3)}
}

func (b *configBuilder) add(source string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

// withEnv adds the layer read from environment variables.
func (b *configBuilder) withEnv() *configBuilder {
	cfg := new(StructuredConfig)
	return b.add("env", cfg, parseEnv(cfg))
}

// withFlags adds the layer read from command line flags.
func (b *configBuilder) withFlags() *configBuilder {
	return b.add("flags", ParseFlags(), nil)
}

// withJSON adds the JSON file named by the last layer that set
// JSONFilePath. Without such a layer it does nothing.
func (b *configBuilder) withJSON() *configBuilder {
	path := ""
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			path = cfg.JSONFilePath
		}
	}
	if path == "" {
		return b
	}

	cfg, err := parseJSON(path)
	return b.add("json "+path, cfg, err)
}

// build merges the layers, applies Defaults and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error reading config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, layer := range b.configs {
		if err := mergo.Merge(merged, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	if err := mergo.Merge(merged, Defaults()); err != nil {
		return nil, fmt.Errorf("error applying config defaults: %w", err)
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
