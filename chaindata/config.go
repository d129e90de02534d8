// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	"fmt"

	"github.com/pk910/dynamic-scale/ss58"
	"gopkg.in/yaml.v3"
)

// Config holds the normalization settings of a Decoder.
type Config struct {
	// SS58Format is the network prefix used to render account ids.
	SS58Format uint16 `yaml:"ss58_format"`
}

// DefaultConfig returns the bittensor defaults.
func DefaultConfig() Config {
	return Config{
		SS58Format: ss58.SubstrateFormat,
	}
}

// LoadConfig parses a yaml config document. Unset keys keep their defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid chaindata config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SS58Format > ss58.MaxFormat {
		return fmt.Errorf("%w: ss58 format %d exceeds %d", ss58.ErrInvalidFormat, c.SS58Format, ss58.MaxFormat)
	}
	return nil
}
