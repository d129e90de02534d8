// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	dynscale "github.com/pk910/dynamic-scale"
	"github.com/pk910/dynamic-scale/scaletypes"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// dynScaleOptions binds the decoder trace output to the logger.
func (o *rootOptions) dynScaleOptions() []dynscale.DynScaleOption {
	options := []dynscale.DynScaleOption{
		dynscale.WithLogCb(func(format string, args ...any) {
			o.logger.Debug().Msgf(format, args...)
		}),
	}
	if o.verbose {
		options = append(options, dynscale.WithVerbose())
	}
	return options
}

// loadRegistry loads the registry selected by the flags, falling back to the bittensor preset.
func (o *rootOptions) loadRegistry() (*scaletypes.Registry, error) {
	switch {
	case o.registryFile != "" && o.legacyRegistryFile != "":
		return nil, fmt.Errorf("--registry and --legacy-registry are mutually exclusive")
	case o.registryFile != "":
		data, err := os.ReadFile(o.registryFile)
		if err != nil {
			return nil, fmt.Errorf("failed reading registry: %w", err)
		}
		o.logger.Debug().Str("file", o.registryFile).Msg("loading portable registry")
		return scaletypes.LoadPortableRegistry(data)
	case o.legacyRegistryFile != "":
		data, err := os.ReadFile(o.legacyRegistryFile)
		if err != nil {
			return nil, fmt.Errorf("failed reading registry: %w", err)
		}
		o.logger.Debug().Str("file", o.legacyRegistryFile).Msg("loading legacy registry")
		return scaletypes.LoadLegacyRegistry(data)
	default:
		return scaletypes.BittensorRegistry()
	}
}

func (o *rootOptions) writeOutput(out io.Writer, data any) error {
	var encoded []byte
	var err error

	switch o.outputFormat {
	case "yaml":
		encoded, err = yaml.Marshal(data)
	default:
		encoded, err = json.MarshalIndent(data, "", "  ")
		if err == nil {
			encoded = append(encoded, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("failed encoding output: %w", err)
	}

	_, err = out.Write(encoded)
	return err
}
