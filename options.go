// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

// Package dynscale provides dynamic SCALE decoding driven by runtime type registries.
package dynscale

type DynScaleOption func(*DynScaleOptions)

type DynScaleOptions struct {
	Verbose bool
	LogCb   func(format string, args ...any)
}

func WithVerbose() DynScaleOption {
	return func(opts *DynScaleOptions) {
		opts.Verbose = true
	}
}

func WithLogCb(logCb func(format string, args ...any)) DynScaleOption {
	return func(opts *DynScaleOptions) {
		opts.LogCb = logCb
	}
}

// CallOption is a functional option for per-call configuration of the decode functions.
// These options change the shape of the result for a single call without modifying the
// DynScale instance.
type CallOption func(*callConfig)

// callConfig holds per-call configuration for decode operations.
type callConfig struct {
	// legacyAccountId keeps 32 byte account ids in their raw shape (tuple of byte values).
	legacyAccountId bool

	// strictLength rejects input with bytes left over after the value.
	strictLength bool
}

// applyCallOptions applies all provided CallOptions to a callConfig and returns it.
func applyCallOptions(opts []CallOption) *callConfig {
	cfg := &callConfig{
		legacyAccountId: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLegacyAccountId selects the shape of decoded account ids.
//
// In legacy mode (the default) account id types keep their raw layout: a tuple of 32
// integers for [u8; 32] aliases, wrapped in a one element tuple for the AccountId32
// composite of portable registries. With legacy mode disabled they are returned as a
// single ValueAccountId holding the 32 raw bytes.
//
// The option only changes the shape of the result, the consumed bytes are identical.
//
//	value, err := ds.Decode("AccountId", data, dynscale.WithLegacyAccountId(false))
//	address := ss58.Encode(value.Bytes, 42)
func WithLegacyAccountId(legacy bool) CallOption {
	return func(cfg *callConfig) {
		cfg.legacyAccountId = legacy
	}
}

// WithStrictLength makes the decode call fail if the input has bytes left after the
// decoded value. By default trailing bytes are ignored.
func WithStrictLength() CallOption {
	return func(cfg *callConfig) {
		cfg.strictLength = true
	}
}
