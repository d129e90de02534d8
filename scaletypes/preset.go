// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	_ "embed"
	"sync"
)

//go:embed presets/bittensor.yaml
var bittensorPreset []byte

var (
	bittensorRegistry     *Registry
	bittensorRegistryErr  error
	bittensorRegistryOnce sync.Once
)

// BittensorRegistry returns the sealed registry with the subtensor chain data types.
// The preset is parsed once, all callers share the same registry.
func BittensorRegistry() (*Registry, error) {
	bittensorRegistryOnce.Do(func() {
		bittensorRegistry, bittensorRegistryErr = LoadLegacyRegistry(bittensorPreset)
	})
	return bittensorRegistry, bittensorRegistryErr
}

// BittensorPreset returns the raw preset document.
func BittensorPreset() []byte {
	return append([]byte(nil), bittensorPreset...)
}
