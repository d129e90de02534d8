// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package dynscale

import (
	"sync"

	"github.com/pk910/dynamic-scale/scaletypes"
)

var (
	globalDynScale     *DynScale
	globalDynScaleOnce sync.Once
	registryInstances  sync.Map // *scaletypes.Registry -> *DynScale
)

// GetGlobalDynScale returns a shared instance for the embedded bittensor registry.
func GetGlobalDynScale() *DynScale {
	globalDynScaleOnce.Do(func() {
		registry, err := scaletypes.BittensorRegistry()
		if err != nil {
			// the preset is embedded, a failure here is a build defect
			panic(err)
		}
		globalDynScale = NewDynScale(registry)
	})
	return globalDynScale
}

// Decode decodes data as typeStr against the given registry. Instances are kept per registry,
// so repeated calls reuse the resolved type strings. A nil registry selects the embedded
// bittensor registry.
//
//	value, err := dynscale.Decode("scale_info::0", registry, data, dynscale.WithLegacyAccountId(false))
func Decode(typeStr string, registry *scaletypes.Registry, data []byte, opts ...CallOption) (*Value, error) {
	return forRegistry(registry).Decode(typeStr, data, opts...)
}

func forRegistry(registry *scaletypes.Registry) *DynScale {
	if registry == nil {
		return GetGlobalDynScale()
	}

	if instance, ok := registryInstances.Load(registry); ok {
		return instance.(*DynScale)
	}

	instance, _ := registryInstances.LoadOrStore(registry, NewDynScale(registry))
	return instance.(*DynScale)
}
