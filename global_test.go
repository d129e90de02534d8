// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package dynscale

import (
	"sync"
	"testing"

	"github.com/pk910/dynamic-scale/scaletypes"
)

// Test GetGlobalDynScale function
func TestGetGlobalDynScale(t *testing.T) {
	t.Run("returns the same instance", func(t *testing.T) {
		ds1 := GetGlobalDynScale()
		ds2 := GetGlobalDynScale()
		if ds1 == nil {
			t.Fatal("expected GetGlobalDynScale to return non-nil")
		}
		if ds1 != ds2 {
			t.Error("expected GetGlobalDynScale to return the same instance")
		}
	})

	t.Run("uses the bittensor registry", func(t *testing.T) {
		registry, err := scaletypes.BittensorRegistry()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if GetGlobalDynScale().GetRegistry() != registry {
			t.Error("expected the global instance to use the bittensor registry")
		}
		if _, err := GetGlobalDynScale().GetTypeCache().GetTypeDescriptor("NeuronInfo"); err != nil {
			t.Errorf("expected NeuronInfo to resolve: %v", err)
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		instances := make([]*DynScale, 16)
		for i := range instances {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				instances[idx] = GetGlobalDynScale()
			}(i)
		}
		wg.Wait()

		for i, instance := range instances {
			if instance != instances[0] {
				t.Errorf("instance %d differs from the first instance", i)
			}
		}
	})
}

// Test the package level Decode function
func TestGlobalDecode(t *testing.T) {
	t.Run("nil registry uses the global instance", func(t *testing.T) {
		value, err := Decode("IPInfo", nil, []byte{0x0c, 0x40})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ip, ok := value.Field("ip")
		if !ok {
			t.Fatal("expected ip field")
		}
		if v, _ := ip.Uint64(); v != 3 {
			t.Errorf("expected ip 3, got %d", v)
		}
	})

	t.Run("instances are cached per registry", func(t *testing.T) {
		registry, err := scaletypes.LoadLegacyRegistry([]byte("types:\n  Pair: \"(u8, u8)\"\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := Decode("Pair", registry, []byte{1, 2}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if forRegistry(registry) != forRegistry(registry) {
			t.Error("expected the same instance for the same registry")
		}
		if forRegistry(registry) == GetGlobalDynScale() {
			t.Error("expected a separate instance for a custom registry")
		}
		if len(forRegistry(registry).GetTypeCache().GetAllTypes()) == 0 {
			t.Error("expected the cached instance to keep resolved types")
		}
	})

	t.Run("unknown types fail", func(t *testing.T) {
		if _, err := Decode("DoesNotExist", nil, []byte{0}); err == nil {
			t.Error("expected an error for an unknown type")
		}
	})
}
