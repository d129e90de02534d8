// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"sync"
	"testing"

	"github.com/pk910/dynamic-scale/scaleutils"
	"github.com/stretchr/testify/require"
)

const testPortableRegistry = `{"types": [
	{"id": 0, "type": {"path": ["sp_core", "crypto", "AccountId32"], "params": [], "def": {"composite": {"fields": [{"type": 1, "typeName": "[u8; 32]"}]}}, "docs": []}},
	{"id": 1, "type": {"path": [], "params": [], "def": {"array": {"len": 32, "type": 2}}, "docs": []}},
	{"id": 2, "type": {"path": [], "params": [], "def": {"primitive": "u8"}, "docs": []}},
	{"id": 3, "type": {"path": [], "params": [], "def": {"sequence": {"type": 2}}, "docs": []}},
	{"id": 4, "type": {"path": [], "params": [], "def": {"compact": {"type": 5}}, "docs": []}},
	{"id": 5, "type": {"path": [], "params": [], "def": {"primitive": "u64"}, "docs": []}},
	{"id": 6, "type": {"path": [], "params": [], "def": {"tuple": [0, 4]}, "docs": []}},
	{"id": 7, "type": {"path": ["pallet", "Status"], "params": [], "def": {"variant": {"variants": [
		{"name": "Idle", "fields": [], "index": 0, "docs": []},
		{"name": "Active", "fields": [{"type": 5, "typeName": "u64"}], "index": 1, "docs": []},
		{"name": "Named", "fields": [{"name": "a", "type": 5}, {"name": "b", "type": 2}], "index": 5, "docs": []}
	]}}, "docs": []}},
	{"id": 8, "type": {"path": ["Wrapper"], "params": [{"name": "T", "type": 5}], "def": {"composite": {"fields": [{"type": 5}]}}, "docs": []}},
	{"id": 9, "type": {"path": ["Node"], "params": [], "def": {"composite": {"fields": [{"name": "value", "type": 2}, {"name": "children", "type": 10}]}}, "docs": []}},
	{"id": 10, "type": {"path": [], "params": [], "def": {"sequence": {"type": 9}}, "docs": []}},
	{"id": 11, "type": {"path": [], "params": [], "def": {"tuple": []}, "docs": []}},
	{"id": 12, "type": {"path": [], "params": [], "def": {"bitSequence": {"bit_store_type": 2, "bit_order_type": 11}}, "docs": []}}
]}`

func TestLoadPortableRegistry(t *testing.T) {
	registry, err := LoadPortableRegistry([]byte(testPortableRegistry))
	require.NoError(t, err)
	require.True(t, registry.IsSealed())
	require.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, registry.TypeIds())

	accountId, err := registry.Resolve(0)
	require.NoError(t, err)
	require.Equal(t, "AccountId32", accountId.Name)
	require.Equal(t, ScaleCompositeType, accountId.ScaleType)
	require.True(t, accountId.IsAccountId())
	require.Len(t, accountId.Fields, 1)
	require.Empty(t, accountId.Fields[0].Name)

	array, ok := registry.LookupName("scale_info::1")
	require.True(t, ok)
	require.Equal(t, "[u8; 32]", array.Name)
	require.Equal(t, uint32(32), array.Len)
	require.False(t, array.IsAccountId())

	tests := []struct {
		name string
		id   uint32
	}{
		{"AccountId32", 0},
		{"sp_core::crypto::AccountId32", 0},
		{"[u8; 32]", 1},
		{"Vec<u8>", 3},
		{"Compact<u64>", 4},
		{"(AccountId32, Compact<u64>)", 6},
		{"Status", 7},
		{"Wrapper", 8},
		{"Node", 9},
		{"Vec<Node>", 10},
		{"()", 11},
		{"scale_info::12", 12},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			desc, ok := registry.LookupName(test.name)
			require.True(t, ok)
			require.NotNil(t, desc.Id)
			require.Equal(t, test.id, *desc.Id)
		})
	}

	status, _ := registry.LookupName("Status")
	require.Equal(t, ScaleVariantType, status.ScaleType)
	named, ok := status.GetVariant(5)
	require.True(t, ok)
	require.Equal(t, "Named", named.Name)
	require.Len(t, named.Fields, 2)
	_, ok = status.GetVariant(2)
	require.False(t, ok)

	node, _ := registry.LookupName("Node")
	children, ok := node.GetField("children")
	require.True(t, ok)
	require.Same(t, node, children.Type.ElemDesc)

	// bare primitive names keep the builtin descriptors
	u8Desc, ok := registry.LookupName("u8")
	require.True(t, ok)
	require.Nil(t, u8Desc.Id)

	_, err = registry.Resolve(99)
	require.ErrorIs(t, err, scaleutils.ErrUnknownType)

	_, ok = registry.LookupName("scale_info::99")
	require.False(t, ok)
}

func TestLoadPortableRegistryBareArray(t *testing.T) {
	registry, err := LoadPortableRegistry([]byte(`[{"id": 0, "type": {"def": {"primitive": "u16"}}}]`))
	require.NoError(t, err)

	desc, err := registry.Resolve(0)
	require.NoError(t, err)
	require.Equal(t, ScaleUint16Type, desc.ScaleType)
	require.Equal(t, uint32(2), desc.Size)
}

func TestLoadPortableRegistryErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed json", `{"types": [`},
		{"dangling id", `{"types": [{"id": 0, "type": {"def": {"sequence": {"type": 7}}}}]}`},
		{"dangling field id", `{"types": [{"id": 0, "type": {"path": ["A"], "def": {"composite": {"fields": [{"name": "x", "type": 3}]}}}}]}`},
		{"dangling param id", `{"types": [{"id": 0, "type": {"path": ["A"], "params": [{"name": "T", "type": 4}], "def": {"composite": {"fields": []}}}}]}`},
		{"unknown def", `{"types": [{"id": 0, "type": {"def": {"unknown": {}}}}]}`},
		{"unknown primitive", `{"types": [{"id": 0, "type": {"def": {"primitive": "u512"}}}]}`},
		{"duplicate id", `{"types": [{"id": 0, "type": {"def": {"primitive": "u8"}}}, {"id": 0, "type": {"def": {"primitive": "u16"}}}]}`},
		{"compact bool", `{"types": [{"id": 0, "type": {"def": {"primitive": "bool"}}}, {"id": 1, "type": {"def": {"compact": {"type": 0}}}}]}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadPortableRegistry([]byte(test.json))
			require.ErrorIs(t, err, scaleutils.ErrRegistryLoad)
		})
	}
}

const testLegacyRegistry = `
constants:
  KEY_LEN: 16
types:
  Alias2: "Alias1"
  Alias1: "Compact<u32>"
  Key: "[u8; KEY_LEN * 2]"
  Entry:
    type: struct
    type_mapping:
      - [owner, "AccountId"]
      - [amount, "Alias2"]
      - [next, "Option<Entry>"]
  Mode:
    type: enum
    value_list: [Idle, Busy]
  Action:
    type: enum
    type_mapping:
      - [Nop, "Null"]
      - [Transfer, "(AccountId, u64)"]
`

func TestLoadLegacyRegistry(t *testing.T) {
	registry, err := LoadLegacyRegistry([]byte(testLegacyRegistry))
	require.NoError(t, err)
	require.True(t, registry.IsSealed())

	value, ok := registry.Constant("KEY_LEN")
	require.True(t, ok)
	require.Equal(t, 16, value)

	alias1, ok := registry.LookupName("Alias1")
	require.True(t, ok)
	alias2, ok := registry.LookupName("Alias2")
	require.True(t, ok)
	require.Same(t, alias1, alias2)
	require.Equal(t, ScaleCompactType, alias2.ScaleType)

	key, ok := registry.LookupName("Key")
	require.True(t, ok)
	require.Equal(t, uint32(32), key.Len)
	require.False(t, key.IsAccountId())

	accountId, ok := registry.LookupName("AccountId")
	require.True(t, ok)
	require.True(t, accountId.IsAccountId())
	require.Equal(t, ScaleArrayType, accountId.ScaleType)

	pathAccountId, ok := registry.LookupName("T::AccountId")
	require.True(t, ok)
	require.Same(t, accountId, pathAccountId)

	entry, ok := registry.LookupName("Entry")
	require.True(t, ok)
	require.Equal(t, ScaleCompositeType, entry.ScaleType)
	require.Len(t, entry.Fields, 3)
	require.Equal(t, []string{"owner", "amount", "next"}, []string{entry.Fields[0].Name, entry.Fields[1].Name, entry.Fields[2].Name})
	require.Same(t, accountId, entry.Fields[0].Type)
	require.Same(t, entry, entry.Fields[2].Type.ElemDesc)

	mode, ok := registry.LookupName("Mode")
	require.True(t, ok)
	require.Len(t, mode.Variants, 2)
	busy, ok := mode.GetVariant(1)
	require.True(t, ok)
	require.Equal(t, "Busy", busy.Name)
	require.Empty(t, busy.Fields)

	action, ok := registry.LookupName("Action")
	require.True(t, ok)
	nop, ok := action.GetVariant(0)
	require.True(t, ok)
	require.Empty(t, nop.Fields)
	transfer, ok := action.GetVariant(1)
	require.True(t, ok)
	require.Len(t, transfer.Fields, 1)
	require.Equal(t, ScaleTupleType, transfer.Fields[0].Type.ScaleType)
}

func TestLoadLegacyRegistryJson(t *testing.T) {
	registry, err := LoadLegacyRegistry([]byte(`{"types": {"Pair": {"type": "struct", "type_mapping": [["a", "u16"], ["b", "Vec<u8>"]]}}}`))
	require.NoError(t, err)

	pair, ok := registry.LookupName("Pair")
	require.True(t, ok)
	require.Len(t, pair.Fields, 2)
	require.Equal(t, ScaleSequenceType, pair.Fields[1].Type.ScaleType)
}

func TestLoadLegacyRegistryErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "types: [\n"},
		{"missing types", "constants: {}"},
		{"unknown field type", "types:\n  A:\n    type: struct\n    type_mapping:\n      - [x, \"Missing\"]\n"},
		{"alias cycle", "types:\n  A: \"B\"\n  B: \"A\"\n"},
		{"malformed alias", "types:\n  A: \"Vec<u8\"\n"},
		{"unsupported kind", "types:\n  A:\n    type: union\n"},
		{"bad mapping", "types:\n  A:\n    type: struct\n    type_mapping:\n      - [x]\n"},
		{"enum with both lists", "types:\n  A:\n    type: enum\n    value_list: [X]\n    type_mapping:\n      - [Y, \"u8\"]\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadLegacyRegistry([]byte(test.doc))
			require.ErrorIs(t, err, scaleutils.ErrRegistryLoad)
		})
	}
}

func TestBittensorRegistry(t *testing.T) {
	registry, err := BittensorRegistry()
	require.NoError(t, err)
	require.True(t, registry.IsSealed())

	again, err := BittensorRegistry()
	require.NoError(t, err)
	require.Same(t, registry, again)

	for _, name := range []string{
		"SubnetInfo", "SubnetInfoV2", "SubnetIdentity", "DelegateInfo", "NeuronInfo", "NeuronInfoLite",
		"AxonInfo", "PrometheusInfo", "IPInfo", "StakeInfo", "SubnetHyperparameters", "ScheduledColdkeySwapInfo",
	} {
		desc, ok := registry.LookupName(name)
		require.True(t, ok, name)
		require.Equal(t, ScaleCompositeType, desc.ScaleType, name)
	}

	accountId, ok := registry.LookupName("AccountId")
	require.True(t, ok)
	require.True(t, accountId.IsAccountId())
	require.Equal(t, uint32(32), accountId.Len)

	axonInfo, _ := registry.LookupName("AxonInfo")
	axonAlias, _ := registry.LookupName("axon_info")
	require.Same(t, axonInfo, axonAlias)

	neuronInfo, _ := registry.LookupName("NeuronInfo")
	require.Len(t, neuronInfo.Fields, 20)
	neuronInfoLite, _ := registry.LookupName("NeuronInfoLite")
	require.Len(t, neuronInfoLite.Fields, 18)

	subnetInfo, _ := registry.LookupName("SubnetInfo")
	networkConnect, ok := subnetInfo.GetField("network_connect")
	require.True(t, ok)
	require.Equal(t, ScaleSequenceType, networkConnect.Type.ScaleType)
	require.Equal(t, uint32(2), networkConnect.Type.ElemDesc.Len)

	hyperparams, _ := registry.LookupName("SubnetHyperparameters")
	require.Len(t, hyperparams.Fields, 27)

	require.NotEmpty(t, BittensorPreset())
}

func TestTypeCache(t *testing.T) {
	registry, err := BittensorRegistry()
	require.NoError(t, err)

	cache := NewTypeCache(registry)
	require.Same(t, registry, cache.Registry())

	desc, err := cache.GetTypeDescriptor("Vec<(DelegateInfo, Compact<u64>)>")
	require.NoError(t, err)
	require.Equal(t, ScaleSequenceType, desc.ScaleType)
	require.Equal(t, ScaleTupleType, desc.ElemDesc.ScaleType)
	require.Equal(t, "DelegateInfo", desc.ElemDesc.Fields[0].Type.Name)

	again, err := cache.GetTypeDescriptor("Vec<(DelegateInfo, Compact<u64>)>")
	require.NoError(t, err)
	require.Same(t, desc, again)
	require.Equal(t, []string{"Vec<(DelegateInfo, Compact<u64>)>"}, cache.GetAllTypes())

	_, err = cache.GetTypeDescriptor("Vec<Missing>")
	require.ErrorIs(t, err, scaleutils.ErrUnknownType)

	_, err = cache.GetTypeDescriptor("Vec<u8")
	require.ErrorIs(t, err, scaleutils.ErrMalformedTypeString)

	_, err = cache.GetTypeDescriptor("Compact<bool>")
	require.ErrorIs(t, err, scaleutils.ErrUnsupportedType)

	_, err = cache.GetTypeDescriptor("Compact<(u64,)>")
	require.NoError(t, err)

	cache.RemoveAllTypes()
	require.Empty(t, cache.GetAllTypes())
}

func TestTypeCacheConcurrent(t *testing.T) {
	registry, err := BittensorRegistry()
	require.NoError(t, err)

	cache := NewTypeCache(registry)
	typeStrings := []string{"NeuronInfo", "Vec<Option<SubnetInfo>>", "Option<StakeInfo>", "(u16, u16)"}

	wg := sync.WaitGroup{}
	errs := make(chan error, 8*len(typeStrings))
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, typeStr := range typeStrings {
				if _, err := cache.GetTypeDescriptor(typeStr); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, cache.GetAllTypes(), len(typeStrings))
}
