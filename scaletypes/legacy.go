// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"errors"
	"fmt"

	"github.com/pk910/dynamic-scale/scaleutils"
	"gopkg.in/yaml.v3"
)

// legacy "custom rpc type registry" document:
//
//	constants:
//	  ACCOUNT_ID_LEN: 32
//	types:
//	  AccountId: "[u8; ACCOUNT_ID_LEN]"
//	  SubnetInfo:
//	    type: struct
//	    type_mapping:
//	      - [netuid, Compact<u16>]
//	  Status:
//	    type: enum
//	    value_list: [Idle, Busy]
type legacyRegistryYaml struct {
	Constants map[string]any `yaml:"constants"`
	Types     yaml.Node      `yaml:"types"`
}

type legacyTypeYaml struct {
	Type        string     `yaml:"type"`
	TypeMapping [][]string `yaml:"type_mapping"`
	ValueList   []string   `yaml:"value_list"`
}

type legacyTypeEntry struct {
	name  string
	alias string
	def   *legacyTypeYaml
	desc  *TypeDescriptor
}

// defaultAccountIdType is registered as "AccountId" unless the document defines it.
const defaultAccountIdType = "[u8; 32]"

// LoadLegacyRegistry loads a legacy custom type registry document. The document can be
// YAML or JSON, both are parsed with the yaml decoder.
//
// Types are resolved in three passes: struct and enum shells are registered first, then
// string aliases are resolved until no more progress is made, then struct fields and enum
// payloads are linked. Aliases named AccountId or AccountId32 that resolve to a 32 byte
// array are flagged as account ids.
//
// The returned registry is sealed.
func LoadLegacyRegistry(data []byte) (*Registry, error) {
	doc := legacyRegistryYaml{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid legacy registry document: %v", scaleutils.ErrRegistryLoad, err)
	}

	if doc.Types.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: legacy registry document has no types mapping", scaleutils.ErrRegistryLoad)
	}

	registry := NewRegistry()

	for name, value := range doc.Constants {
		if err := registry.SetConstant(name, value); err != nil {
			return nil, err
		}
	}

	entries := make([]*legacyTypeEntry, 0, len(doc.Types.Content)/2)
	hasAccountId := false

	for i := 0; i+1 < len(doc.Types.Content); i += 2 {
		keyNode := doc.Types.Content[i]
		valueNode := doc.Types.Content[i+1]
		entry := &legacyTypeEntry{name: keyNode.Value}

		switch valueNode.Kind {
		case yaml.ScalarNode:
			entry.alias = valueNode.Value
		case yaml.MappingNode:
			entry.def = &legacyTypeYaml{}
			if err := valueNode.Decode(entry.def); err != nil {
				return nil, fmt.Errorf("%w: invalid definition of type %v: %v", scaleutils.ErrRegistryLoad, entry.name, err)
			}
		default:
			return nil, fmt.Errorf("%w: invalid definition of type %v (line %d)", scaleutils.ErrRegistryLoad, entry.name, valueNode.Line)
		}

		if entry.name == "AccountId" {
			hasAccountId = true
		}
		entries = append(entries, entry)
	}

	if !hasAccountId {
		entries = append(entries, &legacyTypeEntry{name: "AccountId", alias: defaultAccountIdType})
	}

	// first pass: register struct & enum shells
	for _, entry := range entries {
		if entry.def == nil {
			continue
		}

		entry.desc = &TypeDescriptor{Name: entry.name}
		switch entry.def.Type {
		case "struct":
			entry.desc.ScaleType = ScaleCompositeType
		case "enum":
			entry.desc.ScaleType = ScaleVariantType
		default:
			return nil, fmt.Errorf("%w: type %v has unsupported kind %q", scaleutils.ErrRegistryLoad, entry.name, entry.def.Type)
		}

		if err := registry.AddName(entry.name, entry.desc); err != nil {
			return nil, err
		}
	}

	// second pass: resolve aliases until no more progress is made
	pending := []*legacyTypeEntry{}
	for _, entry := range entries {
		if entry.def == nil {
			pending = append(pending, entry)
		}
	}

	for len(pending) > 0 {
		unresolved := pending[:0:0]
		var lastErr error

		for _, entry := range pending {
			desc, err := resolveLegacyTypeString(registry, entry.alias)
			if err != nil {
				if errors.Is(err, scaleutils.ErrUnknownType) {
					unresolved = append(unresolved, entry)
					lastErr = fmt.Errorf("alias %v = %q: %w", entry.name, entry.alias, err)
					continue
				}
				return nil, fmt.Errorf("%w: alias %v = %q: %w", scaleutils.ErrRegistryLoad, entry.name, entry.alias, err)
			}

			if isAccountIdName(entry.name) && desc.isByteArray32() && !desc.IsAccountId() {
				aliased := *desc
				aliased.Name = entry.name
				aliased.TypeFlags |= TypeFlagIsAccountId
				desc = &aliased
			}

			entry.desc = desc
			if err := registry.AddName(entry.name, desc); err != nil {
				return nil, err
			}
		}

		if len(unresolved) == len(pending) {
			return nil, fmt.Errorf("%w: %w", scaleutils.ErrRegistryLoad, lastErr)
		}
		pending = unresolved
	}

	// third pass: link struct fields and enum payloads
	for _, entry := range entries {
		if entry.def == nil {
			continue
		}

		switch entry.desc.ScaleType {
		case ScaleCompositeType:
			entry.desc.Fields = make([]FieldDescriptor, len(entry.def.TypeMapping))
			for i, mapping := range entry.def.TypeMapping {
				if len(mapping) != 2 {
					return nil, fmt.Errorf("%w: type %v field %d: expected [name, type] pair", scaleutils.ErrRegistryLoad, entry.name, i)
				}

				fieldDesc, err := resolveLegacyTypeString(registry, mapping[1])
				if err != nil {
					return nil, fmt.Errorf("%w: type %v field %v: %w", scaleutils.ErrRegistryLoad, entry.name, mapping[0], err)
				}

				entry.desc.Fields[i] = FieldDescriptor{
					Name:     mapping[0],
					TypeName: mapping[1],
					Type:     fieldDesc,
				}
			}

		case ScaleVariantType:
			if len(entry.def.ValueList) > 0 && len(entry.def.TypeMapping) > 0 {
				return nil, fmt.Errorf("%w: enum %v defines both value_list and type_mapping", scaleutils.ErrRegistryLoad, entry.name)
			}
			if len(entry.def.ValueList) > 256 || len(entry.def.TypeMapping) > 256 {
				return nil, fmt.Errorf("%w: enum %v has more than 256 variants", scaleutils.ErrRegistryLoad, entry.name)
			}

			for i, variantName := range entry.def.ValueList {
				entry.desc.Variants = append(entry.desc.Variants, VariantDescriptor{
					Index: uint8(i),
					Name:  variantName,
				})
			}

			for i, mapping := range entry.def.TypeMapping {
				if len(mapping) != 2 {
					return nil, fmt.Errorf("%w: enum %v variant %d: expected [name, type] pair", scaleutils.ErrRegistryLoad, entry.name, i)
				}

				variant := VariantDescriptor{
					Index: uint8(i),
					Name:  mapping[0],
				}

				if mapping[1] != "Null" && mapping[1] != "()" {
					payloadDesc, err := resolveLegacyTypeString(registry, mapping[1])
					if err != nil {
						return nil, fmt.Errorf("%w: enum %v variant %v: %w", scaleutils.ErrRegistryLoad, entry.name, mapping[0], err)
					}
					variant.Fields = []FieldDescriptor{{
						TypeName: mapping[1],
						Type:     payloadDesc,
					}}
				}

				entry.desc.Variants = append(entry.desc.Variants, variant)
			}
		}
	}

	registry.Seal()

	return registry, nil
}

func resolveLegacyTypeString(registry *Registry, typeStr string) (*TypeDescriptor, error) {
	expr, err := ParseTypeString(typeStr)
	if err != nil {
		return nil, err
	}
	return registry.ResolveTypeExpr(expr)
}
