// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pk910/dynamic-scale/scaleutils"
)

// portable registry document as serialized by scale-info

type portableRegistryJson struct {
	Types []portableTypeJson `json:"types"`
}

type portableTypeJson struct {
	Id   uint32 `json:"id"`
	Type struct {
		Path   []string            `json:"path"`
		Params []portableParamJson `json:"params"`
		Def    portableDefJson     `json:"def"`
	} `json:"type"`
}

type portableParamJson struct {
	Name string  `json:"name"`
	Type *uint32 `json:"type"`
}

type portableFieldJson struct {
	Name     string `json:"name"`
	Type     uint32 `json:"type"`
	TypeName string `json:"typeName"`
}

type portableVariantJson struct {
	Name   string              `json:"name"`
	Fields []portableFieldJson `json:"fields"`
	Index  uint8               `json:"index"`
}

type portableTypeRefJson struct {
	Type uint32 `json:"type"`
}

type portableDefJson struct {
	Composite *struct {
		Fields []portableFieldJson `json:"fields"`
	} `json:"composite"`
	Variant *struct {
		Variants []portableVariantJson `json:"variants"`
	} `json:"variant"`
	Sequence *portableTypeRefJson `json:"sequence"`
	Array    *struct {
		Len  uint32 `json:"len"`
		Type uint32 `json:"type"`
	} `json:"array"`
	Tuple       *[]uint32            `json:"tuple"`
	Primitive   *string              `json:"primitive"`
	Compact     *portableTypeRefJson `json:"compact"`
	BitSequence *struct {
		BitStoreType uint32 `json:"bit_store_type"`
		BitOrderType uint32 `json:"bit_order_type"`
	} `json:"bitSequence"`
}

// LoadPortableRegistry loads a scale-info PortableRegistry JSON document.
//
// Accepted layouts are {"types": [...]} and a bare array of type entries. Every type is
// registered under its id (reachable as "scale_info::<id>") and under its derived type
// string: the last path segment for named types, a structural string ("Vec<u8>",
// "[u8; 32]", "(u16, u16)", "Compact<u64>") for anonymous ones. On duplicate derived
// names the later type wins.
//
// The returned registry is sealed.
func LoadPortableRegistry(data []byte) (*Registry, error) {
	doc := portableRegistryJson{}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &doc.Types); err != nil {
			return nil, fmt.Errorf("%w: invalid portable registry json: %v", scaleutils.ErrRegistryLoad, err)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid portable registry json: %v", scaleutils.ErrRegistryLoad, err)
	}

	registry := NewRegistry()

	// first pass: allocate shells so that references (including recursive ones) can be linked
	for i := range doc.Types {
		id := doc.Types[i].Id
		desc := &TypeDescriptor{
			Id:   &id,
			Path: doc.Types[i].Type.Path,
		}
		if err := registry.AddType(id, desc); err != nil {
			return nil, err
		}
	}

	resolve := func(ownerId uint32, refId uint32) (*TypeDescriptor, error) {
		desc, ok := registry.types[refId]
		if !ok {
			return nil, fmt.Errorf("%w: type %d references unknown type id %d", scaleutils.ErrRegistryLoad, ownerId, refId)
		}
		return desc, nil
	}

	resolveFields := func(ownerId uint32, fields []portableFieldJson) ([]FieldDescriptor, error) {
		descs := make([]FieldDescriptor, len(fields))
		for i, field := range fields {
			fieldDesc, err := resolve(ownerId, field.Type)
			if err != nil {
				return nil, err
			}
			descs[i] = FieldDescriptor{
				Name:     field.Name,
				TypeName: field.TypeName,
				Type:     fieldDesc,
			}
		}
		return descs, nil
	}

	// second pass: fill in the definitions
	for i := range doc.Types {
		entry := &doc.Types[i]
		desc := registry.types[entry.Id]
		def := &entry.Type.Def

		for _, param := range entry.Type.Params {
			if param.Type != nil {
				if _, err := resolve(entry.Id, *param.Type); err != nil {
					return nil, err
				}
			}
		}

		switch {
		case def.Composite != nil:
			fields, err := resolveFields(entry.Id, def.Composite.Fields)
			if err != nil {
				return nil, err
			}
			desc.ScaleType = ScaleCompositeType
			desc.Fields = fields

		case def.Variant != nil:
			desc.ScaleType = ScaleVariantType
			desc.Variants = make([]VariantDescriptor, len(def.Variant.Variants))
			for j, variant := range def.Variant.Variants {
				fields, err := resolveFields(entry.Id, variant.Fields)
				if err != nil {
					return nil, err
				}
				desc.Variants[j] = VariantDescriptor{
					Index:  variant.Index,
					Name:   variant.Name,
					Fields: fields,
				}
			}

		case def.Sequence != nil:
			elemDesc, err := resolve(entry.Id, def.Sequence.Type)
			if err != nil {
				return nil, err
			}
			desc.ScaleType = ScaleSequenceType
			desc.ElemDesc = elemDesc

		case def.Array != nil:
			elemDesc, err := resolve(entry.Id, def.Array.Type)
			if err != nil {
				return nil, err
			}
			desc.ScaleType = ScaleArrayType
			desc.Len = def.Array.Len
			desc.ElemDesc = elemDesc

		case def.Tuple != nil:
			desc.ScaleType = ScaleTupleType
			desc.Fields = make([]FieldDescriptor, len(*def.Tuple))
			for j, elemId := range *def.Tuple {
				elemDesc, err := resolve(entry.Id, elemId)
				if err != nil {
					return nil, err
				}
				desc.Fields[j] = FieldDescriptor{Type: elemDesc}
			}

		case def.Primitive != nil:
			scaleType, err := ParsePrimitiveType(*def.Primitive)
			if err != nil {
				return nil, fmt.Errorf("%w: type %d: %v", scaleutils.ErrRegistryLoad, entry.Id, err)
			}
			desc.ScaleType = scaleType
			desc.Size = scaleType.Size()

		case def.Compact != nil:
			elemDesc, err := resolve(entry.Id, def.Compact.Type)
			if err != nil {
				return nil, err
			}
			desc.ScaleType = ScaleCompactType
			desc.ElemDesc = elemDesc

		case def.BitSequence != nil:
			storeDesc, err := resolve(entry.Id, def.BitSequence.BitStoreType)
			if err != nil {
				return nil, err
			}
			if _, err := resolve(entry.Id, def.BitSequence.BitOrderType); err != nil {
				return nil, err
			}
			desc.ScaleType = ScaleBitSequenceType
			desc.ElemDesc = storeDesc

		default:
			return nil, fmt.Errorf("%w: type %d has no known definition kind", scaleutils.ErrRegistryLoad, entry.Id)
		}
	}

	// third pass: derive names, validate compacts and mark account ids
	for i := range doc.Types {
		desc := registry.types[doc.Types[i].Id]
		desc.Name = portableTypeName(desc)

		if desc.ScaleType == ScaleCompactType {
			if err := checkCompactInner(desc.ElemDesc); err != nil {
				return nil, fmt.Errorf("%w: type %d: %v", scaleutils.ErrRegistryLoad, *desc.Id, err)
			}
		}

		if len(desc.Path) > 0 && isAccountIdName(desc.Path[len(desc.Path)-1]) && desc.isByteArray32() {
			desc.TypeFlags |= TypeFlagIsAccountId
		}
	}

	for i := range doc.Types {
		desc := registry.types[doc.Types[i].Id]
		if desc.ScaleType.IsPrimitive() {
			// keep the builtin primitive descriptors for bare primitive names
			continue
		}
		if err := registry.AddName(desc.Name, desc); err != nil {
			return nil, err
		}
	}

	registry.Seal()

	return registry, nil
}

// portableTypeName derives the type string of a portable type: the last path segment for
// named types, a structural string for anonymous ones.
func portableTypeName(desc *TypeDescriptor) string {
	if desc.Name != "" {
		return desc.Name
	}

	if len(desc.Path) > 0 {
		return desc.Path[len(desc.Path)-1]
	}

	switch desc.ScaleType {
	case ScaleArrayType:
		return fmt.Sprintf("[%v; %d]", portableTypeName(desc.ElemDesc), desc.Len)
	case ScaleCompactType:
		return fmt.Sprintf("Compact<%v>", portableTypeName(desc.ElemDesc))
	case ScaleSequenceType:
		return fmt.Sprintf("Vec<%v>", portableTypeName(desc.ElemDesc))
	case ScaleTupleType:
		elems := make([]string, len(desc.Fields))
		for i, field := range desc.Fields {
			elems[i] = portableTypeName(field.Type)
		}
		if len(elems) == 1 {
			return fmt.Sprintf("(%v,)", elems[0])
		}
		return fmt.Sprintf("(%v)", strings.Join(elems, ", "))
	}

	if desc.ScaleType.IsPrimitive() {
		return desc.ScaleType.String()
	}

	return fmt.Sprintf("%v%d", PortableNamePrefix, *desc.Id)
}
