// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pk910/dynamic-scale/scaleutils"
)

// PortableNamePrefix is the prefix of numeric registry names ("scale_info::12").
const PortableNamePrefix = "scale_info::"

// Registry maps type ids and type names to descriptors.
//
// A registry is filled by one of the loaders and sealed afterwards. Sealed registries
// are never mutated again and can be shared by any number of concurrent decode calls.
type Registry struct {
	types     map[uint32]*TypeDescriptor
	names     map[string]*TypeDescriptor
	constants map[string]any
	sealed    bool
}

// NewRegistry creates an empty, unsealed registry that knows the primitive types
// and the builtin aliases (Bytes, Text, String).
func NewRegistry() *Registry {
	r := &Registry{
		types:     map[uint32]*TypeDescriptor{},
		names:     map[string]*TypeDescriptor{},
		constants: map[string]any{},
	}

	for name, scaleType := range primitiveNames {
		r.names[name] = &TypeDescriptor{
			Name:      name,
			ScaleType: scaleType,
			Size:      scaleType.Size(),
		}
	}

	r.names["Bytes"] = &TypeDescriptor{
		Name:      "Vec<u8>",
		ScaleType: ScaleSequenceType,
		ElemDesc:  r.names["u8"],
	}
	r.names["Text"] = r.names["str"]
	r.names["String"] = r.names["str"]

	return r
}

// Resolve returns the descriptor registered under the portable type id.
func (r *Registry) Resolve(id uint32) (*TypeDescriptor, error) {
	desc, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: type id %d", scaleutils.ErrUnknownType, id)
	}
	return desc, nil
}

// LookupName resolves a symbolic type name. Besides exact matches it understands
// numeric "scale_info::N" names and falls back to the last segment of path
// qualified names ("T::AccountId" -> "AccountId").
func (r *Registry) LookupName(name string) (*TypeDescriptor, bool) {
	if desc, ok := r.names[name]; ok {
		return desc, true
	}

	if strings.HasPrefix(name, PortableNamePrefix) {
		id, err := strconv.ParseUint(name[len(PortableNamePrefix):], 10, 32)
		if err != nil {
			return nil, false
		}
		desc, ok := r.types[uint32(id)]
		return desc, ok
	}

	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		desc, ok := r.names[name[idx+2:]]
		return desc, ok
	}

	return nil, false
}

// Names returns all registered type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeIds returns all registered portable type ids in ascending order.
func (r *Registry) TypeIds() []uint32 {
	ids := make([]uint32, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Constant returns a named constant usable in array length expressions.
func (r *Registry) Constant(name string) (any, bool) {
	value, ok := r.constants[name]
	return value, ok
}

func (r *Registry) AddType(id uint32, desc *TypeDescriptor) error {
	if r.sealed {
		return fmt.Errorf("registry is sealed")
	}
	if _, exists := r.types[id]; exists {
		return fmt.Errorf("%w: duplicate type id %d", scaleutils.ErrRegistryLoad, id)
	}
	r.types[id] = desc
	return nil
}

func (r *Registry) AddName(name string, desc *TypeDescriptor) error {
	if r.sealed {
		return fmt.Errorf("registry is sealed")
	}
	r.names[name] = desc
	return nil
}

func (r *Registry) SetConstant(name string, value any) error {
	if r.sealed {
		return fmt.Errorf("registry is sealed")
	}
	r.constants[name] = value
	return nil
}

// Seal freezes the registry. All loaders seal the registries they return.
func (r *Registry) Seal() {
	r.sealed = true
}

func (r *Registry) IsSealed() bool {
	return r.sealed
}
