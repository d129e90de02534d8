// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"fmt"
	"sync"

	"github.com/pk910/dynamic-scale/scaleutils"
)

// TypeCache manages cached type descriptors for type strings resolved against a sealed registry.
type TypeCache struct {
	registry    *Registry
	mutex       sync.RWMutex
	descriptors map[string]*TypeDescriptor
}

// NewTypeCache creates a new type cache on top of the given registry.
// The registry is sealed if the caller did not do so already.
func NewTypeCache(registry *Registry) *TypeCache {
	registry.Seal()
	return &TypeCache{
		registry:    registry,
		descriptors: make(map[string]*TypeDescriptor),
	}
}

// Registry returns the registry the cache resolves against.
func (tc *TypeCache) Registry() *Registry {
	return tc.registry
}

// GetTypeDescriptor returns a cached type descriptor for the given type string, parsing and
// resolving it if necessary.
//
// The method is thread-safe. Concurrent calls for the same uncached type string may both
// resolve it, the first stored descriptor wins.
//
// Example:
//
//	desc, err := cache.GetTypeDescriptor("Vec<(AccountId, Compact<u64>)>")
//	if err != nil {
//	    log.Fatal("Failed to resolve type:", err)
//	}
func (tc *TypeCache) GetTypeDescriptor(typeStr string) (*TypeDescriptor, error) {
	tc.mutex.RLock()
	if desc, exists := tc.descriptors[typeStr]; exists {
		tc.mutex.RUnlock()
		return desc, nil
	}
	tc.mutex.RUnlock()

	expr, err := ParseTypeString(typeStr)
	if err != nil {
		return nil, err
	}

	desc, err := tc.registry.ResolveTypeExpr(expr)
	if err != nil {
		return nil, err
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if cached, exists := tc.descriptors[typeStr]; exists {
		return cached, nil
	}
	tc.descriptors[typeStr] = desc

	return desc, nil
}

// GetAllTypes returns all type strings currently cached.
func (tc *TypeCache) GetAllTypes() []string {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	types := make([]string, 0, len(tc.descriptors))
	for typeStr := range tc.descriptors {
		types = append(types, typeStr)
	}
	return types
}

// RemoveAllTypes clears the cache.
func (tc *TypeCache) RemoveAllTypes() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.descriptors = make(map[string]*TypeDescriptor)
}

// ResolveTypeExpr builds the descriptor for a parsed type expression. Named leaves are looked
// up in the registry, wrappers get fresh anonymous descriptors.
func (r *Registry) ResolveTypeExpr(expr *TypeExpr) (*TypeDescriptor, error) {
	switch expr.Kind {
	case TypeExprName:
		desc, ok := r.LookupName(expr.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %v", scaleutils.ErrUnknownType, expr.Name)
		}
		return desc, nil

	case TypeExprCompact, TypeExprSequence, TypeExprOption:
		elemDesc, err := r.ResolveTypeExpr(expr.Elems[0])
		if err != nil {
			return nil, err
		}

		desc := &TypeDescriptor{
			Name:     expr.String(),
			ElemDesc: elemDesc,
		}

		switch expr.Kind {
		case TypeExprCompact:
			if err := checkCompactInner(elemDesc); err != nil {
				return nil, err
			}
			desc.ScaleType = ScaleCompactType
		case TypeExprSequence:
			desc.ScaleType = ScaleSequenceType
		case TypeExprOption:
			desc.ScaleType = ScaleOptionType
		}

		return desc, nil

	case TypeExprTuple:
		desc := &TypeDescriptor{
			Name:      expr.String(),
			ScaleType: ScaleTupleType,
			Fields:    make([]FieldDescriptor, len(expr.Elems)),
		}

		for i, elem := range expr.Elems {
			elemDesc, err := r.ResolveTypeExpr(elem)
			if err != nil {
				return nil, err
			}
			desc.Fields[i] = FieldDescriptor{
				TypeName: elem.String(),
				Type:     elemDesc,
			}
		}

		return desc, nil

	case TypeExprArray:
		elemDesc, err := r.ResolveTypeExpr(expr.Elems[0])
		if err != nil {
			return nil, err
		}

		length, err := r.EvaluateLength(expr.Len)
		if err != nil {
			return nil, err
		}

		return &TypeDescriptor{
			Name:      fmt.Sprintf("[%v; %d]", expr.Elems[0], length),
			ScaleType: ScaleArrayType,
			Len:       length,
			ElemDesc:  elemDesc,
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown type expression kind %d", scaleutils.ErrMalformedTypeString, expr.Kind)
}

// checkCompactInner validates the payload of a Compact<T>: an unsigned integer, the unit
// type or a single field wrapper around one of those.
func checkCompactInner(desc *TypeDescriptor) error {
	switch {
	case desc.ScaleType.IsUnsigned():
		return nil
	case (desc.ScaleType == ScaleTupleType || desc.ScaleType == ScaleCompositeType) && len(desc.Fields) == 0:
		return nil
	case (desc.ScaleType == ScaleTupleType || desc.ScaleType == ScaleCompositeType) && len(desc.Fields) == 1:
		return checkCompactInner(desc.Fields[0].Type)
	}
	return fmt.Errorf("%w: compact encoding not supported for %v", scaleutils.ErrUnsupportedType, desc.Name)
}
