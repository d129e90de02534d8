// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"fmt"
)

type ScaleType uint8

const (
	ScaleUnspecifiedType ScaleType = iota

	// basic types
	ScaleBoolType
	ScaleCharType
	ScaleStrType
	ScaleUint8Type
	ScaleUint16Type
	ScaleUint32Type
	ScaleUint64Type
	ScaleUint128Type
	ScaleUint256Type
	ScaleInt8Type
	ScaleInt16Type
	ScaleInt32Type
	ScaleInt64Type
	ScaleInt128Type
	ScaleInt256Type

	// complex types
	ScaleCompactType
	ScaleCompositeType
	ScaleTupleType
	ScaleVariantType
	ScaleSequenceType
	ScaleArrayType
	ScaleOptionType
	ScaleBitSequenceType
)

var primitiveNames = map[string]ScaleType{
	"bool": ScaleBoolType,
	"char": ScaleCharType,
	"str":  ScaleStrType,
	"u8":   ScaleUint8Type,
	"u16":  ScaleUint16Type,
	"u32":  ScaleUint32Type,
	"u64":  ScaleUint64Type,
	"u128": ScaleUint128Type,
	"u256": ScaleUint256Type,
	"i8":   ScaleInt8Type,
	"i16":  ScaleInt16Type,
	"i32":  ScaleInt32Type,
	"i64":  ScaleInt64Type,
	"i128": ScaleInt128Type,
	"i256": ScaleInt256Type,
}

// ParsePrimitiveType maps a primitive type name (as used in type strings and in the
// portable registry "primitive" definition) to its ScaleType.
func ParsePrimitiveType(typeStr string) (ScaleType, error) {
	if scaleType, ok := primitiveNames[typeStr]; ok {
		return scaleType, nil
	}
	return ScaleUnspecifiedType, fmt.Errorf("invalid primitive type '%v'", typeStr)
}

// IsPrimitive reports whether values of this type are decoded without recursion.
func (t ScaleType) IsPrimitive() bool {
	return t >= ScaleBoolType && t <= ScaleInt256Type
}

// IsUnsigned reports whether the type is a fixed width unsigned integer.
func (t ScaleType) IsUnsigned() bool {
	return t >= ScaleUint8Type && t <= ScaleUint256Type
}

// IsSigned reports whether the type is a fixed width signed integer.
func (t ScaleType) IsSigned() bool {
	return t >= ScaleInt8Type && t <= ScaleInt256Type
}

// Size returns the encoded size of fixed width primitives, 0 for everything else.
func (t ScaleType) Size() uint32 {
	switch t {
	case ScaleBoolType, ScaleUint8Type, ScaleInt8Type:
		return 1
	case ScaleUint16Type, ScaleInt16Type:
		return 2
	case ScaleCharType, ScaleUint32Type, ScaleInt32Type:
		return 4
	case ScaleUint64Type, ScaleInt64Type:
		return 8
	case ScaleUint128Type, ScaleInt128Type:
		return 16
	case ScaleUint256Type, ScaleInt256Type:
		return 32
	}
	return 0
}

func (t ScaleType) String() string {
	for name, scaleType := range primitiveNames {
		if scaleType == t {
			return name
		}
	}
	switch t {
	case ScaleCompactType:
		return "compact"
	case ScaleCompositeType:
		return "composite"
	case ScaleTupleType:
		return "tuple"
	case ScaleVariantType:
		return "variant"
	case ScaleSequenceType:
		return "sequence"
	case ScaleArrayType:
		return "array"
	case ScaleOptionType:
		return "option"
	case ScaleBitSequenceType:
		return "bitsequence"
	}
	return "unspecified"
}
