// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package dynscale

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/holiman/uint256"
	"github.com/pk910/dynamic-scale/scaleutils"
	"gopkg.in/yaml.v3"
)

type ValueKind uint8

const (
	ValueInteger   ValueKind = iota // Int (two's complement when Signed)
	ValueBool                       // Bool
	ValueBytes                      // Bytes, decoded from Vec<u8>
	ValueString                     // Str
	ValueSequence                   // Elems
	ValueStruct                     // Fields in declaration order
	ValueTuple                      // Elems, also used for fixed arrays and unnamed composites
	ValueVariant                    // Variant, Index and the optional payload in Inner
	ValueAbsent                     // Option without value
	ValueSome                       // Option with value in Inner
	ValueAccountId                  // 32 raw bytes in Bytes
)

func (k ValueKind) String() string {
	switch k {
	case ValueInteger:
		return "integer"
	case ValueBool:
		return "bool"
	case ValueBytes:
		return "bytes"
	case ValueString:
		return "string"
	case ValueSequence:
		return "sequence"
	case ValueStruct:
		return "struct"
	case ValueTuple:
		return "tuple"
	case ValueVariant:
		return "variant"
	case ValueAbsent:
		return "absent"
	case ValueSome:
		return "some"
	case ValueAccountId:
		return "accountid"
	}
	return "unknown"
}

// Value is a node of the decoded value tree.
type Value struct {
	Kind    ValueKind
	Int     *uint256.Int
	Signed  bool
	Bool    bool
	Bytes   []byte
	Str     string
	Elems   []*Value
	Fields  *orderedmap.OrderedMap[string, *Value]
	Variant string
	Index   uint8
	Inner   *Value
}

func newUintValue(value *uint256.Int) *Value {
	return &Value{Kind: ValueInteger, Int: value}
}

func newIntValue(value *uint256.Int) *Value {
	return &Value{Kind: ValueInteger, Int: value, Signed: true}
}

// NewUint64Value creates an unsigned integer value.
func NewUint64Value(value uint64) *Value {
	return newUintValue(uint256.NewInt(value))
}

// IsNegative reports whether the value is a signed integer below zero.
func (v *Value) IsNegative() bool {
	return v.Kind == ValueInteger && v.Signed && v.Int.Sign() < 0
}

// Uint64 returns the value of a non-negative integer that fits into 64 bits.
func (v *Value) Uint64() (uint64, error) {
	if v.Kind != ValueInteger {
		return 0, fmt.Errorf("%w: expected integer, got %v", scaleutils.ErrInvalidValueRange, v.Kind)
	}
	if v.IsNegative() || !v.Int.IsUint64() {
		return 0, fmt.Errorf("%w: %v does not fit into uint64", scaleutils.ErrInvalidValueRange, v.BigInt())
	}
	return v.Int.Uint64(), nil
}

// BigInt returns the integer value as big.Int, honoring the sign of signed integers.
func (v *Value) BigInt() *big.Int {
	if v.Kind != ValueInteger || v.Int == nil {
		return nil
	}
	if v.IsNegative() {
		abs := new(uint256.Int).Neg(v.Int).ToBig()
		return abs.Neg(abs)
	}
	return v.Int.ToBig()
}

// AsBool returns the value of a bool node.
func (v *Value) AsBool() (bool, error) {
	if v.Kind != ValueBool {
		return false, fmt.Errorf("%w: expected bool, got %v", scaleutils.ErrInvalidValueRange, v.Kind)
	}
	return v.Bool, nil
}

// AsBytes returns the raw bytes of Bytes and AccountId values and collects the byte
// values of integer tuples and sequences (the legacy shape of byte arrays).
func (v *Value) AsBytes() ([]byte, error) {
	switch v.Kind {
	case ValueBytes, ValueAccountId:
		return v.Bytes, nil
	case ValueString:
		return []byte(v.Str), nil
	case ValueTuple, ValueSequence:
		elems := v.Elems
		if len(elems) == 1 && (elems[0].Kind == ValueTuple || elems[0].Kind == ValueAccountId) {
			// AccountId32 composite: ((32 bytes),)
			return elems[0].AsBytes()
		}

		buf := make([]byte, len(elems))
		for i, elem := range elems {
			value, err := elem.Uint64()
			if err != nil || value > 0xff {
				return nil, fmt.Errorf("%w: element %d is not a byte", scaleutils.ErrInvalidValueRange, i)
			}
			buf[i] = byte(value)
		}
		return buf, nil
	}
	return nil, fmt.Errorf("%w: expected bytes, got %v", scaleutils.ErrInvalidValueRange, v.Kind)
}

// Field returns a named struct field.
func (v *Value) Field(name string) (*Value, bool) {
	if v.Kind != ValueStruct || v.Fields == nil {
		return nil, false
	}
	return v.Fields.Get(name)
}

// Elements returns the elements of sequences and tuples.
func (v *Value) Elements() []*Value {
	switch v.Kind {
	case ValueSequence, ValueTuple:
		return v.Elems
	}
	return nil
}

// IsAbsent reports whether the value is an empty option.
func (v *Value) IsAbsent() bool {
	return v.Kind == ValueAbsent
}

// Unwrap returns the payload of Some values and the value itself otherwise.
func (v *Value) Unwrap() *Value {
	if v.Kind == ValueSome {
		return v.Inner
	}
	return v
}

func (v *Value) String() string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%v: %v>", v.Kind, err)
	}
	return string(data)
}

// Interface converts the tree into plain go values: integers to uint64/int64 when they
// fit (big.Int otherwise), structs to ordered maps, variants to a single key map.
func (v *Value) Interface() any {
	switch v.Kind {
	case ValueInteger:
		if v.IsNegative() {
			bigValue := v.BigInt()
			if bigValue.IsInt64() {
				return bigValue.Int64()
			}
			return bigValue
		}
		if v.Int.IsUint64() {
			return v.Int.Uint64()
		}
		return v.Int.ToBig()
	case ValueBool:
		return v.Bool
	case ValueBytes, ValueAccountId:
		return "0x" + hex.EncodeToString(v.Bytes)
	case ValueString:
		return v.Str
	case ValueSequence, ValueTuple:
		elems := make([]any, len(v.Elems))
		for i, elem := range v.Elems {
			elems[i] = elem.Interface()
		}
		return elems
	case ValueStruct:
		fields := orderedmap.NewOrderedMapWithCapacity[string, any](v.Fields.Len())
		for name, field := range v.Fields.AllFromFront() {
			fields.Set(name, field.Interface())
		}
		return fields
	case ValueVariant:
		if v.Inner == nil {
			return v.Variant
		}
		return map[string]any{v.Variant: v.Inner.Interface()}
	case ValueAbsent:
		return nil
	case ValueSome:
		return v.Inner.Interface()
	}
	return nil
}

func (v *Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueInteger:
		return []byte(v.BigInt().String()), nil
	case ValueStruct:
		buf := []byte{'{'}
		idx := 0
		for name, field := range v.Fields.AllFromFront() {
			if idx > 0 {
				buf = append(buf, ',')
			}
			idx++

			buf = strconv.AppendQuote(buf, name)
			buf = append(buf, ':')

			fieldJson, err := field.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, fieldJson...)
		}
		return append(buf, '}'), nil
	case ValueSequence, ValueTuple:
		if v.Elems == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Elems)
	case ValueVariant:
		if v.Inner == nil {
			return json.Marshal(v.Variant)
		}
		return json.Marshal(map[string]*Value{v.Variant: v.Inner})
	case ValueSome:
		return v.Inner.MarshalJSON()
	}
	return json.Marshal(v.Interface())
}

// MarshalYAML renders the tree as yaml node, keeping the struct field order.
func (v *Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v *Value) yamlNode() *yaml.Node {
	switch v.Kind {
	case ValueInteger:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.BigInt().String()}
	case ValueBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case ValueBytes, ValueAccountId, ValueString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(v.Interface())}
	case ValueSequence, ValueTuple:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v.Elems {
			node.Content = append(node.Content, elem.yamlNode())
		}
		return node
	case ValueStruct:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for name, field := range v.Fields.AllFromFront() {
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, field.yamlNode())
		}
		return node
	case ValueVariant:
		if v.Inner == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Variant}
		}
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Variant},
			v.Inner.yamlNode(),
		}}
	case ValueSome:
		return v.Inner.yamlNode()
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
