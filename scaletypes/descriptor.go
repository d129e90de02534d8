// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

// TypeFlag is a flag indicating whether a type has a specific decoding feature
type TypeFlag uint8

const (
	TypeFlagIsAccountId TypeFlag = 1 << iota // 32 byte account identifier, decoded as one value in non-legacy mode
)

// TypeDescriptor describes how a single type is laid out on the wire.
// Child references are pointers, so recursive portable types form cycles.
type TypeDescriptor struct {
	Id        *uint32             `json:"id,omitempty"`       // Portable registry id (nil for anonymous types)
	Name      string              `json:"name"`               // Display name / type string
	Path      []string            `json:"path,omitempty"`     // Portable path segments
	ScaleType ScaleType           `json:"type"`               // Kind of the type
	Size      uint32              `json:"size,omitempty"`     // Encoded size of fixed width primitives
	Len       uint32              `json:"len,omitempty"`      // Length of arrays
	Fields    []FieldDescriptor   `json:"fields,omitempty"`   // Composite fields / tuple elements
	Variants  []VariantDescriptor `json:"variants,omitempty"` // Enum variants in declaration order
	ElemDesc  *TypeDescriptor     `json:"elem,omitempty"`     // Element type for sequence, array, option and compact
	TypeFlags TypeFlag            `json:"flags,omitempty"`
}

// FieldDescriptor describes one field of a composite, tuple or variant payload.
type FieldDescriptor struct {
	Name     string          `json:"name,omitempty"`
	TypeName string          `json:"type_name,omitempty"`
	Type     *TypeDescriptor `json:"-"`
}

// VariantDescriptor describes one enum variant.
type VariantDescriptor struct {
	Index  uint8             `json:"index"`
	Name   string            `json:"name"`
	Fields []FieldDescriptor `json:"fields,omitempty"`
}

func (d *TypeDescriptor) HasFlag(flag TypeFlag) bool {
	return d.TypeFlags&flag != 0
}

func (d *TypeDescriptor) IsAccountId() bool {
	return d.TypeFlags&TypeFlagIsAccountId != 0
}

// GetVariant returns the variant declared with the given index.
func (d *TypeDescriptor) GetVariant(index uint8) (*VariantDescriptor, bool) {
	for i := range d.Variants {
		if d.Variants[i].Index == index {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// GetField returns the field with the given name.
func (d *TypeDescriptor) GetField(name string) (*FieldDescriptor, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

func (d *TypeDescriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.Name
}

// isByteArray32 reports whether the descriptor is [u8; 32] or a single field
// composite wrapping it.
func (d *TypeDescriptor) isByteArray32() bool {
	switch d.ScaleType {
	case ScaleArrayType:
		return d.Len == 32 && d.ElemDesc != nil && d.ElemDesc.ScaleType == ScaleUint8Type
	case ScaleCompositeType:
		return len(d.Fields) == 1 && d.Fields[0].Type != nil && d.Fields[0].Type.ScaleType == ScaleArrayType && d.Fields[0].Type.isByteArray32()
	}
	return false
}

func isAccountIdName(name string) bool {
	return name == "AccountId" || name == "AccountId32"
}
