// dynscale: Dynamic SCALE decoding driven by runtime type registries.
// This file is part of the dynscale package.
// Copyright (c) 2025 by pk910. Refer to LICENSE for more information.
package dynscale

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/pk910/dynamic-scale/scaletypes"
	"github.com/pk910/dynamic-scale/scaleutils"
)

// maxDecodeDepth bounds the nesting of self referencing registry types.
const maxDecodeDepth = 512

// decodeType is the core recursive function for decoding SCALE data into a value tree.
//
// It dispatches on the ScaleType of the descriptor and reads from the shared decoder, so
// every nested call continues at the position the previous one stopped. Failures are
// wrapped into a scaleutils.DecodeError at the innermost level and get field / element
// context on the way up.
//
// Parameters:
//   - sourceType: The TypeDescriptor of the value to decode
//   - dec: The byte cursor
//   - cfg: The per-call options
//   - idt: Nesting depth, used for verbose log indentation
func (d *DynScale) decodeType(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	offset := dec.GetPosition()

	if d.Verbose {
		d.LogCb("%stype: %s\t kind: %v\t offset: %d", strings.Repeat(" ", idt), sourceType.Name, sourceType.ScaleType, offset)
	}

	if idt > maxDecodeDepth {
		return nil, scaleutils.NewDecodeError(offset, sourceType.Name, fmt.Errorf("%w: maximum nesting depth exceeded", scaleutils.ErrUnsupportedType))
	}

	value, err := d.decodeValue(sourceType, dec, cfg, idt)
	if err != nil {
		return nil, scaleutils.NewDecodeError(offset, sourceType.Name, err)
	}

	return value, nil
}

func (d *DynScale) decodeValue(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	switch sourceType.ScaleType {
	case scaletypes.ScaleBoolType:
		value, err := dec.DecodeBool()
		if err != nil {
			return nil, err
		}
		return &Value{Kind: ValueBool, Bool: value}, nil

	case scaletypes.ScaleCharType:
		value, err := dec.DecodeUint32()
		if err != nil {
			return nil, err
		}
		if !utf8.ValidRune(rune(value)) {
			return nil, fmt.Errorf("%w: invalid char 0x%x", scaleutils.ErrInvalidValueRange, value)
		}
		return &Value{Kind: ValueString, Str: string(rune(value))}, nil

	case scaletypes.ScaleStrType:
		return d.decodeString(dec)

	case scaletypes.ScaleUint8Type:
		value, err := dec.DecodeUint8()
		if err != nil {
			return nil, err
		}
		return NewUint64Value(uint64(value)), nil
	case scaletypes.ScaleUint16Type:
		value, err := dec.DecodeUint16()
		if err != nil {
			return nil, err
		}
		return NewUint64Value(uint64(value)), nil
	case scaletypes.ScaleUint32Type:
		value, err := dec.DecodeUint32()
		if err != nil {
			return nil, err
		}
		return NewUint64Value(uint64(value)), nil
	case scaletypes.ScaleUint64Type:
		value, err := dec.DecodeUint64()
		if err != nil {
			return nil, err
		}
		return NewUint64Value(value), nil
	case scaletypes.ScaleUint128Type:
		value, err := dec.DecodeUint128()
		if err != nil {
			return nil, err
		}
		return newUintValue(value), nil
	case scaletypes.ScaleUint256Type:
		value, err := dec.DecodeUint256()
		if err != nil {
			return nil, err
		}
		return newUintValue(value), nil

	case scaletypes.ScaleInt8Type, scaletypes.ScaleInt16Type, scaletypes.ScaleInt32Type,
		scaletypes.ScaleInt64Type, scaletypes.ScaleInt128Type, scaletypes.ScaleInt256Type:
		value, err := dec.DecodeInt(int(sourceType.ScaleType.Size()))
		if err != nil {
			return nil, err
		}
		return newIntValue(value), nil

	case scaletypes.ScaleCompactType:
		return d.decodeCompact(sourceType, dec)

	case scaletypes.ScaleCompositeType:
		if sourceType.IsAccountId() && !cfg.legacyAccountId {
			return d.decodeAccountId(dec)
		}
		return d.decodeFields(sourceType.Fields, dec, cfg, idt)

	case scaletypes.ScaleTupleType:
		return d.decodeFields(sourceType.Fields, dec, cfg, idt)

	case scaletypes.ScaleArrayType:
		if sourceType.IsAccountId() && !cfg.legacyAccountId {
			return d.decodeAccountId(dec)
		}
		return d.decodeArray(sourceType, dec, cfg, idt)

	case scaletypes.ScaleSequenceType:
		return d.decodeSequence(sourceType, dec, cfg, idt)

	case scaletypes.ScaleOptionType:
		return d.decodeOption(sourceType, dec, cfg, idt)

	case scaletypes.ScaleVariantType:
		return d.decodeVariant(sourceType, dec, cfg, idt)

	case scaletypes.ScaleBitSequenceType:
		return nil, fmt.Errorf("%w: bit sequences are not supported", scaleutils.ErrUnsupportedType)
	}

	return nil, fmt.Errorf("%w: %v", scaleutils.ErrUnsupportedType, sourceType.ScaleType)
}

func (d *DynScale) decodeString(dec scaleutils.Decoder) (*Value, error) {
	length, err := dec.DecodeCompactUint64()
	if err != nil {
		return nil, err
	}
	if length > uint64(dec.GetLength()) {
		return nil, fmt.Errorf("%w: string length %d exceeds remaining %d bytes", scaleutils.ErrOutOfBounds, length, dec.GetLength())
	}

	buf, err := dec.DecodeBytesBuf(int(length))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(buf) {
		return nil, fmt.Errorf("%w: string is not valid utf-8", scaleutils.ErrInvalidValueRange)
	}

	return &Value{Kind: ValueString, Str: string(buf)}, nil
}

// decodeCompact reads a compact integer and checks it against the width of the inner type.
func (d *DynScale) decodeCompact(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder) (*Value, error) {
	inner := sourceType.ElemDesc
	for (inner.ScaleType == scaletypes.ScaleCompositeType || inner.ScaleType == scaletypes.ScaleTupleType) && len(inner.Fields) == 1 {
		inner = inner.Fields[0].Type
	}

	if !inner.ScaleType.IsUnsigned() {
		// Compact<()>
		if len(inner.Fields) == 0 && (inner.ScaleType == scaletypes.ScaleCompositeType || inner.ScaleType == scaletypes.ScaleTupleType) {
			return &Value{Kind: ValueTuple}, nil
		}
		return nil, fmt.Errorf("%w: compact encoding not supported for %v", scaleutils.ErrUnsupportedType, inner.Name)
	}

	value, err := dec.DecodeCompact()
	if err != nil {
		return nil, err
	}

	if maxBits := int(inner.ScaleType.Size()) * 8; value.BitLen() > maxBits {
		return nil, fmt.Errorf("%w: value %v exceeds %v", scaleutils.ErrInvalidCompactEncoding, value.ToBig(), inner.Name)
	}

	return newUintValue(value), nil
}

func (d *DynScale) decodeAccountId(dec scaleutils.Decoder) (*Value, error) {
	buf, err := dec.DecodeBytesBuf(32)
	if err != nil {
		return nil, err
	}
	return &Value{Kind: ValueAccountId, Bytes: append([]byte(nil), buf...)}, nil
}

// decodeFields decodes composite fields, tuple elements and variant payloads in declaration
// order. Named fields produce a struct, unnamed fields a tuple.
func (d *DynScale) decodeFields(fields []scaletypes.FieldDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	if len(fields) == 0 || fields[0].Name == "" {
		elems := make([]*Value, len(fields))
		for i := range fields {
			elem, err := d.decodeType(fields[i].Type, dec, cfg, idt+2)
			if err != nil {
				return nil, fmt.Errorf("failed decoding element %v: %w", i, err)
			}
			elems[i] = elem
		}
		return &Value{Kind: ValueTuple, Elems: elems}, nil
	}

	values := orderedmap.NewOrderedMapWithCapacity[string, *Value](len(fields))
	for i := range fields {
		field := &fields[i]

		if d.Verbose {
			d.LogCb("%sfield %v", strings.Repeat(" ", idt+1), field.Name)
		}

		fieldValue, err := d.decodeType(field.Type, dec, cfg, idt+2)
		if err != nil {
			return nil, fmt.Errorf("failed decoding field %v: %w", field.Name, err)
		}
		values.Set(field.Name, fieldValue)
	}

	return &Value{Kind: ValueStruct, Fields: values}, nil
}

func (d *DynScale) decodeArray(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	if sourceType.ElemDesc.ScaleType == scaletypes.ScaleUint8Type {
		if uint64(sourceType.Len) > uint64(dec.GetLength()) {
			return nil, fmt.Errorf("%w: byte array length %d exceeds remaining %d bytes", scaleutils.ErrOutOfBounds, sourceType.Len, dec.GetLength())
		}
		buf, err := dec.DecodeBytesBuf(int(sourceType.Len))
		if err != nil {
			return nil, err
		}
		elems := make([]*Value, len(buf))
		for i, b := range buf {
			elems[i] = NewUint64Value(uint64(b))
		}
		return &Value{Kind: ValueTuple, Elems: elems}, nil
	}

	// capacity bounded by the remaining input, zero sized elements grow by append
	elems := make([]*Value, 0, min(uint64(sourceType.Len), uint64(dec.GetLength())))
	for i := uint32(0); i < sourceType.Len; i++ {
		elem, err := d.decodeType(sourceType.ElemDesc, dec, cfg, idt+2)
		if err != nil {
			return nil, fmt.Errorf("failed decoding array element %v: %w", i, err)
		}
		elems = append(elems, elem)
	}

	return &Value{Kind: ValueTuple, Elems: elems}, nil
}

func (d *DynScale) decodeSequence(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	length, err := dec.DecodeCompactUint64()
	if err != nil {
		return nil, err
	}

	if d.Verbose {
		d.LogCb("%slength: %d", strings.Repeat(" ", idt+1), length)
	}

	remaining := uint64(dec.GetLength())

	if sourceType.ElemDesc.ScaleType == scaletypes.ScaleUint8Type {
		if length > remaining {
			return nil, fmt.Errorf("%w: byte sequence length %d exceeds remaining %d bytes", scaleutils.ErrOutOfBounds, length, remaining)
		}
		buf, err := dec.DecodeBytesBuf(int(length))
		if err != nil {
			return nil, err
		}
		return &Value{Kind: ValueBytes, Bytes: append([]byte{}, buf...)}, nil
	}

	// zero sized elements may legitimately outnumber the remaining bytes, only the
	// preallocation is bounded by the input size
	elems := make([]*Value, 0, min(length, remaining))
	for i := uint64(0); i < length; i++ {
		elem, err := d.decodeType(sourceType.ElemDesc, dec, cfg, idt+2)
		if err != nil {
			return nil, fmt.Errorf("failed decoding sequence element %v: %w", i, err)
		}
		elems = append(elems, elem)
	}

	return &Value{Kind: ValueSequence, Elems: elems}, nil
}

func (d *DynScale) decodeOption(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	tag, err := dec.DecodeUint8()
	if err != nil {
		return nil, err
	}

	switch tag {
	case 0:
		return &Value{Kind: ValueAbsent}, nil
	case 1:
		inner, err := d.decodeType(sourceType.ElemDesc, dec, cfg, idt+2)
		if err != nil {
			return nil, fmt.Errorf("failed decoding option value: %w", err)
		}
		return &Value{Kind: ValueSome, Inner: inner}, nil
	}

	return nil, fmt.Errorf("%w: %d", scaleutils.ErrInvalidOptionTag, tag)
}

func (d *DynScale) decodeVariant(sourceType *scaletypes.TypeDescriptor, dec scaleutils.Decoder, cfg *callConfig, idt int) (*Value, error) {
	index, err := dec.DecodeUint8()
	if err != nil {
		return nil, err
	}

	variant, ok := sourceType.GetVariant(index)
	if !ok {
		return nil, fmt.Errorf("%w: index %d of %v", scaleutils.ErrUnknownEnumVariant, index, sourceType.Name)
	}

	if d.Verbose {
		d.LogCb("%svariant: %v (%d)", strings.Repeat(" ", idt+1), variant.Name, index)
	}

	value := &Value{
		Kind:    ValueVariant,
		Variant: variant.Name,
		Index:   index,
	}

	switch {
	case len(variant.Fields) == 0:
	case len(variant.Fields) == 1 && variant.Fields[0].Name == "":
		payload, err := d.decodeType(variant.Fields[0].Type, dec, cfg, idt+2)
		if err != nil {
			return nil, fmt.Errorf("failed decoding variant %v: %w", variant.Name, err)
		}
		value.Inner = payload
	default:
		payload, err := d.decodeFields(variant.Fields, dec, cfg, idt)
		if err != nil {
			return nil, fmt.Errorf("failed decoding variant %v: %w", variant.Name, err)
		}
		value.Inner = payload
	}

	return value, nil
}
