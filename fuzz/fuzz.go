// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package fuzz

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/pk910/dynamic-scale/scaletypes"
)

// maxNestingDepth limits the nesting of generated payloads for recursive types.
const maxNestingDepth = 8

// Fuzzer generates random SCALE payloads that match a type descriptor.
type Fuzzer struct {
	r        *rand.Rand
	edgeProb float64 // probability of generating edge case values
	maxLen   int     // maximum generated sequence length
}

// NewFuzzer creates a new fuzzer with optional seed
func NewFuzzer(seed int64) *Fuzzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Fuzzer{
		r:        rand.New(rand.NewSource(seed)),
		edgeProb: 0.1,
		maxLen:   8,
	}
}

// SetEdgeCaseProbability sets the probability of generating boundary values
func (f *Fuzzer) SetEdgeCaseProbability(prob float64) {
	f.edgeProb = prob
}

// SetMaxLength sets the maximum length of generated sequences and strings
func (f *Fuzzer) SetMaxLength(maxLen int) {
	f.maxLen = maxLen
}

// Generate returns a valid encoding of a random value of the given type.
func (f *Fuzzer) Generate(desc *scaletypes.TypeDescriptor) ([]byte, error) {
	return f.appendValue(nil, desc, 0)
}

// Mutate returns a damaged copy of data: truncated, extended or with flipped bits.
func (f *Fuzzer) Mutate(data []byte) []byte {
	res := append([]byte(nil), data...)

	switch f.r.Intn(3) {
	case 0:
		if len(res) > 0 {
			res = res[:f.r.Intn(len(res))]
		}
	case 1:
		extra := make([]byte, 1+f.r.Intn(4))
		f.r.Read(extra)
		res = append(res, extra...)
	default:
		if len(res) > 0 {
			idx := f.r.Intn(len(res))
			res[idx] ^= byte(1 << f.r.Intn(8))
		}
	}

	return res
}

func (f *Fuzzer) edgeCase() bool {
	return f.r.Float64() < f.edgeProb
}

func (f *Fuzzer) length(depth int) int {
	if depth >= maxNestingDepth {
		return 0
	}
	if f.edgeCase() {
		return 0
	}
	return f.r.Intn(f.maxLen + 1)
}

// randomUint returns random bytes for an unsigned integer of the given width, preferring
// the boundary values when edge cases are requested.
func (f *Fuzzer) randomUint(size int) []byte {
	buf := make([]byte, size)
	if f.edgeCase() {
		if f.r.Intn(2) == 0 {
			for i := range buf {
				buf[i] = 0xff
			}
		}
		return buf
	}
	f.r.Read(buf)
	return buf
}

func (f *Fuzzer) appendValue(buf []byte, desc *scaletypes.TypeDescriptor, depth int) ([]byte, error) {
	switch desc.ScaleType {
	case scaletypes.ScaleBoolType:
		return append(buf, byte(f.r.Intn(2))), nil

	case scaletypes.ScaleCharType:
		char := rune(f.r.Intn(0x10ffff))
		if !utf8.ValidRune(char) {
			char = 'x'
		}
		return binary.LittleEndian.AppendUint32(buf, uint32(char)), nil

	case scaletypes.ScaleStrType:
		text := make([]byte, f.length(depth))
		for i := range text {
			text[i] = byte('a' + f.r.Intn(26))
		}
		buf = appendCompact(buf, uint64(len(text)))
		return append(buf, text...), nil

	case scaletypes.ScaleUint8Type, scaletypes.ScaleUint16Type, scaletypes.ScaleUint32Type, scaletypes.ScaleUint64Type,
		scaletypes.ScaleUint128Type, scaletypes.ScaleUint256Type, scaletypes.ScaleInt8Type, scaletypes.ScaleInt16Type,
		scaletypes.ScaleInt32Type, scaletypes.ScaleInt64Type, scaletypes.ScaleInt128Type, scaletypes.ScaleInt256Type:
		return append(buf, f.randomUint(int(desc.ScaleType.Size()))...), nil

	case scaletypes.ScaleCompactType:
		return f.appendCompactValue(buf, desc)

	case scaletypes.ScaleCompositeType, scaletypes.ScaleTupleType:
		return f.appendFields(buf, desc.Fields, depth)

	case scaletypes.ScaleArrayType:
		var err error
		for i := uint32(0); i < desc.Len; i++ {
			buf, err = f.appendValue(buf, desc.ElemDesc, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	case scaletypes.ScaleSequenceType:
		length := f.length(depth)
		buf = appendCompact(buf, uint64(length))
		var err error
		for i := 0; i < length; i++ {
			buf, err = f.appendValue(buf, desc.ElemDesc, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	case scaletypes.ScaleOptionType:
		if depth >= maxNestingDepth || f.r.Intn(2) == 0 {
			return append(buf, 0), nil
		}
		return f.appendValue(append(buf, 1), desc.ElemDesc, depth+1)

	case scaletypes.ScaleVariantType:
		if len(desc.Variants) == 0 {
			return nil, fmt.Errorf("variant %v has no variants", desc.Name)
		}
		variant := &desc.Variants[f.r.Intn(len(desc.Variants))]
		if depth >= maxNestingDepth {
			// pick the variant with the smallest payload to end the recursion
			for i := range desc.Variants {
				if len(desc.Variants[i].Fields) < len(variant.Fields) {
					variant = &desc.Variants[i]
				}
			}
		}
		return f.appendFields(append(buf, variant.Index), variant.Fields, depth)
	}

	return nil, fmt.Errorf("cannot generate values for %v (%v)", desc.Name, desc.ScaleType)
}

func (f *Fuzzer) appendFields(buf []byte, fields []scaletypes.FieldDescriptor, depth int) ([]byte, error) {
	var err error
	for _, field := range fields {
		buf, err = f.appendValue(buf, field.Type, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (f *Fuzzer) appendCompactValue(buf []byte, desc *scaletypes.TypeDescriptor) ([]byte, error) {
	inner := desc.ElemDesc
	for (inner.ScaleType == scaletypes.ScaleCompositeType || inner.ScaleType == scaletypes.ScaleTupleType) && len(inner.Fields) == 1 {
		inner = inner.Fields[0].Type
	}
	if !inner.ScaleType.IsUnsigned() {
		return nil, fmt.Errorf("cannot generate compact values for %v", inner.Name)
	}

	size := int(inner.ScaleType.Size())
	if size > 8 {
		size = 8
	}

	var value uint64
	if !f.edgeCase() {
		value = f.r.Uint64()
		// spread the values over all compact modes
		value >>= uint(f.r.Intn(64))
	} else if f.r.Intn(2) == 0 {
		value = ^uint64(0)
	}
	if size < 8 {
		value &= (1 << (size * 8)) - 1
	}

	return appendCompact(buf, value), nil
}

func appendCompact(buf []byte, value uint64) []byte {
	switch {
	case value < 1<<6:
		return append(buf, byte(value<<2))
	case value < 1<<14:
		return binary.LittleEndian.AppendUint16(buf, uint16(value<<2|1))
	case value < 1<<30:
		return binary.LittleEndian.AppendUint32(buf, uint32(value<<2|2))
	}

	payload := binary.LittleEndian.AppendUint64(nil, value)
	for len(payload) > 4 && payload[len(payload)-1] == 0 {
		payload = payload[:len(payload)-1]
	}
	buf = append(buf, byte(len(payload)-4)<<2|3)
	return append(buf, payload...)
}
