// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import (
	"fmt"

	"github.com/holiman/uint256"
)

// MaxCompactBytes is the widest big-integer compact payload we decode (256 bits).
const MaxCompactBytes = 32

// ---- Unmarshal functions ----

// UnmarshalUintLE unmarshals a little endian unsigned integer of up to 32 bytes
func UnmarshalUintLE(src []byte) *uint256.Int {
	var be [32]byte
	n := len(src)
	for i := 0; i < n; i++ {
		be[31-i] = src[i]
	}
	return new(uint256.Int).SetBytes(be[:])
}

// UnmarshalIntLE unmarshals a little endian two's complement integer of up to 32 bytes
// and sign extends it to 256 bits
func UnmarshalIntLE(src []byte) *uint256.Int {
	var be [32]byte
	n := len(src)
	if n > 0 && src[n-1]&0x80 != 0 {
		for i := range be {
			be[i] = 0xff
		}
	}
	for i := 0; i < n; i++ {
		be[31-i] = src[i]
	}
	return new(uint256.Int).SetBytes(be[:])
}

// UnmarshalCompact decodes a SCALE compact integer from the start of src and
// returns the value together with the number of bytes consumed.
//
// The two low bits of the first byte select the mode:
//   - 0b00: single byte, value in the upper six bits
//   - 0b01: two bytes little endian, value shifted left by two
//   - 0b10: four bytes little endian, value shifted left by two
//   - 0b11: upper six bits hold (byte count - 4), followed by that many value bytes
func UnmarshalCompact(src []byte) (*uint256.Int, int, error) {
	if len(src) < 1 {
		return nil, 0, ErrOutOfBounds
	}

	b0 := src[0]
	switch b0 & 0x03 {
	case 0x00:
		return uint256.NewInt(uint64(b0 >> 2)), 1, nil
	case 0x01:
		if len(src) < 2 {
			return nil, 0, fmt.Errorf("%w: %w (need 2 bytes, have %d)", ErrInvalidCompactEncoding, ErrOutOfBounds, len(src))
		}
		val := (uint64(b0) | uint64(src[1])<<8) >> 2
		return uint256.NewInt(val), 2, nil
	case 0x02:
		if len(src) < 4 {
			return nil, 0, fmt.Errorf("%w: %w (need 4 bytes, have %d)", ErrInvalidCompactEncoding, ErrOutOfBounds, len(src))
		}
		val := (uint64(b0) | uint64(src[1])<<8 | uint64(src[2])<<16 | uint64(src[3])<<24) >> 2
		return uint256.NewInt(val), 4, nil
	default:
		byteCount := int(b0>>2) + 4
		if byteCount > MaxCompactBytes {
			return nil, 0, fmt.Errorf("%w: %d byte payload exceeds %d bytes", ErrInvalidCompactEncoding, byteCount, MaxCompactBytes)
		}
		if len(src)-1 < byteCount {
			return nil, 0, fmt.Errorf("%w: %w (need %d bytes, have %d)", ErrInvalidCompactEncoding, ErrOutOfBounds, byteCount+1, len(src))
		}
		return UnmarshalUintLE(src[1 : 1+byteCount]), byteCount + 1, nil
	}
}
