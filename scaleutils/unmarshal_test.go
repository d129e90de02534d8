// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := FromHex(s)
	require.NoError(t, err)
	return b
}

func TestUnmarshalCompact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		consumed int
	}{
		{"zero", "0x00", "0", 1},
		{"single byte one", "0x04", "1", 1},
		{"single byte max", "0xfc", "63", 1},
		{"two byte min", "0x0101", "64", 2},
		{"two byte 255", "0xfc03", "255", 2},
		{"two byte max", "0xfdff", "16383", 2},
		{"four byte min", "0x02000100", "16384", 4},
		{"four byte max", "0xfeffffff", "1073741823", 4},
		{"big int min", "0x0300000040", "1073741824", 5},
		{"big int u32 max", "0x03ffffffff", "4294967295", 5},
		{"big int u64 max", "0x13ffffffffffffffff", "18446744073709551615", 9},
		{"big int u128", "0x33000000000000000000000000000000ff", "338953138925153547590470800371487866880", 17},
		{"trailing bytes ignored", "0x04ffff", "1", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			val, consumed, err := UnmarshalCompact(mustHex(t, test.input))
			require.NoError(t, err)
			require.Equal(t, test.expected, val.ToBig().String())
			require.Equal(t, test.consumed, consumed)
		})
	}
}

func TestUnmarshalCompactBigIntMatchesDirectDecode(t *testing.T) {
	for _, v := range []uint32{0, 1, 255, 65536, 0xdeadbeef, 0xffffffff} {
		raw := make([]byte, 5)
		raw[0] = 0x03
		binary.LittleEndian.PutUint32(raw[1:], v)

		val, consumed, err := UnmarshalCompact(raw)
		require.NoError(t, err)
		require.Equal(t, 5, consumed)
		require.True(t, val.IsUint64())
		require.Equal(t, uint64(binary.LittleEndian.Uint32(raw[1:])), val.Uint64())
	}
}

func TestUnmarshalCompactErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		expectedErr error
	}{
		{"empty", []byte{}, ErrOutOfBounds},
		{"truncated two byte", []byte{0x01}, ErrInvalidCompactEncoding},
		{"truncated four byte", []byte{0x02, 0x00, 0x00}, ErrInvalidCompactEncoding},
		{"truncated big int", []byte{0x03, 0x01, 0x02}, ErrInvalidCompactEncoding},
		{"too wide", append([]byte{0xff}, make([]byte, 67)...), ErrInvalidCompactEncoding},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := UnmarshalCompact(test.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, test.expectedErr), "unexpected error: %v", err)
		})
	}
}

func TestUnmarshalIntLE(t *testing.T) {
	neg := UnmarshalIntLE([]byte{0xfe, 0xff})
	require.Equal(t, -1, neg.Sign())
	require.Equal(t, uint64(2), new(uint256.Int).Neg(neg).Uint64())

	pos := UnmarshalIntLE([]byte{0x02, 0x00})
	require.Equal(t, uint64(2), pos.Uint64())
}

func TestBytesFromInts(t *testing.T) {
	buf, err := BytesFromInts([]int{0, 1, 255})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 255}, buf)

	_, err = BytesFromInts([]int{256})
	require.ErrorIs(t, err, ErrInvalidValueRange)

	_, err = BytesFromInts([]int{-1})
	require.ErrorIs(t, err, ErrInvalidValueRange)
}
