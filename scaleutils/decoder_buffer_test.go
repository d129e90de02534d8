// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestBufferDecoderPrimitives(t *testing.T) {
	dec := NewBufferDecoder(mustHex(t, "0x01002a39050000e7c9b9309c4f7572c5000000"))

	b, err := dec.DecodeBool()
	require.NoError(t, err)
	require.True(t, b)

	b, err = dec.DecodeBool()
	require.NoError(t, err)
	require.False(t, b)

	u8, err := dec.DecodeUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(42), u8)

	u16, err := dec.DecodeUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(1337), u16)

	_, err = dec.DecodeUint8()
	require.NoError(t, err)
	_, err = dec.DecodeUint8()
	require.NoError(t, err)

	u32, err := dec.DecodeUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(817482215), u32)

	u64, err := dec.DecodeUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(848028848028), u64)

	require.Equal(t, 0, dec.GetLength())
	require.Equal(t, 19, dec.GetPosition())
}

func TestBufferDecoderOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		decode func(d *BufferDecoder) error
	}{
		{"bool", []byte{}, func(d *BufferDecoder) error { _, err := d.DecodeBool(); return err }},
		{"uint8", []byte{}, func(d *BufferDecoder) error { _, err := d.DecodeUint8(); return err }},
		{"uint16", []byte{1}, func(d *BufferDecoder) error { _, err := d.DecodeUint16(); return err }},
		{"uint32", []byte{1, 2, 3}, func(d *BufferDecoder) error { _, err := d.DecodeUint32(); return err }},
		{"uint64", make([]byte, 7), func(d *BufferDecoder) error { _, err := d.DecodeUint64(); return err }},
		{"uint128", make([]byte, 15), func(d *BufferDecoder) error { _, err := d.DecodeUint128(); return err }},
		{"uint256", make([]byte, 31), func(d *BufferDecoder) error { _, err := d.DecodeUint256(); return err }},
		{"bytes", make([]byte, 3), func(d *BufferDecoder) error { _, err := d.DecodeBytesBuf(4); return err }},
		{"compact", []byte{}, func(d *BufferDecoder) error { _, err := d.DecodeCompact(); return err }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dec := NewBufferDecoder(test.input)
			err := test.decode(dec)
			require.ErrorIs(t, err, ErrOutOfBounds)
			require.Equal(t, 0, dec.GetPosition(), "failed read must not advance the cursor")
		})
	}
}

func TestBufferDecoderInvalidBool(t *testing.T) {
	dec := NewBufferDecoder([]byte{0x02})
	_, err := dec.DecodeBool()
	require.ErrorIs(t, err, ErrInvalidValueRange)
}

func TestBufferDecoderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1337))

	for _, width := range []int{8, 16, 32, 64, 128} {
		for i := 0; i < 64; i++ {
			raw := make([]byte, width/8)
			rng.Read(raw)
			expected := UnmarshalUintLE(raw)

			dec := NewBufferDecoder(raw)
			var actual *uint256.Int
			switch width {
			case 8:
				v, err := dec.DecodeUint8()
				require.NoError(t, err)
				actual = uint256.NewInt(uint64(v))
				require.Equal(t, raw[0], v)
			case 16:
				v, err := dec.DecodeUint16()
				require.NoError(t, err)
				actual = uint256.NewInt(uint64(v))
				require.Equal(t, binary.LittleEndian.Uint16(raw), v)
			case 32:
				v, err := dec.DecodeUint32()
				require.NoError(t, err)
				actual = uint256.NewInt(uint64(v))
				require.Equal(t, binary.LittleEndian.Uint32(raw), v)
			case 64:
				v, err := dec.DecodeUint64()
				require.NoError(t, err)
				actual = uint256.NewInt(v)
				require.Equal(t, binary.LittleEndian.Uint64(raw), v)
			case 128:
				v, err := dec.DecodeUint128()
				require.NoError(t, err)
				actual = v
				lo := binary.LittleEndian.Uint64(raw[:8])
				hi := binary.LittleEndian.Uint64(raw[8:])
				require.Equal(t, [4]uint64{lo, hi, 0, 0}, [4]uint64(*v))
			}

			require.True(t, expected.Eq(actual), "width %d: %v != %v", width, expected, actual)
			require.Equal(t, 0, dec.GetLength())
		}
	}
}

func TestBufferDecoderCompactUint64(t *testing.T) {
	dec := NewBufferDecoder(mustHex(t, "0xfc03"))
	v, err := dec.DecodeCompactUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(255), v)

	dec = NewBufferDecoder(mustHex(t, "0x17ffffffffffffffffff"))
	_, err = dec.DecodeCompactUint64()
	require.ErrorIs(t, err, ErrInvalidCompactEncoding)
	require.Equal(t, 0, dec.GetPosition())
}

func TestBufferDecoderSignedInt(t *testing.T) {
	dec := NewBufferDecoder([]byte{0xff, 0x7f, 0x00, 0x80})
	v, err := dec.DecodeInt(2)
	require.NoError(t, err)
	require.Equal(t, 1, v.Sign())
	require.Equal(t, uint64(0x7fff), v.Uint64())

	v, err = dec.DecodeInt(2)
	require.NoError(t, err)
	require.Equal(t, -1, v.Sign())
	require.Equal(t, uint64(0x8000), new(uint256.Int).Neg(v).Uint64())
}
