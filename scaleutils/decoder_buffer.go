// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// BufferDecoder is a forward-only cursor over an in-memory SCALE buffer.
type BufferDecoder struct {
	buffer    []byte
	bufferLen int
	position  int
}

var _ Decoder = (*BufferDecoder)(nil)

func NewBufferDecoder(buffer []byte) *BufferDecoder {
	return &BufferDecoder{
		buffer:    buffer,
		bufferLen: len(buffer),
		position:  0,
	}
}

func (e *BufferDecoder) GetPosition() int {
	return e.position
}

func (e *BufferDecoder) GetLength() int {
	return e.bufferLen - e.position
}

func (e *BufferDecoder) DecodeBool() (bool, error) {
	if e.GetLength() < 1 {
		return false, ErrOutOfBounds
	}
	val := e.buffer[e.position]
	if val != 1 && val != 0 {
		return false, fmt.Errorf("%w: invalid bool byte 0x%02x", ErrInvalidValueRange, val)
	}
	e.position++
	return val == 1, nil
}

func (e *BufferDecoder) DecodeUint8() (uint8, error) {
	if e.GetLength() < 1 {
		return 0, ErrOutOfBounds
	}
	val := e.buffer[e.position]
	e.position++
	return val, nil
}

func (e *BufferDecoder) DecodeUint16() (uint16, error) {
	if e.GetLength() < 2 {
		return 0, ErrOutOfBounds
	}
	val := binary.LittleEndian.Uint16(e.buffer[e.position:])
	e.position += 2
	return val, nil
}

func (e *BufferDecoder) DecodeUint32() (uint32, error) {
	if e.GetLength() < 4 {
		return 0, ErrOutOfBounds
	}
	val := binary.LittleEndian.Uint32(e.buffer[e.position:])
	e.position += 4
	return val, nil
}

func (e *BufferDecoder) DecodeUint64() (uint64, error) {
	if e.GetLength() < 8 {
		return 0, ErrOutOfBounds
	}
	val := binary.LittleEndian.Uint64(e.buffer[e.position:])
	e.position += 8
	return val, nil
}

func (e *BufferDecoder) DecodeUint128() (*uint256.Int, error) {
	buf, err := e.DecodeBytesBuf(16)
	if err != nil {
		return nil, err
	}
	return UnmarshalUintLE(buf), nil
}

func (e *BufferDecoder) DecodeUint256() (*uint256.Int, error) {
	buf, err := e.DecodeBytesBuf(32)
	if err != nil {
		return nil, err
	}
	return UnmarshalUintLE(buf), nil
}

func (e *BufferDecoder) DecodeInt(size int) (*uint256.Int, error) {
	buf, err := e.DecodeBytesBuf(size)
	if err != nil {
		return nil, err
	}
	return UnmarshalIntLE(buf), nil
}

// DecodeBytesBuf returns a sub slice of the underlying buffer without copying.
func (e *BufferDecoder) DecodeBytesBuf(len int) ([]byte, error) {
	if len < 0 || e.GetLength() < len {
		return nil, ErrOutOfBounds
	}
	buf := e.buffer[e.position : e.position+len]
	e.position += len
	return buf, nil
}

func (e *BufferDecoder) DecodeCompact() (*uint256.Int, error) {
	if e.GetLength() < 1 {
		return nil, ErrOutOfBounds
	}
	val, consumed, err := UnmarshalCompact(e.buffer[e.position:])
	if err != nil {
		return nil, err
	}
	e.position += consumed
	return val, nil
}

func (e *BufferDecoder) DecodeCompactUint64() (uint64, error) {
	pos := e.position
	val, err := e.DecodeCompact()
	if err != nil {
		return 0, err
	}
	if !val.IsUint64() {
		e.position = pos
		return 0, fmt.Errorf("%w: value exceeds 64 bits", ErrInvalidCompactEncoding)
	}
	return val.Uint64(), nil
}
