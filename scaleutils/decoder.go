// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import "github.com/holiman/uint256"

type Decoder interface {
	GetPosition() int // return current position
	GetLength() int   // return remaining length
	DecodeBool() (bool, error)
	DecodeUint8() (uint8, error)
	DecodeUint16() (uint16, error)
	DecodeUint32() (uint32, error)
	DecodeUint64() (uint64, error)
	DecodeUint128() (*uint256.Int, error)
	DecodeUint256() (*uint256.Int, error)
	DecodeInt(size int) (*uint256.Int, error) // sign extended to 256 bits
	DecodeBytesBuf(len int) ([]byte, error)
	DecodeCompact() (*uint256.Int, error)
	DecodeCompactUint64() (uint64, error)
}
