// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

// Package ss58 implements the substrate ss58 address format: a base58 encoding of a network
// prefix, the public key and a blake2b checksum.
package ss58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// SubstrateFormat is the generic substrate network prefix, also used by bittensor.
	SubstrateFormat uint16 = 42

	// MaxFormat is the largest prefix representable in the two byte form.
	MaxFormat uint16 = 16383
)

var (
	ErrInvalidFormat   = errors.New("invalid ss58 format")
	ErrInvalidLength   = errors.New("invalid ss58 payload length")
	ErrInvalidAddress  = errors.New("invalid ss58 address")
	ErrInvalidChecksum = errors.New("invalid ss58 checksum")
)

var checksumPrefix = []byte("SS58PRE")

// Encode renders the payload (usually a 32 byte public key) as ss58 address for the network format.
func Encode(payload []byte, format uint16) (string, error) {
	checksumLen, err := checksumLength(len(payload))
	if err != nil {
		return "", err
	}

	prefix, err := encodePrefix(format)
	if err != nil {
		return "", err
	}

	body := make([]byte, 0, len(prefix)+len(payload)+checksumLen)
	body = append(body, prefix...)
	body = append(body, payload...)

	hash := checksum(body)
	body = append(body, hash[:checksumLen]...)

	return base58.Encode(body), nil
}

// Decode parses an ss58 address into payload and network format and verifies the checksum.
func Decode(address string) ([]byte, uint16, error) {
	data, err := base58.Decode(address)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: too short", ErrInvalidAddress)
	}

	format, prefixLen, err := decodePrefix(data)
	if err != nil {
		return nil, 0, err
	}

	// the checksum length depends on the payload length, which depends on the checksum length
	for _, checksumLen := range []int{2, 1} {
		payloadLen := len(data) - prefixLen - checksumLen
		if payloadLen <= 0 {
			continue
		}
		if expected, err := checksumLength(payloadLen); err != nil || expected != checksumLen {
			continue
		}

		body := data[:prefixLen+payloadLen]
		hash := checksum(body)
		if !bytes.Equal(hash[:checksumLen], data[prefixLen+payloadLen:]) {
			return nil, 0, ErrInvalidChecksum
		}

		return append([]byte(nil), data[prefixLen:prefixLen+payloadLen]...), format, nil
	}

	return nil, 0, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(data))
}

func checksumLength(payloadLen int) (int, error) {
	switch payloadLen {
	case 1, 2, 4, 8:
		return 1, nil
	case 32, 33:
		return 2, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidLength, payloadLen)
}

func checksum(body []byte) [blake2b.Size]byte {
	return blake2b.Sum512(append(append([]byte{}, checksumPrefix...), body...))
}

func encodePrefix(format uint16) ([]byte, error) {
	switch {
	case format < 64:
		return []byte{byte(format)}, nil
	case format <= MaxFormat:
		return []byte{
			byte((format&0b1111_1100)>>2) | 0b0100_0000,
			byte(format>>8) | byte((format&0b0000_0011)<<6),
		}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, format)
}

func decodePrefix(data []byte) (uint16, int, error) {
	switch {
	case data[0] < 64:
		return uint16(data[0]), 1, nil
	case data[0] < 128:
		lower := (data[0] << 2) | (data[1] >> 6)
		upper := data[1] & 0b0011_1111
		return uint16(lower) | uint16(upper)<<8, 2, nil
	}
	return 0, 0, fmt.Errorf("%w: reserved prefix byte 0x%02x", ErrInvalidFormat, data[0])
}
