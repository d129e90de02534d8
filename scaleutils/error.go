// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds            = fmt.Errorf("unexpected end of SCALE data")
	ErrInvalidCompactEncoding = fmt.Errorf("invalid compact encoding")
	ErrInvalidOptionTag       = fmt.Errorf("invalid option tag")
	ErrUnknownEnumVariant     = fmt.Errorf("unknown enum variant")
	ErrUnknownType            = fmt.Errorf("unknown type")
	ErrMalformedTypeString    = fmt.Errorf("malformed type string")
	ErrRegistryLoad           = fmt.Errorf("registry load error")
	ErrInvalidValueRange      = fmt.Errorf("value out of range")
	ErrUnsupportedType        = fmt.Errorf("unsupported type")
)

// DecodeError carries the cursor offset and the type that was being decoded
// when a decode call failed.
type DecodeError struct {
	Offset int
	Type   string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("decode failed at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decode of %s failed at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError wraps err with position context. Errors that already carry
// a DecodeError are returned unchanged so the innermost offset is kept.
func NewDecodeError(offset int, typeName string, err error) error {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return err
	}
	return &DecodeError{
		Offset: offset,
		Type:   typeName,
		Err:    err,
	}
}
