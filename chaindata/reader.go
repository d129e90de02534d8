// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	dynscale "github.com/pk910/dynamic-scale"
	"github.com/pk910/dynamic-scale/ss58"
)

var ErrUnexpectedShape = errors.New("unexpected value shape")

// recordReader extracts typed fields from a decoded struct value.
// The first failure is kept in err, later reads return zero values.
type recordReader struct {
	d     *Decoder
	value *dynscale.Value
	err   error
}

func (d *Decoder) newReader(value *dynscale.Value) *recordReader {
	r := &recordReader{
		d:     d,
		value: value,
	}
	if value == nil || value.Kind != dynscale.ValueStruct {
		r.err = fmt.Errorf("%w: expected struct", ErrUnexpectedShape)
	}
	return r
}

func (r *recordReader) field(name string) *dynscale.Value {
	if r.err != nil {
		return nil
	}
	value, ok := r.value.Field(name)
	if !ok {
		r.err = fmt.Errorf("%w: missing field %v", ErrUnexpectedShape, name)
		return nil
	}
	return value
}

func (r *recordReader) fail(name string, err error) {
	if r.err == nil && err != nil {
		r.err = fmt.Errorf("field %v: %w", name, err)
	}
}

func (r *recordReader) uint(name string, max uint64) uint64 {
	value := r.field(name)
	if value == nil {
		return 0
	}
	res, err := valueUint(value, max)
	r.fail(name, err)
	return res
}

func (r *recordReader) u8(name string) uint8 {
	return uint8(r.uint(name, math.MaxUint8))
}

func (r *recordReader) u16(name string) uint16 {
	return uint16(r.uint(name, math.MaxUint16))
}

func (r *recordReader) u32(name string) uint32 {
	return uint32(r.uint(name, math.MaxUint32))
}

func (r *recordReader) u64(name string) uint64 {
	return r.uint(name, math.MaxUint64)
}

func (r *recordReader) balance(name string) Balance {
	return Balance(r.u64(name))
}

func (r *recordReader) ratio(name string) float64 {
	return U16NormalizedFloat(r.u16(name))
}

func (r *recordReader) boolean(name string) bool {
	value := r.field(name)
	if value == nil {
		return false
	}
	res, err := value.AsBool()
	r.fail(name, err)
	return res
}

func (r *recordReader) text(name string) string {
	value := r.field(name)
	if value == nil {
		return ""
	}
	res, err := value.AsBytes()
	r.fail(name, err)
	return string(res)
}

func (r *recordReader) address(name string) string {
	value := r.field(name)
	if value == nil {
		return ""
	}
	res, err := r.d.address(value)
	r.fail(name, err)
	return res
}

func (r *recordReader) ip(name string) string {
	value := r.field(name)
	if value == nil {
		return ""
	}
	if value.Kind != dynscale.ValueInteger || value.IsNegative() {
		r.fail(name, fmt.Errorf("%w: expected unsigned integer, got %v", ErrUnexpectedShape, value.Kind))
		return ""
	}
	return IPFromInt(value.Int)
}

func (r *recordReader) u16List(name string) []uint16 {
	value := r.field(name)
	if value == nil {
		return nil
	}
	elems := value.Elements()
	res := make([]uint16, len(elems))
	for i, elem := range elems {
		v, err := valueUint(elem, math.MaxUint16)
		if err != nil {
			r.fail(name, fmt.Errorf("element %d: %w", i, err))
			return nil
		}
		res[i] = uint16(v)
	}
	return res
}

// pairs reads a list of (u16, u16) tuples.
func (r *recordReader) pairs(name string) [][2]uint16 {
	value := r.field(name)
	if value == nil {
		return nil
	}
	elems := value.Elements()
	res := make([][2]uint16, len(elems))
	for i, elem := range elems {
		pair, err := valuePair(elem)
		if err != nil {
			r.fail(name, fmt.Errorf("element %d: %w", i, err))
			return nil
		}
		res[i] = pair
	}
	return res
}

// stakes reads a list of (AccountId, Compact<u64>) tuples.
func (r *recordReader) stakes(name string) []Nominator {
	value := r.field(name)
	if value == nil {
		return nil
	}
	elems := value.Elements()
	res := make([]Nominator, len(elems))
	for i, elem := range elems {
		tuple := elem.Elements()
		if len(tuple) != 2 {
			r.fail(name, fmt.Errorf("%w: element %d is not a pair", ErrUnexpectedShape, i))
			return nil
		}
		address, err := r.d.address(tuple[0])
		if err != nil {
			r.fail(name, fmt.Errorf("element %d: %w", i, err))
			return nil
		}
		amount, err := valueUint(tuple[1], math.MaxUint64)
		if err != nil {
			r.fail(name, fmt.Errorf("element %d: %w", i, err))
			return nil
		}
		res[i] = Nominator{Address: address, Stake: Balance(amount)}
	}
	return res
}

// connections reads the subnet connection requirements, keyed by the decimal netuid.
func (r *recordReader) connections(name string) map[string]float64 {
	value := r.field(name)
	if value == nil {
		return nil
	}
	res := make(map[string]float64, len(value.Elements()))
	for i, elem := range value.Elements() {
		pair, err := valuePair(elem)
		if err != nil {
			r.fail(name, fmt.Errorf("element %d: %w", i, err))
			return nil
		}
		res[strconv.FormatUint(uint64(pair[0]), 10)] = U16NormalizedFloat(pair[1])
	}
	return res
}

func valueUint(value *dynscale.Value, max uint64) (uint64, error) {
	res, err := value.Uint64()
	if err != nil {
		return 0, err
	}
	if res > max {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrUnexpectedShape, res, max)
	}
	return res, nil
}

func valuePair(value *dynscale.Value) ([2]uint16, error) {
	elems := value.Elements()
	if len(elems) != 2 {
		return [2]uint16{}, fmt.Errorf("%w: expected pair, got %v", ErrUnexpectedShape, value.Kind)
	}
	first, err := valueUint(elems[0], math.MaxUint16)
	if err != nil {
		return [2]uint16{}, err
	}
	second, err := valueUint(elems[1], math.MaxUint16)
	if err != nil {
		return [2]uint16{}, err
	}
	return [2]uint16{uint16(first), uint16(second)}, nil
}

// address renders an account id value as ss58 address.
func (d *Decoder) address(value *dynscale.Value) (string, error) {
	raw, err := value.AsBytes()
	if err != nil {
		return "", err
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("%w: account id of %d bytes", ErrUnexpectedShape, len(raw))
	}
	return ss58.Encode(raw, d.cfg.SS58Format)
}
