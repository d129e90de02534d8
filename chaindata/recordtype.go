// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	"fmt"

	dynscale "github.com/pk910/dynamic-scale"
)

// RecordType binds a record struct to its registry type name, its null sentinel and
// its normalizer.
type RecordType[T any] struct {
	TypeName  string
	Null      func() *T
	normalize func(d *Decoder, value *dynscale.Value) (*T, error)
}

var (
	NeuronInfoType               = RecordType[NeuronInfo]{"NeuronInfo", NullNeuronInfo, (*Decoder).normalizeNeuronInfo}
	NeuronInfoLiteType           = RecordType[NeuronInfoLite]{"NeuronInfoLite", NullNeuronInfoLite, (*Decoder).normalizeNeuronInfoLite}
	AxonInfoType                 = RecordType[AxonInfo]{"AxonInfo", NullAxonInfo, (*Decoder).normalizeAxonInfo}
	PrometheusInfoType           = RecordType[PrometheusInfo]{"PrometheusInfo", NullPrometheusInfo, (*Decoder).normalizePrometheusInfo}
	SubnetInfoType               = RecordType[SubnetInfo]{"SubnetInfo", NullSubnetInfo, (*Decoder).normalizeSubnetInfo}
	SubnetInfoV2Type             = RecordType[SubnetInfoV2]{"SubnetInfoV2", NullSubnetInfoV2, (*Decoder).normalizeSubnetInfoV2}
	SubnetHyperparametersType    = RecordType[SubnetHyperparameters]{"SubnetHyperparameters", NullSubnetHyperparameters, (*Decoder).normalizeSubnetHyperparameters}
	DelegateInfoType             = RecordType[DelegateInfo]{"DelegateInfo", NullDelegateInfo, (*Decoder).normalizeDelegateInfo}
	StakeInfoType                = RecordType[StakeInfo]{"StakeInfo", NullStakeInfo, (*Decoder).normalizeStakeInfo}
	IPInfoType                   = RecordType[IPInfo]{"IPInfo", NullIPInfo, (*Decoder).normalizeIPInfo}
	ScheduledColdkeySwapInfoType = RecordType[ScheduledColdkeySwapInfo]{"ScheduledColdkeySwapInfo", NullScheduledColdkeySwapInfo, (*Decoder).normalizeScheduledColdkeySwapInfo}
)

// DecodeOne decodes a single record. Empty input yields the null record.
func DecodeOne[T any](d *Decoder, rt RecordType[T], data []byte) (*T, error) {
	if len(data) == 0 {
		return rt.Null(), nil
	}

	value, err := d.decode(rt.TypeName, data)
	if err != nil {
		return nil, err
	}
	return rt.normalizeValue(d, value)
}

// DecodeVec decodes a Vec of records. Empty input yields an empty list.
func DecodeVec[T any](d *Decoder, rt RecordType[T], data []byte) ([]*T, error) {
	if len(data) == 0 {
		return []*T{}, nil
	}

	value, err := d.decode(fmt.Sprintf("Vec<%v>", rt.TypeName), data)
	if err != nil {
		return nil, err
	}
	return rt.normalizeList(d, value)
}

// DecodeVecOption decodes a Vec of optional records. Missing entries become null
// records at the same position.
func DecodeVecOption[T any](d *Decoder, rt RecordType[T], data []byte) ([]*T, error) {
	if len(data) == 0 {
		return []*T{}, nil
	}

	value, err := d.decode(fmt.Sprintf("Vec<Option<%v>>", rt.TypeName), data)
	if err != nil {
		return nil, err
	}
	return rt.normalizeList(d, value)
}

// DecodeOption decodes an optional record. Empty input and None yield the null record.
func DecodeOption[T any](d *Decoder, rt RecordType[T], data []byte) (*T, error) {
	if len(data) == 0 {
		return rt.Null(), nil
	}

	value, err := d.decode(fmt.Sprintf("Option<%v>", rt.TypeName), data)
	if err != nil {
		return nil, err
	}
	return rt.normalizeValue(d, value)
}

func (rt RecordType[T]) normalizeValue(d *Decoder, value *dynscale.Value) (*T, error) {
	if value.IsAbsent() {
		return rt.Null(), nil
	}

	record, err := rt.normalize(d, value.Unwrap())
	if err != nil {
		return nil, fmt.Errorf("failed normalizing %v: %w", rt.TypeName, err)
	}
	return record, nil
}

func (rt RecordType[T]) normalizeList(d *Decoder, value *dynscale.Value) ([]*T, error) {
	if value.Kind != dynscale.ValueSequence {
		return nil, fmt.Errorf("%w: expected sequence, got %v", ErrUnexpectedShape, value.Kind)
	}

	res := make([]*T, len(value.Elems))
	for i, elem := range value.Elems {
		record, err := rt.normalizeValue(d, elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		res[i] = record
	}
	return res, nil
}
