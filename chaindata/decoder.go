// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	"fmt"
	"math"

	dynscale "github.com/pk910/dynamic-scale"
	"github.com/pk910/dynamic-scale/scaletypes"
)

// Decoder decodes runtime api results into chain data records.
type Decoder struct {
	cfg Config
	ds  *dynscale.DynScale
}

// NewDecoder creates a decoder backed by the bundled bittensor registry.
func NewDecoder(cfg Config, options ...dynscale.DynScaleOption) (*Decoder, error) {
	registry, err := scaletypes.BittensorRegistry()
	if err != nil {
		return nil, err
	}
	return NewDecoderWithRegistry(cfg, registry, options...)
}

// NewDecoderWithRegistry creates a decoder for a custom registry. The registry must
// provide the record type names used by the RecordType values.
func NewDecoderWithRegistry(cfg Config, registry *scaletypes.Registry, options ...dynscale.DynScaleOption) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		cfg: cfg,
		ds:  dynscale.NewDynScale(registry, options...),
	}, nil
}

func (d *Decoder) Config() Config {
	return d.cfg
}

func (d *Decoder) DynScale() *dynscale.DynScale {
	return d.ds
}

func (d *Decoder) decode(typeStr string, data []byte) (*dynscale.Value, error) {
	return d.ds.Decode(typeStr, data, dynscale.WithLegacyAccountId(false))
}

// DecodeDelegated decodes the delegates a coldkey has staked to.
func (d *Decoder) DecodeDelegated(data []byte) ([]DelegatedInfo, error) {
	if len(data) == 0 {
		return []DelegatedInfo{}, nil
	}

	value, err := d.decode("Vec<(DelegateInfo, Compact<u64>)>", data)
	if err != nil {
		return nil, err
	}

	elems := value.Elements()
	res := make([]DelegatedInfo, len(elems))
	for i, elem := range elems {
		tuple := elem.Elements()
		if len(tuple) != 2 {
			return nil, fmt.Errorf("%w: delegated entry %d is not a pair", ErrUnexpectedShape, i)
		}
		delegate, err := d.normalizeDelegateInfo(tuple[0])
		if err != nil {
			return nil, fmt.Errorf("failed normalizing delegated entry %d: %w", i, err)
		}
		stake, err := valueUint(tuple[1], math.MaxUint64)
		if err != nil {
			return nil, fmt.Errorf("failed normalizing delegated entry %d: %w", i, err)
		}
		res[i] = DelegatedInfo{Delegate: delegate, Stake: Balance(stake)}
	}
	return res, nil
}

// DecodeStakeInfoMap decodes the stake records of multiple coldkeys, keyed by the coldkey address.
func (d *Decoder) DecodeStakeInfoMap(data []byte) (map[string][]*StakeInfo, error) {
	res := map[string][]*StakeInfo{}
	if len(data) == 0 {
		return res, nil
	}

	value, err := d.decode("Vec<(AccountId, Vec<StakeInfo>)>", data)
	if err != nil {
		return nil, err
	}

	for i, elem := range value.Elements() {
		tuple := elem.Elements()
		if len(tuple) != 2 {
			return nil, fmt.Errorf("%w: stake entry %d is not a pair", ErrUnexpectedShape, i)
		}
		coldkey, err := d.address(tuple[0])
		if err != nil {
			return nil, fmt.Errorf("failed normalizing stake entry %d: %w", i, err)
		}

		stakes := tuple[1].Elements()
		infos := make([]*StakeInfo, len(stakes))
		for j, stake := range stakes {
			infos[j], err = d.normalizeStakeInfo(stake)
			if err != nil {
				return nil, fmt.Errorf("failed normalizing stake entry %d/%d: %w", i, j, err)
			}
		}
		res[coldkey] = infos
	}
	return res, nil
}

// DecodeAccountIdList decodes a list of account ids into ss58 addresses.
func (d *Decoder) DecodeAccountIdList(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}

	value, err := d.decode("Vec<AccountId>", data)
	if err != nil {
		return nil, err
	}

	elems := value.Elements()
	res := make([]string, len(elems))
	for i, elem := range elems {
		res[i], err = d.address(elem)
		if err != nil {
			return nil, fmt.Errorf("failed normalizing account id %d: %w", i, err)
		}
	}
	return res, nil
}
