// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	dynscale "github.com/pk910/dynamic-scale"
)

func (d *Decoder) normalizeAxonInfo(value *dynscale.Value) (*AxonInfo, error) {
	return d.normalizeAxon(value, "", "")
}

func (d *Decoder) normalizeAxon(value *dynscale.Value, hotkey, coldkey string) (*AxonInfo, error) {
	r := d.newReader(value)
	axon := &AxonInfo{
		Block:        r.u64("block"),
		Version:      r.u32("version"),
		IP:           r.ip("ip"),
		Port:         r.u16("port"),
		IPType:       r.u8("ip_type"),
		Protocol:     r.u8("protocol"),
		Placeholder1: r.u8("placeholder1"),
		Placeholder2: r.u8("placeholder2"),
		Hotkey:       hotkey,
		Coldkey:      coldkey,
	}
	if r.err != nil {
		return nil, r.err
	}
	return axon, nil
}

func (d *Decoder) normalizePrometheusInfo(value *dynscale.Value) (*PrometheusInfo, error) {
	r := d.newReader(value)
	prometheus := &PrometheusInfo{
		Block:   r.u64("block"),
		Version: r.u32("version"),
		IP:      r.ip("ip"),
		Port:    r.u16("port"),
		IPType:  r.u8("ip_type"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return prometheus, nil
}

// normalizeNeuronInfoLite reads the fields shared by full and lite neurons.
func (d *Decoder) normalizeNeuronInfoLite(value *dynscale.Value) (*NeuronInfoLite, error) {
	r := d.newReader(value)
	neuron := &NeuronInfoLite{
		Hotkey:          r.address("hotkey"),
		Coldkey:         r.address("coldkey"),
		UID:             r.u16("uid"),
		NetUID:          r.u16("netuid"),
		Active:          r.boolean("active"),
		Rank:            r.ratio("rank"),
		Emission:        r.balance("emission"),
		Incentive:       r.ratio("incentive"),
		Consensus:       r.ratio("consensus"),
		Trust:           r.ratio("trust"),
		ValidatorTrust:  r.ratio("validator_trust"),
		Dividends:       r.ratio("dividends"),
		LastUpdate:      r.u64("last_update"),
		ValidatorPermit: r.boolean("validator_permit"),
		PruningScore:    r.u16("pruning_score"),
	}

	stakes := r.stakes("stake")
	neuron.StakeDict = make(map[string]Balance, len(stakes))
	for _, stake := range stakes {
		neuron.StakeDict[stake.Address] = stake.Stake
	}
	for _, stake := range neuron.StakeDict {
		neuron.Stake += stake
	}

	axonValue := r.field("axon_info")
	prometheusValue := r.field("prometheus_info")
	if r.err != nil {
		return nil, r.err
	}

	var err error
	neuron.AxonInfo, err = d.normalizeAxon(axonValue, neuron.Hotkey, neuron.Coldkey)
	if err != nil {
		return nil, err
	}
	neuron.PrometheusInfo, err = d.normalizePrometheusInfo(prometheusValue)
	if err != nil {
		return nil, err
	}

	return neuron, nil
}

func (d *Decoder) normalizeNeuronInfo(value *dynscale.Value) (*NeuronInfo, error) {
	lite, err := d.normalizeNeuronInfoLite(value)
	if err != nil {
		return nil, err
	}

	r := d.newReader(value)
	weights := r.pairs("weights")
	bonds := r.pairs("bonds")
	if r.err != nil {
		return nil, r.err
	}

	neuron := NeuronInfoFromLite(lite, nil, nil)
	neuron.Weights = weights
	neuron.Bonds = bonds
	return neuron, nil
}

func (d *Decoder) normalizeSubnetInfo(value *dynscale.Value) (*SubnetInfo, error) {
	r := d.newReader(value)
	subnet := &SubnetInfo{
		NetUID:                 r.u16("netuid"),
		Rho:                    r.u16("rho"),
		Kappa:                  r.u16("kappa"),
		Difficulty:             r.u64("difficulty"),
		ImmunityPeriod:         r.u16("immunity_period"),
		MaxAllowedValidators:   r.u16("max_allowed_validators"),
		MinAllowedWeights:      r.u16("min_allowed_weights"),
		MaxWeightLimit:         r.u16("max_weights_limit"),
		ScalingLawPower:        r.u16("scaling_law_power"),
		SubnetworkN:            r.u16("subnetwork_n"),
		MaxN:                   r.u16("max_allowed_uids"),
		BlocksSinceEpoch:       r.u64("blocks_since_last_step"),
		Tempo:                  r.u16("tempo"),
		Modality:               r.u16("network_modality"),
		ConnectionRequirements: r.connections("network_connect"),
		EmissionValue:          r.u64("emission_values"),
		Burn:                   r.balance("burn"),
		OwnerSS58:              r.address("owner"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return subnet, nil
}

func (d *Decoder) normalizeSubnetInfoV2(value *dynscale.Value) (*SubnetInfoV2, error) {
	subnet, err := d.normalizeSubnetInfo(value)
	if err != nil {
		return nil, err
	}

	res := &SubnetInfoV2{
		SubnetInfo: *subnet,
	}

	r := d.newReader(value)
	identity := r.field("identity")
	if r.err != nil {
		return nil, r.err
	}
	if !identity.IsAbsent() {
		ir := d.newReader(identity.Unwrap())
		res.Identity = &SubnetIdentity{
			SubnetName:    ir.text("subnet_name"),
			GithubRepo:    ir.text("github_repo"),
			SubnetContact: ir.text("subnet_contact"),
		}
		if ir.err != nil {
			return nil, ir.err
		}
	}

	return res, nil
}

func (d *Decoder) normalizeSubnetHyperparameters(value *dynscale.Value) (*SubnetHyperparameters, error) {
	r := d.newReader(value)
	params := &SubnetHyperparameters{
		Rho:                         r.u16("rho"),
		Kappa:                       r.u16("kappa"),
		ImmunityPeriod:              r.u16("immunity_period"),
		MinAllowedWeights:           r.u16("min_allowed_weights"),
		MaxWeightLimit:              r.u16("max_weights_limit"),
		Tempo:                       r.u16("tempo"),
		MinDifficulty:               r.u64("min_difficulty"),
		MaxDifficulty:               r.u64("max_difficulty"),
		WeightsVersion:              r.u64("weights_version"),
		WeightsRateLimit:            r.u64("weights_rate_limit"),
		AdjustmentInterval:          r.u16("adjustment_interval"),
		ActivityCutoff:              r.u16("activity_cutoff"),
		RegistrationAllowed:         r.boolean("registration_allowed"),
		TargetRegsPerInterval:       r.u16("target_regs_per_interval"),
		MinBurn:                     r.balance("min_burn"),
		MaxBurn:                     r.balance("max_burn"),
		BondsMovingAvg:              r.u64("bonds_moving_avg"),
		MaxRegsPerBlock:             r.u16("max_regs_per_block"),
		ServingRateLimit:            r.u64("serving_rate_limit"),
		MaxValidators:               r.u16("max_validators"),
		AdjustmentAlpha:             r.u64("adjustment_alpha"),
		Difficulty:                  r.u64("difficulty"),
		CommitRevealWeightsInterval: r.u64("commit_reveal_weights_interval"),
		CommitRevealWeightsEnabled:  r.boolean("commit_reveal_weights_enabled"),
		AlphaHigh:                   r.u16("alpha_high"),
		AlphaLow:                    r.u16("alpha_low"),
		LiquidAlphaEnabled:          r.boolean("liquid_alpha_enabled"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return params, nil
}

func (d *Decoder) normalizeDelegateInfo(value *dynscale.Value) (*DelegateInfo, error) {
	r := d.newReader(value)
	delegate := &DelegateInfo{
		HotkeySS58:       r.address("delegate_ss58"),
		OwnerSS58:        r.address("owner_ss58"),
		Take:             r.ratio("take"),
		Nominators:       r.stakes("nominators"),
		Registrations:    r.u16List("registrations"),
		ValidatorPermits: r.u16List("validator_permits"),
		ReturnPer1000:    r.balance("return_per_1000"),
		TotalDailyReturn: r.balance("total_daily_return"),
	}
	if r.err != nil {
		return nil, r.err
	}

	for _, nominator := range delegate.Nominators {
		delegate.TotalStake += nominator.Stake
	}
	return delegate, nil
}

func (d *Decoder) normalizeStakeInfo(value *dynscale.Value) (*StakeInfo, error) {
	r := d.newReader(value)
	stake := &StakeInfo{
		HotkeySS58:  r.address("hotkey"),
		ColdkeySS58: r.address("coldkey"),
		Stake:       r.balance("stake"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return stake, nil
}

func (d *Decoder) normalizeIPInfo(value *dynscale.Value) (*IPInfo, error) {
	r := d.newReader(value)
	ipInfo := &IPInfo{
		IP: r.ip("ip"),
	}
	typeAndProtocol := r.u8("ip_type_and_protocol")
	if r.err != nil {
		return nil, r.err
	}
	ipInfo.IPType = typeAndProtocol >> 4
	ipInfo.Protocol = typeAndProtocol & 0xf
	return ipInfo, nil
}

func (d *Decoder) normalizeScheduledColdkeySwapInfo(value *dynscale.Value) (*ScheduledColdkeySwapInfo, error) {
	r := d.newReader(value)
	swap := &ScheduledColdkeySwapInfo{
		OldColdkey:       r.address("old_coldkey"),
		NewColdkey:       r.address("new_coldkey"),
		ArbitrationBlock: r.u64("arbitration_block"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return swap, nil
}
