// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

// NullAddress is the address placeholder of null records.
const NullAddress = "000000000000000000000000000000000000000000000000"

// AxonInfo describes the serving endpoint of a neuron.
type AxonInfo struct {
	Block        uint64
	Version      uint32
	IP           string
	Port         uint16
	IPType       uint8
	Protocol     uint8
	Placeholder1 uint8
	Placeholder2 uint8
	Hotkey       string
	Coldkey      string
	IsNull       bool
}

// IsServing reports whether the axon announced an address.
func (a *AxonInfo) IsServing() bool {
	return a.IP != "0.0.0.0"
}

func (a *AxonInfo) IPString() string {
	return IPString(a.IPType, a.IP, a.Port)
}

// PrometheusInfo describes the metrics endpoint of a neuron.
type PrometheusInfo struct {
	Block   uint64
	Version uint32
	IP      string
	Port    uint16
	IPType  uint8
	IsNull  bool
}

func (p *PrometheusInfo) IPString() string {
	return IPString(p.IPType, p.IP, p.Port)
}

// NeuronInfo is the full neuron record including weights and bonds.
type NeuronInfo struct {
	Hotkey          string
	Coldkey         string
	UID             uint16
	NetUID          uint16
	Active          bool
	Stake           Balance
	StakeDict       map[string]Balance
	Rank            float64
	Emission        Balance
	Incentive       float64
	Consensus       float64
	Trust           float64
	ValidatorTrust  float64
	Dividends       float64
	LastUpdate      uint64
	ValidatorPermit bool
	Weights         [][2]uint16
	Bonds           [][2]uint16
	PruningScore    uint16
	PrometheusInfo  *PrometheusInfo
	AxonInfo        *AxonInfo
	IsNull          bool
}

// NeuronInfoLite is the neuron record without weights and bonds.
type NeuronInfoLite struct {
	Hotkey          string
	Coldkey         string
	UID             uint16
	NetUID          uint16
	Active          bool
	Stake           Balance
	StakeDict       map[string]Balance
	Rank            float64
	Emission        Balance
	Incentive       float64
	Consensus       float64
	Trust           float64
	ValidatorTrust  float64
	Dividends       float64
	LastUpdate      uint64
	ValidatorPermit bool
	PruningScore    uint16
	PrometheusInfo  *PrometheusInfo
	AxonInfo        *AxonInfo
	IsNull          bool
}

type SubnetIdentity struct {
	SubnetName    string
	GithubRepo    string
	SubnetContact string
}

// SubnetInfo describes the configuration and state of a subnet.
type SubnetInfo struct {
	NetUID                 uint16
	Rho                    uint16
	Kappa                  uint16
	Difficulty             uint64
	ImmunityPeriod         uint16
	MaxAllowedValidators   uint16
	MinAllowedWeights      uint16
	MaxWeightLimit         uint16
	ScalingLawPower        uint16
	SubnetworkN            uint16
	MaxN                   uint16
	BlocksSinceEpoch       uint64
	Tempo                  uint16
	Modality               uint16
	ConnectionRequirements map[string]float64
	EmissionValue          uint64
	Burn                   Balance
	OwnerSS58              string
	IsNull                 bool
}

// SubnetInfoV2 extends SubnetInfo with the optional subnet identity.
type SubnetInfoV2 struct {
	SubnetInfo
	Identity *SubnetIdentity
}

type SubnetHyperparameters struct {
	Rho                         uint16
	Kappa                       uint16
	ImmunityPeriod              uint16
	MinAllowedWeights           uint16
	MaxWeightLimit              uint16
	Tempo                       uint16
	MinDifficulty               uint64
	MaxDifficulty               uint64
	WeightsVersion              uint64
	WeightsRateLimit            uint64
	AdjustmentInterval          uint16
	ActivityCutoff              uint16
	RegistrationAllowed         bool
	TargetRegsPerInterval       uint16
	MinBurn                     Balance
	MaxBurn                     Balance
	BondsMovingAvg              uint64
	MaxRegsPerBlock             uint16
	ServingRateLimit            uint64
	MaxValidators               uint16
	AdjustmentAlpha             uint64
	Difficulty                  uint64
	CommitRevealWeightsInterval uint64
	CommitRevealWeightsEnabled  bool
	AlphaHigh                   uint16
	AlphaLow                    uint16
	LiquidAlphaEnabled          bool
	IsNull                      bool
}

// Nominator is a single stake entry of a delegate.
type Nominator struct {
	Address string
	Stake   Balance
}

// DelegateInfo describes a delegate hotkey and its nominators.
type DelegateInfo struct {
	HotkeySS58       string
	OwnerSS58        string
	Take             float64
	Nominators       []Nominator
	TotalStake       Balance
	Registrations    []uint16
	ValidatorPermits []uint16
	ReturnPer1000    Balance
	TotalDailyReturn Balance
	IsNull           bool
}

// DelegatedInfo pairs a delegate with the stake delegated to it by one coldkey.
type DelegatedInfo struct {
	Delegate *DelegateInfo
	Stake    Balance
}

type StakeInfo struct {
	HotkeySS58  string
	ColdkeySS58 string
	Stake       Balance
	IsNull      bool
}

type IPInfo struct {
	IP       string
	IPType   uint8
	Protocol uint8
	IsNull   bool
}

type ScheduledColdkeySwapInfo struct {
	OldColdkey       string
	NewColdkey       string
	ArbitrationBlock uint64
	IsNull           bool
}

// NullNeuronInfo returns the placeholder for a missing neuron.
func NullNeuronInfo() *NeuronInfo {
	return &NeuronInfo{
		Hotkey:    NullAddress,
		Coldkey:   NullAddress,
		StakeDict: map[string]Balance{},
		Weights:   [][2]uint16{},
		Bonds:     [][2]uint16{},
		IsNull:    true,
	}
}

func NullNeuronInfoLite() *NeuronInfoLite {
	return &NeuronInfoLite{
		Hotkey:    NullAddress,
		Coldkey:   NullAddress,
		StakeDict: map[string]Balance{},
		IsNull:    true,
	}
}

func NullAxonInfo() *AxonInfo {
	return &AxonInfo{
		IP:      "0.0.0.0",
		Hotkey:  NullAddress,
		Coldkey: NullAddress,
		IsNull:  true,
	}
}

func NullPrometheusInfo() *PrometheusInfo {
	return &PrometheusInfo{
		IP:     "0.0.0.0",
		IsNull: true,
	}
}

func NullSubnetInfo() *SubnetInfo {
	return &SubnetInfo{
		ConnectionRequirements: map[string]float64{},
		OwnerSS58:              NullAddress,
		IsNull:                 true,
	}
}

func NullSubnetInfoV2() *SubnetInfoV2 {
	return &SubnetInfoV2{
		SubnetInfo: *NullSubnetInfo(),
	}
}

func NullSubnetHyperparameters() *SubnetHyperparameters {
	return &SubnetHyperparameters{
		IsNull: true,
	}
}

func NullDelegateInfo() *DelegateInfo {
	return &DelegateInfo{
		HotkeySS58:       NullAddress,
		OwnerSS58:        NullAddress,
		Nominators:       []Nominator{},
		Registrations:    []uint16{},
		ValidatorPermits: []uint16{},
		IsNull:           true,
	}
}

func NullStakeInfo() *StakeInfo {
	return &StakeInfo{
		HotkeySS58:  NullAddress,
		ColdkeySS58: NullAddress,
		IsNull:      true,
	}
}

func NullIPInfo() *IPInfo {
	return &IPInfo{
		IP:     "0.0.0.0",
		IsNull: true,
	}
}

func NullScheduledColdkeySwapInfo() *ScheduledColdkeySwapInfo {
	return &ScheduledColdkeySwapInfo{
		OldColdkey: NullAddress,
		NewColdkey: NullAddress,
		IsNull:     true,
	}
}

// NeuronInfoFromLite expands a lite neuron into a full one, taking weights and bonds
// from the given per-uid maps. Missing uids get empty lists.
func NeuronInfoFromLite(lite *NeuronInfoLite, weights, bonds map[uint16][][2]uint16) *NeuronInfo {
	neuron := &NeuronInfo{
		Hotkey:          lite.Hotkey,
		Coldkey:         lite.Coldkey,
		UID:             lite.UID,
		NetUID:          lite.NetUID,
		Active:          lite.Active,
		Stake:           lite.Stake,
		StakeDict:       lite.StakeDict,
		Rank:            lite.Rank,
		Emission:        lite.Emission,
		Incentive:       lite.Incentive,
		Consensus:       lite.Consensus,
		Trust:           lite.Trust,
		ValidatorTrust:  lite.ValidatorTrust,
		Dividends:       lite.Dividends,
		LastUpdate:      lite.LastUpdate,
		ValidatorPermit: lite.ValidatorPermit,
		PruningScore:    lite.PruningScore,
		PrometheusInfo:  lite.PrometheusInfo,
		AxonInfo:        lite.AxonInfo,
		IsNull:          lite.IsNull,
	}

	neuron.Weights = copyPairs(weights[lite.UID])
	neuron.Bonds = copyPairs(bonds[lite.UID])

	return neuron
}

func copyPairs(pairs [][2]uint16) [][2]uint16 {
	res := make([][2]uint16, len(pairs))
	copy(res, pairs)
	return res
}
