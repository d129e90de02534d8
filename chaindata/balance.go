// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import "fmt"

// RaoPerTao is the number of rao (smallest unit) in one tao.
const RaoPerTao = 1_000_000_000

// Balance is an amount of rao.
type Balance uint64

func BalanceFromRao(rao uint64) Balance {
	return Balance(rao)
}

func (b Balance) Rao() uint64 {
	return uint64(b)
}

// Tao returns the amount in tao. Only meant for display, all arithmetic stays in rao.
func (b Balance) Tao() float64 {
	return float64(b) / RaoPerTao
}

func (b Balance) Add(other Balance) Balance {
	return b + other
}

// SumBalances adds up the given balances.
func SumBalances(balances ...Balance) Balance {
	var sum Balance
	for _, balance := range balances {
		sum += balance
	}
	return sum
}

// String renders the balance as "τ<tao>.<9 digit rao remainder>".
func (b Balance) String() string {
	return fmt.Sprintf("τ%d.%09d", uint64(b)/RaoPerTao, uint64(b)%RaoPerTao)
}
