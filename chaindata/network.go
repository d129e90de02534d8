// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	"fmt"
	"math"
	"net/netip"

	"github.com/holiman/uint256"
)

// U16MaxValue is the divisor of u16 ratio values.
const U16MaxValue = math.MaxUint16

// U16NormalizedFloat maps a u16 ratio to [0, 1].
func U16NormalizedFloat(value uint16) float64 {
	return float64(value) / U16MaxValue
}

// IPFromInt renders an integer ip address. Values below 2^32 are IPv4 addresses,
// everything else the 128 bit IPv6 address.
func IPFromInt(value *uint256.Int) string {
	if value.IsUint64() && value.Uint64() <= math.MaxUint32 {
		v := uint32(value.Uint64())
		return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}).String()
	}

	buf := value.Bytes32()
	return netip.AddrFrom16([16]byte(buf[16:])).String()
}

// IPString formats an endpoint as "/ipv<type>/<ip>:<port>".
func IPString(ipType uint8, ip string, port uint16) string {
	return fmt.Sprintf("/ipv%d/%s:%d", ipType, ip, port)
}
