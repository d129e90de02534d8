// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaleutils

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x" and may contain surrounding whitespace.
func FromHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// BytesFromInts converts the list-of-small-integers input form into a byte buffer.
func BytesFromInts(values []int) ([]byte, error) {
	buf := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("%w: element %d (%d) is not a byte", ErrInvalidValueRange, i, v)
		}
		buf[i] = byte(v)
	}
	return buf, nil
}
