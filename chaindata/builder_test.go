// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package chaindata

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"
)

const (
	subnetInfoFixture = "0828feff010013ffffffffffffffff214e010104feff0300c8010401040d03a1050000c28ff4070398b6d54370c07a546ab0bab5ca9847eb5890ada1bda127633e607097ad4517dd2ca0f010"
	subnetOwnerSS58   = "5EcYQ3W77ndrmMWdvVQusoFqY8doxfP3U2zrh7xZQiaz7avY"
	aliceHex          = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceSS58         = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	alicePolkadotSS58 = "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"
	onesSS58          = "5C62Ck4UrFPiBtoCmeSrgF7x9yv9mn38446dhCpsi2mLHiFT"
	twosSS58          = "5C7LYpP2ZH3tpKbvVvwiVe54AapxErdPBbvkYhe6y9ZBkqWt"
	zeroSS58          = "5C4hrfjw9DjXZTzV3MwzrrAr9P1MJhSrvWGWqi1eSuyUpnhM"
)

var (
	aliceKey, _ = hex.DecodeString(aliceHex)
	onesKey = bytes.Repeat([]byte{1}, 32)
	twosKey = bytes.Repeat([]byte{2}, 32)
	zeroKey = make([]byte, 32)
)

func fromHex(t testing.TB, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex fixture: %v", err)
	}
	return data
}

// scaleBuilder assembles scale encoded test inputs.
type scaleBuilder struct {
	buf []byte
}

func (b *scaleBuilder) raw(data []byte) *scaleBuilder {
	b.buf = append(b.buf, data...)
	return b
}

func (b *scaleBuilder) u8(v uint8) *scaleBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *scaleBuilder) u16(v uint16) *scaleBuilder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

func (b *scaleBuilder) u32(v uint32) *scaleBuilder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *scaleBuilder) u64(v uint64) *scaleBuilder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

func (b *scaleBuilder) u128(lo, hi uint64) *scaleBuilder {
	return b.u64(lo).u64(hi)
}

func (b *scaleBuilder) boolean(v bool) *scaleBuilder {
	if v {
		return b.u8(1)
	}
	return b.u8(0)
}

func (b *scaleBuilder) compact(v uint64) *scaleBuilder {
	switch {
	case v < 1<<6:
		return b.u8(uint8(v << 2))
	case v < 1<<14:
		return b.u16(uint16(v<<2 | 1))
	case v < 1<<30:
		return b.u32(uint32(v<<2 | 2))
	}

	payload := binary.LittleEndian.AppendUint64(nil, v)
	for len(payload) > 4 && payload[len(payload)-1] == 0 {
		payload = payload[:len(payload)-1]
	}
	b.u8(uint8(len(payload)-4)<<2 | 3)
	return b.raw(payload)
}

// compact128 writes a 16 byte big integer compact.
func (b *scaleBuilder) compact128(lo, hi uint64) *scaleBuilder {
	b.u8(12<<2 | 3)
	return b.u128(lo, hi)
}

func (b *scaleBuilder) text(s string) *scaleBuilder {
	b.compact(uint64(len(s)))
	return b.raw([]byte(s))
}

func (b *scaleBuilder) build() []byte {
	return b.buf
}
