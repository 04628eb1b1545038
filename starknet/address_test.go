package starknet

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMember   = "0x04a3f1b3b62e4c8b3c1b6a1f0d2c9e8d7b6a5f4e3d2c1b0a9f8e7d6c5b4a3f2e"
	testContract = "0x02cc3107900daff156c0888eccbcd901500f9bf440ab694e1eecc14f4641d1dc"
	testAccount  = "0x0305b969b430721cda31852d669cdc23b2e4cfc889ab0ed855f5c70ca2668e0a"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{name: "lowercase", address: testMember, want: true},
		{name: "uppercase digits", address: "0x" + strings.ToUpper(testMember[2:]), want: true},
		{name: "all zeros", address: "0x" + strings.Repeat("0", 64), want: true},
		{name: "all f", address: "0x" + strings.Repeat("f", 64), want: true},
		{name: "empty", address: "", want: false},
		{name: "prefix only", address: "0x", want: false},
		{name: "missing prefix", address: "00" + testMember[2:], want: false},
		{name: "uppercase prefix", address: "0X" + testMember[2:], want: false},
		{name: "one short", address: testMember[:65], want: false},
		{name: "one long", address: testMember + "0", want: false},
		{name: "non hex digit", address: "0x" + strings.Repeat("g", 64), want: false},
		{name: "space inside", address: testMember[:30] + " " + testMember[31:], want: false},
		{name: "non ascii same byte length", address: "0x" + strings.Repeat("a", 62) + "é", want: false},
		{name: "non ascii same rune count", address: "0x" + strings.Repeat("é", 64), want: false},
		{name: "short without prefix", address: "x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.address))
		})
	}
}

func TestIsValidAddressNeverPanics(t *testing.T) {
	f := func(s string) bool {
		got := IsValidAddress(s)
		want := len(s) == AddressLength && strings.HasPrefix(s, AddressPrefix) &&
			strings.Trim(s[2:], "0123456789abcdefABCDEF") == ""
		return got == want
	}
	require.NoError(t, quick.Check(f, nil))

	// random strings are almost never valid; make sure valid ones round-trip too
	g := func(b [32]byte) bool {
		return IsValidAddress("0x" + hexString(b[:]))
	}
	require.NoError(t, quick.Check(g, nil))
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, digits[c>>4], digits[c&0x0f])
	}
	return string(out)
}

func TestParseAddress(t *testing.T) {
	f, err := ParseAddress(testContract)
	require.NoError(t, err)
	// felts print without leading zeros
	assert.Equal(t, "0x2cc3107900daff156c0888eccbcd901500f9bf440ab694e1eecc14f4641d1dc", f.String())

	_, err = ParseAddress("0x1234")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	// shape-valid but above the field prime
	_, err = ParseAddress("0x" + strings.Repeat("f", 64))
	assert.ErrorIs(t, err, ErrAddressOutOfRange)

	// the prime itself does not fit either
	_, err = ParseAddress("0x0800000000000011000000000000000000000000000000000000000000000001")
	assert.ErrorIs(t, err, ErrAddressOutOfRange)

	// prime - 1 is the largest valid felt
	_, err = ParseAddress("0x0800000000000011000000000000000000000000000000000000000000000000")
	assert.NoError(t, err)
}
