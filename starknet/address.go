package starknet

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/utils"
)

const (
	AddressPrefix = "0x"
	AddressLength = 66 // prefix + 64 hex digits
)

var (
	// ErrInvalidAddress is returned when a string does not have the address shape
	ErrInvalidAddress = errors.New("invalid starknet address")
	// ErrAddressOutOfRange is returned when a well-shaped address does not fit in a field element
	ErrAddressOutOfRange = errors.New("starknet address out of field range")

	// fieldPrime is the Starknet field modulus: 2^251 + 17*2^192 + 1
	fieldPrime, _ = new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)
)

// IsValidAddress reports whether address is 0x followed by exactly 64 hex digits.
// Malformed input of any kind simply yields false.
func IsValidAddress(address string) bool {
	if len(address) != AddressLength || address[:len(AddressPrefix)] != AddressPrefix {
		return false
	}
	for i := len(AddressPrefix); i < len(address); i++ {
		if !isHexDigit(address[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// ParseAddress converts a validated address into a field element.
// Deeper checks (deployed account, class) are left to the chain.
func ParseAddress(address string) (*felt.Felt, error) {
	if !IsValidAddress(address) {
		return nil, ErrInvalidAddress
	}

	value, ok := new(big.Int).SetString(address[len(AddressPrefix):], 16)
	if !ok {
		return nil, ErrInvalidAddress
	}
	if value.Cmp(fieldPrime) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrAddressOutOfRange, address)
	}

	f, err := utils.HexToFelt(address)
	if err != nil {
		return nil, fmt.Errorf("failed to convert address to felt: %w", err)
	}
	return f, nil
}
