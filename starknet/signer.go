package starknet

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/paymesh/paymesh-server/internal/crypto"

	"github.com/NethermindEth/juno/core/felt"
)

// Chain identifiers accepted by the relay
const (
	ChainMainnet = "SN_MAIN"
	ChainSepolia = "SN_SEPOLIA"
)

// curveOrder is the order of the STARK curve generator; signing scalars live in [1, curveOrder)
var curveOrder, _ = new(big.Int).SetString("800000000000010ffffffffffffffffb781126dcae7b2321e66a241adc64d2f", 16)

// Signer is the identity that authorizes pay transactions.
// It is built once at startup and only read afterwards.
type Signer struct {
	privateKey     *big.Int
	AccountAddress *felt.Felt
	ChainID        string
}

// SignerSource describes where the signer key comes from.
// Exactly one of PrivateKey and KeystoreFile is set.
type SignerSource struct {
	AccountAddress string
	ChainID        string
	PrivateKey     string
	KeystoreFile   string
	// Password supplies the keystore password; the returned slice is zeroed after use
	Password func() ([]byte, error)
}

// LoadSigner builds the signer identity. Any error is a startup error.
func LoadSigner(src SignerSource) (*Signer, error) {
	if src.ChainID != ChainMainnet && src.ChainID != ChainSepolia {
		return nil, fmt.Errorf("unsupported chain id %q", src.ChainID)
	}

	account, err := ParseAddress(src.AccountAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid account address: %w", err)
	}

	var key *big.Int
	switch {
	case src.PrivateKey != "" && src.KeystoreFile != "":
		return nil, errors.New("private key and keystore file are mutually exclusive")
	case src.PrivateKey != "":
		key, err = ParsePrivateKey(src.PrivateKey)
	case src.KeystoreFile != "":
		key, err = openKeystore(src)
	default:
		return nil, errors.New("no signer key configured")
	}
	if err != nil {
		return nil, err
	}

	return &Signer{
		privateKey:     key,
		AccountAddress: account,
		ChainID:        src.ChainID,
	}, nil
}

// PrivateKey returns a copy of the signing scalar
func (s *Signer) PrivateKey() *big.Int {
	return new(big.Int).Set(s.privateKey)
}

// String never includes key material
func (s *Signer) String() string {
	return fmt.Sprintf("signer(%s on %s)", s.AccountAddress, s.ChainID)
}

// ParsePrivateKey parses a hex signing scalar, with or without the 0x prefix
func ParsePrivateKey(hexKey string) (*big.Int, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")
	key, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, errors.New("private key is not a hex number")
	}
	return checkScalar(key)
}

func checkScalar(key *big.Int) (*big.Int, error) {
	if key.Sign() <= 0 || key.Cmp(curveOrder) >= 0 {
		return nil, errors.New("private key out of range")
	}
	return key, nil
}

func openKeystore(src SignerSource) (*big.Int, error) {
	if src.Password == nil {
		return nil, errors.New("keystore password source not set")
	}
	password, err := src.Password()
	if err != nil {
		return nil, err
	}
	defer clear(password)

	header, signerData, err := crypto.OpenSigner(src.KeystoreFile, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore: %w", err)
	}
	defer clear(signerData.PrivateKey)

	// The keystore must belong to the configured account and network
	keystoreAccount, err := ParseAddress(header.Address)
	if err != nil {
		return nil, fmt.Errorf("keystore address: %w", err)
	}
	configured, _ := ParseAddress(src.AccountAddress)
	if !keystoreAccount.Equal(configured) {
		return nil, fmt.Errorf("keystore belongs to %s, not %s", header.Address, src.AccountAddress)
	}
	if header.Network != src.ChainID {
		return nil, fmt.Errorf("keystore is for %s, configured chain is %s", header.Network, src.ChainID)
	}

	return checkScalar(new(big.Int).SetBytes(signerData.PrivateKey))
}
