package starknet

import (
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/paymesh/paymesh-server/internal/crypto"
	"github.com/paymesh/paymesh-server/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "0x0139fe4d6f02e666e86a6f58e65060f115cd3c185bd9e98bd829636931458f79"

func TestLoadSignerFromPrivateKey(t *testing.T) {
	signer, err := LoadSigner(SignerSource{
		AccountAddress: testAccount,
		ChainID:        ChainSepolia,
		PrivateKey:     testPrivateKey,
	})
	require.NoError(t, err)

	want, _ := new(big.Int).SetString(testPrivateKey[2:], 16)
	assert.Equal(t, 0, want.Cmp(signer.PrivateKey()))
	assert.Equal(t, ChainSepolia, signer.ChainID)
	assert.NotContains(t, signer.String(), testPrivateKey[2:])

	// callers get a copy, never the stored scalar
	signer.PrivateKey().SetInt64(1)
	assert.Equal(t, 0, want.Cmp(signer.PrivateKey()))

	bare, err := LoadSigner(SignerSource{
		AccountAddress: testAccount,
		ChainID:        ChainSepolia,
		PrivateKey:     testPrivateKey[2:],
	})
	require.NoError(t, err)
	assert.Equal(t, 0, want.Cmp(bare.PrivateKey()))
}

func TestLoadSignerErrors(t *testing.T) {
	tests := []struct {
		name string
		src  SignerSource
	}{
		{name: "unknown chain", src: SignerSource{AccountAddress: testAccount, ChainID: "SN_GOERLI", PrivateKey: testPrivateKey}},
		{name: "empty chain", src: SignerSource{AccountAddress: testAccount, PrivateKey: testPrivateKey}},
		{name: "bad account", src: SignerSource{AccountAddress: "0x1", ChainID: ChainMainnet, PrivateKey: testPrivateKey}},
		{name: "no key", src: SignerSource{AccountAddress: testAccount, ChainID: ChainMainnet}},
		{name: "zero key", src: SignerSource{AccountAddress: testAccount, ChainID: ChainMainnet, PrivateKey: "0x0"}},
		{name: "key above curve order", src: SignerSource{AccountAddress: testAccount, ChainID: ChainMainnet, PrivateKey: "0x0800000000000011000000000000000000000000000000000000000000000000"}},
		{name: "not hex", src: SignerSource{AccountAddress: testAccount, ChainID: ChainMainnet, PrivateKey: "0xzz"}},
		{name: "both sources", src: SignerSource{AccountAddress: testAccount, ChainID: ChainMainnet, PrivateKey: testPrivateKey, KeystoreFile: "k.cwt"}},
		{name: "keystore without password", src: SignerSource{AccountAddress: testAccount, ChainID: ChainMainnet, KeystoreFile: "k.cwt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := LoadSigner(tt.src)
			assert.Error(t, err)
			assert.Nil(t, signer)
		})
	}
}

func TestLoadSignerFromKeystore(t *testing.T) {
	want, _ := new(big.Int).SetString(testPrivateKey[2:], 16)
	path := filepath.Join(t.TempDir(), "signer.cwt")
	require.NoError(t, crypto.SealSigner(path, ChainSepolia, testAccount, "", &model.SignerData{
		PrivateKey: want.Bytes(),
	}, []byte("pw")))

	password := func() ([]byte, error) { return []byte("pw"), nil }

	signer, err := LoadSigner(SignerSource{
		AccountAddress: testAccount,
		ChainID:        ChainSepolia,
		KeystoreFile:   path,
		Password:       password,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, want.Cmp(signer.PrivateKey()))

	// same file, configured for the wrong network
	_, err = LoadSigner(SignerSource{
		AccountAddress: testAccount,
		ChainID:        ChainMainnet,
		KeystoreFile:   path,
		Password:       password,
	})
	assert.ErrorContains(t, err, "keystore is for SN_SEPOLIA")

	_, err = LoadSigner(SignerSource{
		AccountAddress: testAccount,
		ChainID:        ChainSepolia,
		KeystoreFile:   path,
		Password:       func() ([]byte, error) { return nil, errors.New("no tty") },
	})
	assert.ErrorContains(t, err, "no tty")
}
