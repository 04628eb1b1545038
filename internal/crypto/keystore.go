package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paymesh/paymesh-server/internal/model"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for the signer keystore.
// N=2^18 costs ~256MB RAM and 0.5-2s per derivation; it only runs at startup
// and when sealing, so the cost is paid once per process.
var (
	scryptN = 1 << 18
	scryptR = 8
	scryptP = 1
)

const (
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
	keystoreExt  = ".cwt"
)

var (
	ErrKeystoreNotFound = errors.New("keystore file does not exist")
	ErrKeystoreEmpty    = errors.New("keystore file is empty")
	ErrInvalidPassword  = errors.New("invalid password")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newGCM derives the AES-256-GCM cipher for password and salt
func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// ReadKeystore reads the public part of a .cwt file (without decryption)
func ReadKeystore(filePath string) (*model.CWTFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeystoreNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() == 0 {
		return nil, ErrKeystoreEmpty
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Files may be written with a BOM for Windows editors
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var cwtFile model.CWTFile
	if err := json.Unmarshal(fileData, &cwtFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &cwtFile, nil
}
