package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/paymesh/paymesh-server/internal/model"
)

// OpenSigner reads and decrypts a .cwt keystore.
// password must be []byte for security (caller should zero it after use).
// Caller should clear the returned PrivateKey once it has been consumed.
func OpenSigner(filePath string, password []byte) (*model.CWTFile, *model.SignerData, error) {
	cwtFile, err := ReadKeystore(filePath)
	if err != nil {
		return nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(cwtFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(cwtFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != nonceLen {
		return nil, nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cwtFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext)

	var signerData model.SignerData
	if err := json.Unmarshal(plaintext, &signerData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal signer data: %w", err)
	}

	return cwtFile, &signerData, nil
}
