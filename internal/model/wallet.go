package model

// CWTFile represents the encrypted signer keystore (.cwt) structure
type CWTFile struct {
	Network    string `json:"network"` // chain id, e.g. SN_SEPOLIA
	Address    string `json:"address"` // account address the key signs for
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// SignerData represents decrypted signer data
type SignerData struct {
	PrivateKey []byte `json:"privateKey"` // 32-byte big-endian scalar (base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
