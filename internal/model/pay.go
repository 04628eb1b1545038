package model

// PayResult is the outcome of an accepted pay submission
type PayResult struct {
	TxHash string `json:"txHash"`
}
