package model

// ErrorResponse is the JSON structure for all API error responses.
type ErrorResponse struct {
	Message string `json:"message" example:"INVALID ADDRESS"`
}
