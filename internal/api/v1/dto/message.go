package dto

// MessageResponseDTO is the body of error and confirmation responses
type MessageResponseDTO struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
