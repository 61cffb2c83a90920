package dto

// APIResponse is the standard envelope for API responses
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse wraps data in the standard envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}

// SuccessResponse represents a bare message payload
type SuccessResponse struct {
	Message string `json:"message"`
}
