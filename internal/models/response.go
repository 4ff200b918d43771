package models

// APIResponse is the envelope returned by every endpoint
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK wraps data in a successful envelope
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Message: "Success", Data: data}
}

// OKMessage wraps data in a successful envelope with a custom message
func OKMessage(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with no data
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
