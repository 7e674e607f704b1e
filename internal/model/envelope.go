package model

// DefaultSuccessMessage is used when a successful response carries no specific message.
const DefaultSuccessMessage = "operation successful"

// Envelope is the uniform JSON body returned by every API endpoint.
// When Success is false, Data is null and Error is non-empty.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// OK builds a successful envelope around data.
func OK[T any](data T, message string) Envelope[T] {
	if message == "" {
		message = DefaultSuccessMessage
	}
	return Envelope[T]{Success: true, Data: &data, Message: message}
}

// Fail builds a failed envelope. errText falls back to message when empty.
func Fail(message, errText string) Envelope[any] {
	if errText == "" {
		errText = message
	}
	return Envelope[any]{Success: false, Message: message, Error: errText}
}
