package response

// APIResponse is the envelope returned by every HTTP endpoint. Use the OK /
// Fail / FailT helpers to construct instances.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// OK returns a successful response with data.
func OK[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{Success: true, Message: message, Data: data}
}

// Fail returns a failure response carrying only a message.
func Fail(message string) *APIResponse[any] {
	return &APIResponse[any]{Success: false, Message: message}
}

// FailT returns a failure response with structured detail, e.g. the
// per-row skip report of a rejected upload.
func FailT[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{Success: false, Message: message, Data: data}
}
