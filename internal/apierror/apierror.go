// Package apierror holds the only error bodies the local API sends. Backend
// and internal details never reach the client through here.
package apierror

// APIError is the envelope of every 4xx/5xx response. Redirect is set on 401
// so the screen goes back to login.
type APIError struct {
	Detail   string `json:"detail"`
	Redirect string `json:"redirect,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// LoginRedirect is the 401 body.
func LoginRedirect(msg string) *APIError {
	return &APIError{Detail: msg, Redirect: "/login"}
}

// ValidationError lists failing fields by their validator tag.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Données invalides", Fields: fields}
}
