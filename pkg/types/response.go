package types

// ErrorEnvelope is the wire shape for every non-2xx response.
type ErrorEnvelope struct {
	Error string `json:"error"`
}
