package domain

// Envelope is the success body returned by every mutating operation.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Status is the reachability probe body.
type Status struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}
