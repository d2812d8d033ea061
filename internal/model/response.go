package model

// Ack is the generic success body.
type Ack struct {
	Success bool `json:"success"`
}
