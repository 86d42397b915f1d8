package cep

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the postal service knows nothing about a CEP
var ErrNotFound = errors.New("cep not found")

// Address is the resolved address breakdown for a postal code
type Address struct {
	Address  string `json:"address"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Client resolves Brazilian postal codes (CEP) to address breakdowns.
// Implementations must treat an unknown code as ErrNotFound, not a failure.
type Client interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}

// NewClient creates a CEP client. If baseURL is empty, a no-op client is
// returned so the registry works without the postal lookup dependency.
func NewClient(baseURL string) Client {
	if baseURL == "" {
		return &noopClient{}
	}
	return newHTTPClient(baseURL)
}
