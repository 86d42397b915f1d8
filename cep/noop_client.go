package cep

import "context"

// noopClient is used when no postal lookup service is configured.
// Every lookup misses; the portal falls back to manual address entry.
type noopClient struct{}

func (c *noopClient) Lookup(ctx context.Context, cep string) (*Address, error) {
	return nil, ErrNotFound
}
