package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/benclube/membership-service/monitoring"
)

// httpClient implements Client using the ViaCEP HTTP API
type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

// newHTTPClient creates a new HTTP client with appropriate timeout
func newHTTPClient(baseURL string) *httpClient {
	return &httpClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second, // Short timeout to avoid blocking registration flows
		},
	}
}

// viaCEPResponse is the ViaCEP wire format. Unknown codes come back as
// HTTP 200 with {"erro": true}.
type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup resolves a CEP. Non-digit characters are stripped before the call;
// a CEP must have exactly 8 digits.
func (c *httpClient) Lookup(ctx context.Context, cep string) (*Address, error) {
	cleaned := digitsOnly(cep)
	if len(cleaned) != 8 {
		return nil, fmt.Errorf("%w: %q is not a valid CEP", ErrNotFound, cep)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cleaned)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEP request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	monitoring.RecordExternalCall(ctx, "viacep", "lookup", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to reach CEP service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CEP service returned status %d", resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode CEP response: %w", err)
	}

	if payload.Erro {
		return nil, ErrNotFound
	}

	return &Address{
		Address:  payload.Logradouro,
		District: payload.Bairro,
		City:     payload.Localidade,
		State:    payload.UF,
	}, nil
}

// digitsOnly strips every non-digit character from s
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
