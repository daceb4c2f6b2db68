package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NFSePayload is sent by the worker pool to the NFS-e emitter sidecar.
// The sidecar signs and transmits the RPS to the municipal web service and
// returns the verification code of the issued note.
type NFSePayload struct {
	CNPJ         string  `json:"cnpj"`
	ClientName   string  `json:"client_name"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	SettlementID string  `json:"settlement_id"`
}

// NFSeResponse is returned by the sidecar after the municipal service replies.
type NFSeResponse struct {
	VerificationCode string `json:"verification_code"`
	Status           string `json:"status"` // "issued" | "rejected"
	Messages         []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"messages"`
}

// NFSeClient is an HTTP client that delegates NFS-e communication to the
// sidecar. The decoupling isolates municipal web service failures from the
// core backend.
type NFSeClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewNFSeClient(sidecarURL string) *NFSeClient {
	return &NFSeClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Emit sends a POST to the sidecar and returns the issued note response.
func (c *NFSeClient) Emit(ctx context.Context, payload NFSePayload) (*NFSeResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("nfse: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/emit", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("nfse: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nfse: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nfse: sidecar returned %d", resp.StatusCode)
	}

	var result NFSeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("nfse: decode response: %w", err)
	}
	return &result, nil
}
