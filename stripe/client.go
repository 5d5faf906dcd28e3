package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEndpoint = "https://api.stripe.com/v1/refunds"

// Client issues refund requests against the processor.
type Client interface {
	CreateRefund(ctx context.Context, secretKey string, data RequestData) (*GatewayResult, error)
}

// RestClient is the production Client. One synchronous call per refund,
// no retries; a timeout counts as a network failure.
type RestClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *RestClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &RestClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RestClient) CreateRefund(ctx context.Context, secretKey string, data RequestData) (*GatewayResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refund request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading refund response failed: %w", err)
	}

	result := &GatewayResult{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	// A non-JSON body is kept raw for the error message.
	json.Unmarshal(body, &result.Refund)

	return result, nil
}
