// Package carrier implements the outbound client for the external shipping
// carrier. The carrier is kept eventually consistent with internal order
// state: a failed call here never fails the business operation that caused it.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"shop/internal/core/ports"
)

const (
	// opCancelOrder is the carrier's numeric operation code for cancelling
	// a shipment via the update-order endpoint.
	opCancelOrder = 4

	// Carrier response codes. Zero is the carrier's generic success;
	// codeAlreadyCancelled is returned when the shipment was cancelled
	// earlier through another channel.
	codeSuccess          = 0
	codeAlreadyCancelled = 1010

	defaultTimeout = 10 * time.Second
)

type cancelRequest struct {
	Operation    int    `json:"operation"`
	TrackingCode string `json:"tracking_code"`
	Note         string `json:"note"`
}

type cancelResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client talks to the shipping carrier's HTTP API.
//
// All calls are bounded by a per-request timeout on top of the caller's
// context, so a stalled carrier can never pin a worker.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a carrier client for the given API base URL and token.
func NewClient(baseURL string, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// CancelShipment asks the carrier to cancel the shipment identified by
// trackingCode. The returned outcome classifies the carrier's answer;
// transport and protocol failures map to OutcomeError with a non-nil error.
func (c *Client) CancelShipment(ctx context.Context, trackingCode string, note string) (ports.CarrierOutcome, error) {
	payload, err := json.Marshal(cancelRequest{
		Operation:    opCancelOrder,
		TrackingCode: trackingCode,
		Note:         note,
	})
	if err != nil {
		return ports.OutcomeError, fmt.Errorf("encode cancel request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v2/shipping-order/update",
		bytes.NewReader(payload),
	)
	if err != nil {
		return ports.OutcomeError, fmt.Errorf("build cancel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("carrier cancel call failed",
			"tracking_code", trackingCode,
			"error", err,
		)
		return ports.OutcomeError, fmt.Errorf("carrier cancel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("carrier cancel rejected",
			"tracking_code", trackingCode,
			"http_status", resp.StatusCode,
		)
		return ports.OutcomeError, fmt.Errorf("carrier cancel: unexpected status %d", resp.StatusCode)
	}

	var body cancelResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.OutcomeError, fmt.Errorf("decode cancel response: %w", err)
	}

	switch body.Code {
	case codeSuccess:
		c.logger.Info("carrier cancelled shipment", "tracking_code", trackingCode)
		return ports.OutcomeCancelled, nil
	case codeAlreadyCancelled:
		c.logger.Info("carrier shipment already cancelled", "tracking_code", trackingCode)
		return ports.OutcomeAlreadyCancelled, nil
	default:
		c.logger.Warn("carrier cancel returned error code",
			"tracking_code", trackingCode,
			"carrier_code", body.Code,
			"carrier_message", body.Message,
		)
		return ports.OutcomeError, fmt.Errorf("carrier cancel: code %d: %s", body.Code, body.Message)
	}
}
