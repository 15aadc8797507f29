// Package webhooksender delivers signed webhooks to a receiver the way the
// telemetry provider does. It backs the send-test-webhook tool.
package webhooksender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/signature"
)

const (
	// DeliveryFailureCode is the code of errors raised before the receiver answered.
	DeliveryFailureCode = -1

	defaultWebhookTimeout = 30 * time.Second
	// Maximum response body size kept in errors
	maxResponseBodySize = 1024
	userAgent           = "vehicle-signals-webhook-sender/1.0"
)

// ErrChallengeMismatch is returned when the handshake answer is not the HMAC of the challenge.
var ErrChallengeMismatch = errors.New("challenge response does not match")

// Response is the answer of the receiver.
type Response struct {
	StatusCode int
	Body       []byte
}

// WebhookSender posts payloads signed with a shared secret.
type WebhookSender struct {
	client *http.Client
	secret string
}

// NewWebhookSender creates a WebhookSender. A nil client gets a default timeout.
func NewWebhookSender(client *http.Client, secret string) *WebhookSender {
	if client == nil {
		client = &http.Client{
			Timeout: defaultWebhookTimeout,
		}
	}
	return &WebhookSender{
		client: client,
		secret: secret,
	}
}

// SendWebhook posts body to targetURL with its signature header.
// Receiver answers with a status of 400 or above are returned as rich errors
// carrying that status.
func (w *WebhookSender) SendWebhook(ctx context.Context, targetURL string, body []byte) (*Response, error) {
	return w.post(ctx, targetURL, body, signature.Sign(string(body), w.secret))
}

// Handshake sends a VERIFY event for challenge and checks that the receiver
// answered with the HMAC of the challenge keyed by the shared secret.
func (w *WebhookSender) Handshake(ctx context.Context, targetURL, challenge string) (*Response, error) {
	body, err := json.Marshal(map[string]any{
		"eventType": "VERIFY",
		"data":      map[string]string{"challenge": challenge},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal handshake: %w", err)
	}
	resp, err := w.post(ctx, targetURL, body, "")
	if err != nil {
		return nil, err
	}

	var answer struct {
		Challenge string `json:"challenge"`
	}
	if err := json.Unmarshal(resp.Body, &answer); err != nil {
		return resp, fmt.Errorf("failed to decode handshake response: %w", err)
	}
	if !signature.Verify([]byte(challenge), answer.Challenge, w.secret) {
		return resp, ErrChallengeMismatch
	}
	return resp, nil
}

func (w *WebhookSender) post(ctx context.Context, targetURL string, body []byte, sig string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, richerrors.Error{
				Code: DeliveryFailureCode,
				Err:  fmt.Errorf("invalid URL: %w", err),
			}
		}
		return nil, fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if sig != "" {
		req.Header.Set(signature.HeaderName, sig)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, richerrors.Error{
			Code: DeliveryFailureCode,
			Err:  fmt.Errorf("failed to POST webhook: %w", err),
		}
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, richerrors.Error{
			Code: DeliveryFailureCode,
			Err:  fmt.Errorf("failed to read response: %w", err),
		}
	}
	result := &Response{StatusCode: resp.StatusCode, Body: respBody}
	if resp.StatusCode >= http.StatusBadRequest {
		return result, richerrors.Error{
			Code: resp.StatusCode,
			Err:  fmt.Errorf("receiver returned status code %d: %s", resp.StatusCode, string(respBody)),
		}
	}
	return result, nil
}
