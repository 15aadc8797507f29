// Command send-test-webhook signs a webhook payload with the shared secret and
// delivers it to a running receiver, or performs the provider handshake.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/logging"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/webhooksender"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const samplePayload = `{
  "eventId": "test-event-001",
  "eventType": "VEHICLE_STATE",
  "data": {
    "vehicle": {"id": "test-vehicle-001", "make": "TESLA", "model": "Model 3", "year": 2022},
    "signals": [
      {"code": "battery-level", "name": "Level", "group": "Battery", "body": {"value": 80, "unit": "%"}},
      {"code": "charge-amperage", "name": "Amperage", "group": "Charge", "body": {"value": 32, "unit": "A"}},
      {"code": "location", "name": "PreciseLocation", "group": "Location", "body": {"latitude": 37.77, "longitude": -122.41}},
      {"code": "broken", "body": {"value": 1}}
    ]
  },
  "meta": {"deliveryId": "test-delivery-001", "mode": "TEST"}
}`

type options struct {
	url     string
	file    string
	secret  string
	verify  string
	envFile string
	timeout time.Duration
}

func main() {
	logger := logging.GetAndSetDefaultLogger("send-test-webhook")
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "send-test-webhook",
		Short: "Send a signed webhook to a vehicle signals receiver",
		Example: `  send-test-webhook --file payload.json
  send-test-webhook --verify my-challenge --url http://localhost:8080/webhook`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.envFile != "" {
				if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to load env file: %w", err)
				}
			}
			if opts.secret == "" {
				opts.secret = os.Getenv("WEBHOOK_SECRET")
			}
			return run(cmd.Context(), &logger, opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "http://localhost:8080/webhook", "webhook endpoint")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON payload to send (default: built-in VEHICLE_STATE sample)")
	cmd.Flags().StringVar(&opts.secret, "secret", "", "shared secret (default: $WEBHOOK_SECRET)")
	cmd.Flags().StringVar(&opts.verify, "verify", "", "send a VERIFY handshake with this challenge instead of a payload")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "env file to read WEBHOOK_SECRET from")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to send webhook.")
	}
}

func run(ctx context.Context, logger *zerolog.Logger, opts *options) error {
	if opts.secret == "" {
		return fmt.Errorf("a secret is required, use --secret or WEBHOOK_SECRET")
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	sender := webhooksender.NewWebhookSender(nil, opts.secret)
	if opts.verify != "" {
		resp, err := sender.Handshake(ctx, opts.url, opts.verify)
		if err != nil {
			return err
		}
		logger.Info().Int("status", resp.StatusCode).Str("body", string(resp.Body)).Msg("Handshake response matches.")
		return nil
	}

	body, err := readPayload(opts.file)
	if err != nil {
		return err
	}
	resp, err := sender.SendWebhook(ctx, opts.url, body)
	if err != nil {
		return err
	}
	logger.Info().Int("status", resp.StatusCode).Str("body", string(resp.Body)).Msg("Webhook delivered.")
	return nil
}

func readPayload(file string) ([]byte, error) {
	if file == "" {
		return []byte(samplePayload), nil
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("payload file %s is not valid JSON", file)
	}
	return body, nil
}
