package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DIMO-Network/vehicle-signals-webhook/internal/signature"
	"github.com/google/uuid"
)

// NewVehicleID returns a vehicle id no other test uses.
func NewVehicleID() string {
	return "veh-" + uuid.New().String()
}

// SignedWebhookRequest builds a POST /webhook request whose body is signed with secret.
func SignedWebhookRequest(t *testing.T, body []byte, secret string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.HeaderName, signature.Sign(string(body), secret))
	return req
}
