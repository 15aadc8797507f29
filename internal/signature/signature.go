// Package signature verifies provider webhook signatures and answers the
// provider's verification handshake. Both use HMAC-SHA256 keyed by the shared
// webhook secret and render digests as lowercase hex.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HeaderName is the request header carrying the hex digest of the raw body.
const HeaderName = "SC-Signature"

// Sign returns the lowercase hex HMAC-SHA256 of message keyed by secret.
// It is used to answer the VERIFY handshake with the provided challenge.
func Sign(message string, secret string) string {
	return hexDigest([]byte(message), secret)
}

// Verify reports whether header holds the HMAC-SHA256 of body keyed by secret.
// The digest is computed over body exactly as received; callers must not pass
// re-serialized JSON. An empty header or a digest of the wrong length is
// rejected before the constant-time comparison.
func Verify(body []byte, header string, secret string) bool {
	provided := strings.TrimSpace(header)
	if provided == "" {
		return false
	}
	computed := hexDigest(body, secret)
	if len(computed) != len(provided) {
		return false
	}
	return hmac.Equal([]byte(computed), []byte(provided))
}

func hexDigest(data []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}
