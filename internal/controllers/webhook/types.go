package webhook

// ChallengeResponse answers the provider handshake.
type ChallengeResponse struct {
	// Challenge is the hex HMAC-SHA256 of the received challenge keyed by the shared secret.
	Challenge string `json:"challenge"`
}

// IngestResponse is returned once a webhook event has been stored.
type IngestResponse struct {
	OK bool `json:"ok"`
	// ID is the identifier of the stored event.
	ID string `json:"id"`
	// DatabaseStatus is always "stored" for accepted events.
	DatabaseStatus string `json:"databaseStatus"`
	// Signals counts the per-signal outcomes of the event.
	Signals SignalCounts `json:"signals"`
}

// SignalCounts summarizes how the signals of one event were handled.
type SignalCounts struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// ErrorResponse is the body of a rejected signature.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
