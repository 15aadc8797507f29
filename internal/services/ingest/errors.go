package ingest

const (
	// ErrSecretNotConfigured is returned for every webhook while no shared secret is set.
	ErrSecretNotConfigured = constError("webhook secret not configured")
	// ErrMissingChallenge is returned for a handshake without data.challenge.
	ErrMissingChallenge = constError("missing challenge")
	// ErrInvalidSignature is returned when the signature header does not match the body.
	ErrInvalidSignature = constError("invalid signature")
	// ErrEventPersistence is returned when the event row could not be written.
	ErrEventPersistence = constError("failed to store event")
)

type constError string

func (e constError) Error() string {
	return string(e)
}
