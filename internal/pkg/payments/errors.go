package payments

import "errors"

// Webhook verification errors. The HTTP edge maps these onto the response
// contract: missing/invalid signature is a client-data problem (400, the
// provider will not fix it by retrying), a missing secret is a deployment
// problem (500).
var (
	ErrMissingSignature     = errors.New("missing webhook signature header")
	ErrMissingWebhookSecret = errors.New("webhook signing secret is not configured")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
)
