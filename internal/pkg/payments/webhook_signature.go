package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v72"
)

// DefaultTolerance is the maximum accepted age of a signed webhook payload.
const DefaultTolerance = 5 * time.Minute

// signedHeader is the parsed form of a Stripe-Signature header value:
// "t=<unix>,v1=<hex>[,v1=<hex>...]".
type signedHeader struct {
	timestamp  time.Time
	signatures [][]byte
}

// ConstructEvent verifies the provider signature over the exact raw payload
// bytes and decodes them into an event. Verification must run against the
// bytes as received; re-serializing the parsed JSON can change byte layout
// and invalidate the MAC.
func ConstructEvent(payload []byte, signatureHeader, secret string) (stripe.Event, error) {
	return ConstructEventWithTolerance(payload, signatureHeader, secret, DefaultTolerance)
}

// ConstructEventWithTolerance is ConstructEvent with an explicit replay
// tolerance. A tolerance <= 0 disables the timestamp check.
func ConstructEventWithTolerance(payload []byte, signatureHeader, secret string, tolerance time.Duration) (stripe.Event, error) {
	var event stripe.Event

	if strings.TrimSpace(signatureHeader) == "" {
		return event, ErrMissingSignature
	}
	if strings.TrimSpace(secret) == "" {
		return event, ErrMissingWebhookSecret
	}

	header, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return event, err
	}

	expected := computeSignature(header.timestamp, payload, secret)
	match := false
	for _, sig := range header.signatures {
		if hmac.Equal(expected, sig) {
			match = true
			break
		}
	}
	if !match {
		return event, ErrInvalidSignature
	}

	if tolerance > 0 && time.Since(header.timestamp) > tolerance {
		return event, fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("%w: malformed event payload: %v", ErrInvalidSignature, err)
	}
	return event, nil
}

func parseSignatureHeader(value string) (signedHeader, error) {
	var header signedHeader

	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return header, fmt.Errorf("%w: malformed signature header", ErrInvalidSignature)
		}
		switch parts[0] {
		case "t":
			unix, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return header, fmt.Errorf("%w: malformed timestamp", ErrInvalidSignature)
			}
			header.timestamp = time.Unix(unix, 0)
		case "v1":
			sig, err := hex.DecodeString(parts[1])
			if err != nil {
				// Skip malformed entries; another v1 candidate may be valid.
				continue
			}
			header.signatures = append(header.signatures, sig)
		default:
			// Unknown scheme versions (e.g. v0) are ignored.
		}
	}

	if header.timestamp.IsZero() || len(header.signatures) == 0 {
		return header, ErrInvalidSignature
	}
	return header, nil
}

// computeSignature MACs "<unix timestamp>.<payload>" with HMAC-SHA256.
func computeSignature(t time.Time, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(t.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
