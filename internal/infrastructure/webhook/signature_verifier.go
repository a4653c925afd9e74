package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"lease_ledger/internal/config"
	"lease_ledger/internal/usecase/interfaces"
)

const (
	// SignatureHeader is the header the provider signs notifications with.
	SignatureHeader = "Paymongo-Signature"

	DefaultTolerance = 300 * time.Second
)

var (
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrMissingSignature    = fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	ErrMalformedHeader     = fmt.Errorf("%w: malformed signature header", ErrInvalidSignature)
	ErrStaleTimestamp      = fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	ErrSignatureMismatch   = fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	ErrSecretNotConfigured = fmt.Errorf("%w: webhook secret not configured", ErrInvalidSignature)
)

// SignatureVerifier checks that a notification body was signed by the payment
// provider with the shared secret and is recent enough to not be a replay.
//
// Header format: "t=<unix>,te=<hex>,li=<hex>". The digest is HMAC-SHA256 over
// "<t>.<raw body>"; a match on either the test (te) or live (li) candidate is
// accepted.
type SignatureVerifier struct {
	secret    []byte
	tolerance time.Duration
	failOpen  bool
	now       func() time.Time
}

var _ interfaces.ISignatureVerifier = (*SignatureVerifier)(nil)

type Option func(*SignatureVerifier)

// WithClock replaces the clock used for the freshness check.
func WithClock(now func() time.Time) Option {
	return func(v *SignatureVerifier) { v.now = now }
}

func NewSignatureVerifier(cfg config.WebhookConfig, opts ...Option) *SignatureVerifier {
	v := &SignatureVerifier{
		secret:    []byte(cfg.Secret),
		tolerance: cfg.Tolerance,
		now:       time.Now,
	}
	if v.tolerance <= 0 {
		v.tolerance = DefaultTolerance
	}
	for _, opt := range opts {
		opt(v)
	}

	if len(v.secret) == 0 {
		switch {
		case cfg.Production:
			log.Printf("[webhook][verifier] WEBHOOK_SECRET missing in production; every notification will be rejected")
		case cfg.AllowUnsigned:
			v.failOpen = true
			log.Printf("[webhook][verifier] UNSIGNED MODE ENABLED: notifications are accepted without signature verification. Never use this outside development.")
		default:
			log.Printf("[webhook][verifier] WEBHOOK_SECRET missing; notifications will be rejected (set WEBHOOK_ALLOW_UNSIGNED=true to bypass in development)")
		}
	}
	return v
}

// Verify returns nil when the body is authentic and fresh. Every failure wraps
// ErrInvalidSignature.
func (v *SignatureVerifier) Verify(rawBody []byte, header string) error {
	if len(v.secret) == 0 {
		if v.failOpen {
			log.Printf("[webhook][verifier] UNSIGNED MODE: accepting notification without verification body_len=%d", len(rawBody))
			return nil
		}
		return ErrSecretNotConfigured
	}

	header = strings.TrimSpace(header)
	if header == "" {
		return ErrMissingSignature
	}

	ts, candidates, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	age := v.now().Sub(time.Unix(ts, 0))
	if age < 0 {
		age = -age
	}
	if age > v.tolerance {
		return ErrStaleTimestamp
	}

	expected := Sign(v.secret, ts, rawBody)
	for _, candidate := range candidates {
		got, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

// Sign computes the raw HMAC-SHA256 digest the provider sends hex-encoded.
func Sign(secret []byte, timestamp int64, rawBody []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	return mac.Sum(nil)
}

// SignatureHeaderValue builds a header value for the given body, as the
// provider would. Used by tests and local tooling.
func SignatureHeaderValue(secret string, timestamp int64, rawBody []byte, live bool) string {
	sig := hex.EncodeToString(Sign([]byte(secret), timestamp, rawBody))
	if live {
		return fmt.Sprintf("t=%d,te=,li=%s", timestamp, sig)
	}
	return fmt.Sprintf("t=%d,te=%s,li=", timestamp, sig)
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		ts         int64
		hasTS      bool
		candidates []string
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return 0, nil, ErrMalformedHeader
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "t":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrMalformedHeader
			}
			ts, hasTS = n, true
		case "te", "li":
			if value != "" {
				candidates = append(candidates, value)
			}
		}
	}
	if !hasTS || len(candidates) == 0 {
		return 0, nil, ErrMalformedHeader
	}
	return ts, candidates, nil
}
