// Package webhooks validates the authenticity of inbound webhook deliveries.
package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Webhook request headers. Lookup is case-insensitive.
const (
	// HeaderID is the unique delivery identifier
	HeaderID = "Webhook-Id"
	// HeaderTimestamp is the delivery time in Unix seconds
	HeaderTimestamp = "Webhook-Timestamp"
	// HeaderSignature holds space-separated "version,signature" pairs
	HeaderSignature = "Webhook-Signature"
)

// DefaultTolerance is the default allowed clock skew between the delivery
// timestamp and local time.
const DefaultTolerance = 5 * time.Minute

// Configuration and input errors. Each precondition violation is a distinct
// kind so integrators can tell a misconfiguration apart from a forgery.
var (
	// ErrMissingSecret indicates no signing secret was provided
	ErrMissingSecret = errors.New("webhook signing secret is required")
	// ErrMalformedSecret indicates the secret key is not two underscore-delimited parts
	ErrMalformedSecret = errors.New("webhook signing secret must have the form {scheme}_{base64 key}")
	// ErrMissingBody indicates the request carried no body
	ErrMissingBody = errors.New("webhook request body is required")
	// ErrInvalidSignature indicates no signature pair matched the expected signature
	ErrInvalidSignature = errors.New("webhook signature is invalid")
)

// MissingHeaderError indicates a required webhook header was absent.
type MissingHeaderError struct {
	Header string
}

// Error implements the error interface
func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing required webhook header %q", e.Header)
}

// TimestampError indicates the delivery timestamp was unparseable or outside
// the allowed tolerance. It is distinct from a signature failure so stale
// deliveries can be alerted on separately from forged ones.
type TimestampError struct {
	Timestamp string
	Reason    string
}

// Error implements the error interface
func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid webhook timestamp %q: %s", e.Timestamp, e.Reason)
}

// Validator checks webhook deliveries against a signing secret.
type Validator struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithTolerance overrides the allowed timestamp skew.
func WithTolerance(d time.Duration) Option {
	return func(v *Validator) {
		v.tolerance = d
	}
}

// WithNowFunc overrides the clock, primarily for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator builds a Validator from a signing secret of the form
// "{scheme}_{base64 key}". A malformed secret fails fast rather than
// silently validating with a truncated key.
func NewValidator(secret string, opts ...Option) (*Validator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	parts := strings.Split(secret, "_")
	if len(parts) != 2 {
		return nil, ErrMalformedSecret
	}

	key, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSecret, err)
	}

	v := &Validator{
		key:       key,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// ValidateRequest validates an inbound *http.Request, consuming its body.
func (v *Validator) ValidateRequest(req *http.Request) error {
	if req.Body == nil {
		return ErrMissingBody
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("error reading webhook body: %w", err)
	}
	return v.Validate(req.Header, body)
}

// Validate checks that body and headers were signed by the holder of the
// secret. The signature is computed over the literal body bytes as received.
// A nil return means the delivery is authentic and within tolerance; every
// failure path returns a distinct error kind.
func (v *Validator) Validate(header http.Header, body []byte) error {
	if len(body) == 0 {
		return ErrMissingBody
	}

	id := header.Get(HeaderID)
	timestamp := header.Get(HeaderTimestamp)
	signature := header.Get(HeaderSignature)
	switch {
	case id == "":
		return &MissingHeaderError{Header: HeaderID}
	case timestamp == "":
		return &MissingHeaderError{Header: HeaderTimestamp}
	case signature == "":
		return &MissingHeaderError{Header: HeaderSignature}
	}

	if err := v.checkTimestamp(timestamp); err != nil {
		return err
	}

	signedContent := id + "." + timestamp + "." + string(body)
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(signedContent))
	expected := mac.Sum(nil)

	// The header may carry multiple version,signature pairs for secret
	// rotation; any single match succeeds. Malformed pairs are skipped, not
	// fatal.
	for _, pair := range strings.Split(signature, " ") {
		_, sig, found := strings.Cut(pair, ",")
		if !found {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return ErrInvalidSignature
}

func (v *Validator) checkTimestamp(timestamp string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return &TimestampError{Timestamp: timestamp, Reason: "not a Unix timestamp"}
	}

	skew := v.now().Sub(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > v.tolerance {
		return &TimestampError{Timestamp: timestamp, Reason: fmt.Sprintf("outside tolerance of %s", v.tolerance)}
	}
	return nil
}
