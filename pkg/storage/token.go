package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// TokenSigner mints and validates self-contained download tokens, so a
// report link can be shared without carrying a session token.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner constructs a signer with the provided secret and TTL.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate returns a signed token naming a report and its output format.
func (s *TokenSigner) Generate(report, format string) (string, time.Time, error) {
	if report == "" || format == "" {
		return "", time.Time{}, fmt.Errorf("report and format required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := time.Now().Add(s.ttl)
	encodedFormat := base64.RawURLEncoding.EncodeToString([]byte(format))
	payload := fmt.Sprintf("%s|%d|%s", report, expiresAt.Unix(), encodedFormat)
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	token := strings.Join([]string{report, fmt.Sprintf("%d", expiresAt.Unix()), encodedFormat, signature}, ".")
	return token, expiresAt, nil
}

// Parse validates a token and returns the embedded report and format.
func (s *TokenSigner) Parse(token string) (report, format string, expiresAt time.Time, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", time.Time{}, fmt.Errorf("invalid token format")
	}
	report = parts[0]
	ts := parts[1]
	encodedFormat := parts[2]
	signature := parts[3]

	rawFormat, err := base64.RawURLEncoding.DecodeString(encodedFormat)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("decode format: %w", err)
	}

	expUnix, err := parseUnix(ts)
	if err != nil {
		return "", "", time.Time{}, err
	}
	expiresAt = time.Unix(expUnix, 0)

	payload := fmt.Sprintf("%s|%s|%s", report, ts, encodedFormat)
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", "", time.Time{}, fmt.Errorf("invalid token signature")
	}
	if time.Now().After(expiresAt) {
		return "", "", time.Time{}, fmt.Errorf("token expired")
	}
	return report, string(rawFormat), expiresAt, nil
}

func parseUnix(raw string) (int64, error) {
	var ts int64
	_, err := fmt.Sscanf(raw, "%d", &ts)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp")
	}
	return ts, nil
}
