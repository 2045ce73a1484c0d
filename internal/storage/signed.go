package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/inkvoice/inkvoice/internal/apperr"
)

// DefaultSignedURLTTL is used when the caller does not ask for a TTL.
const DefaultSignedURLTTL = 1800 * time.Second

// Signer issues and verifies HMAC-signed, expiring URLs. There is no
// renewal protocol: expired URLs are simply re-requested.
type Signer struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewSigner(secret string, defaultTTL time.Duration) *Signer {
	if defaultTTL <= 0 {
		defaultTTL = DefaultSignedURLTTL
	}
	return &Signer{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Sign appends an expiry and signature to fileURI. ttlSeconds of zero or
// less uses the default TTL.
func (s *Signer) Sign(fileURI string, ttlSeconds int) (string, error) {
	u, err := url.Parse(fileURI)
	if err != nil {
		return "", apperr.Validation("file_uri is not a valid URL")
	}

	ttl := s.defaultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	expires := s.now().Add(ttl).Unix()

	q := u.Query()
	q.Set("exp", strconv.FormatInt(expires, 10))
	q.Set("sig", s.signature(u.Path, expires))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Verify checks the signature and expiry of a signed URL path.
func (s *Signer) Verify(path, exp, sig string) error {
	expires, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return apperr.Validation("malformed expiry")
	}
	if s.now().Unix() > expires {
		return apperr.Auth("signed url expired")
	}
	expected := s.signature(path, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return apperr.Auth("signature mismatch")
	}
	return nil
}

func (s *Signer) signature(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
