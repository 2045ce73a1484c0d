package storage

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/inkvoice/inkvoice/internal/apperr"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("secret", 0)

	signed, err := signer.Sign("http://localhost:8080/static/audio/a.mp3", 60)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("signed url does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("exp") == "" || q.Get("sig") == "" {
		t.Fatalf("signed url missing exp/sig: %s", signed)
	}

	if err := signer.Verify(u.Path, q.Get("exp"), q.Get("sig")); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestSignerDefaultTTL(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	signer := NewSigner("secret", 0)
	signer.now = func() time.Time { return now }

	signed, err := signer.Sign("http://localhost/static/audio/a.mp3", 0)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	u, _ := url.Parse(signed)
	wantExp := now.Add(DefaultSignedURLTTL).Unix()
	if got := u.Query().Get("exp"); got != "1001800" {
		t.Errorf("exp = %s, want %d", got, wantExp)
	}
}

func TestSignerRejectsExpired(t *testing.T) {
	signer := NewSigner("secret", 0)
	signer.now = func() time.Time { return time.Unix(1000, 0) }

	signed, _ := signer.Sign("http://localhost/static/audio/a.mp3", 60)
	u, _ := url.Parse(signed)

	signer.now = func() time.Time { return time.Unix(2000, 0) }
	err := signer.Verify(u.Path, u.Query().Get("exp"), u.Query().Get("sig"))
	if !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("Verify() after expiry = %v, want auth kind", err)
	}
}

func TestSignerRejectsTamperedSignature(t *testing.T) {
	signer := NewSigner("secret", 0)
	signed, _ := signer.Sign("http://localhost/static/audio/a.mp3", 60)
	u, _ := url.Parse(signed)

	sig := u.Query().Get("sig")
	flipped := "0"
	if strings.HasPrefix(sig, "0") {
		flipped = "1"
	}
	tampered := flipped + sig[1:]
	if err := signer.Verify(u.Path, u.Query().Get("exp"), tampered); err == nil {
		t.Error("Verify() accepted a tampered signature")
	}
}
