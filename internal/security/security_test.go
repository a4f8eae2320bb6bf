package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, expiresAt, err := provider.Generate("user-1", "recruiter", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}
	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "recruiter" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTRejectsTampering(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate("user-1", "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTProvider("other").Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for wrong secret, got %v", err)
	}
	parts := strings.Split(token, ".")
	forged := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := provider.Parse(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for modified payload, got %v", err)
	}
	if _, err := provider.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}
}

func TestJWTExpired(t *testing.T) {
	provider := NewJWTProvider("secret")
	provider.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := provider.Generate("user-1", "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	provider.now = time.Now
	if _, err := provider.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("password stored in clear")
	}
	ok, err := hasher.Compare(hash, "hunter22")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = hasher.Compare(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got ok=%v err=%v", ok, err)
	}
	if _, err := hasher.Compare("not-a-hash", "x"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
