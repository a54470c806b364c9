package gate

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerifyToken(t *testing.T) {
	svc := New(testSecret, "", time.Hour)

	token, err := svc.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if err := svc.VerifyToken(token); err != nil {
		t.Errorf("VerifyToken rejected a fresh token: %v", err)
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	svc := New(testSecret, "", time.Hour)
	other := New("ffffffffffffffffffffffffffffffff", "", time.Hour)

	token, err := other.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if err := svc.VerifyToken(token); err == nil {
		t.Error("Expected rejection of a token signed with a different key")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := New(testSecret, "", time.Hour)

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if err := svc.VerifyToken(expired); err == nil {
		t.Error("Expected rejection of an expired token")
	}
}

func TestVerifyTokenRejectsUnsignedAlg(t *testing.T) {
	svc := New(testSecret, "", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if err := svc.VerifyToken(unsigned); err == nil {
		t.Error("Expected rejection of an alg=none token")
	}
}

func TestCheckSecret(t *testing.T) {
	open := New(testSecret, "", time.Hour)
	if !open.CheckSecret("") || !open.CheckSecret("anything") {
		t.Error("An unconfigured wall should accept any secret")
	}

	walled := New(testSecret, "hunter2", time.Hour)
	if !walled.CheckSecret("hunter2") {
		t.Error("Expected the correct secret to pass")
	}
	if walled.CheckSecret("wrong") || walled.CheckSecret("") {
		t.Error("Expected wrong secrets to fail")
	}
}
