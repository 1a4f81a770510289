package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndVerify(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)

	userID := uuid.NewString()
	token, err := mgr.Generate(userID, "alice@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != userID {
		t.Errorf("subject = %s, want %s", claims.Subject, userID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %s, want alice@example.com", claims.Email)
	}

	exp, err := mgr.Expiry(token)
	if err != nil {
		t.Fatalf("Expiry: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("expiry must be in the future")
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := mgr.Generate(uuid.NewString(), "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
	if _, err := mgr.Verify("garbage"); err == nil {
		t.Error("malformed token must be rejected")
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	tok, err := expired.Generate(uuid.NewString(), "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := mgr.Verify(tok); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, err := ExtractTokenFromHeader(req)
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("got (%q, %v), want (abc.def.ghi, nil)", token, err)
	}

	req.Header.Set("Authorization", "Basic abc")
	if _, err := ExtractTokenFromHeader(req); err == nil {
		t.Error("non-bearer header must be rejected")
	}

	req.Header.Del("Authorization")
	if _, err := ExtractTokenFromHeader(req); err == nil {
		t.Error("missing header must be rejected")
	}
}
