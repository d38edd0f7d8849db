package jwt

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{ID: "user-123", Purpose: PurposeIdentity}

	tokenString, err := GenerateToken(payload, testSecret, UserIdentityExpiration)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	parsed, err := ParseToken(tokenString, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if parsed.ID != "user-123" {
		t.Fatalf("parsed ID = %q, want %q", parsed.ID, "user-123")
	}
	if parsed.Purpose != PurposeIdentity {
		t.Fatalf("parsed Purpose = %q, want %q", parsed.Purpose, PurposeIdentity)
	}
	if parsed.Issuer != TokenIssuer {
		t.Fatalf("parsed Issuer = %q, want %q", parsed.Issuer, TokenIssuer)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	payload := &Payload{ID: "user-123", Purpose: PurposeIdentity}

	tokenString, err := GenerateToken(payload, testSecret, UserIdentityExpiration)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString, "another-secret"); err == nil {
		t.Fatal("ParseToken accepted a token signed with a different secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	payload := &Payload{ID: "user-123", Purpose: PurposeIdentity}

	tokenString, err := GenerateToken(payload, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString, testSecret); err == nil {
		t.Fatal("ParseToken accepted an expired token")
	}
}

func TestParseIdentityTokenRejectsResetPurpose(t *testing.T) {
	payload := &Payload{ID: "user-123", Purpose: PurposeReset, Nonce: "abc123DEF456"}

	tokenString, err := GenerateToken(payload, testSecret, PasswordResetExpiration)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseIdentityToken(tokenString, testSecret); err == nil {
		t.Fatal("ParseIdentityToken accepted a password reset token")
	}

	// The same token still parses fine through the purpose-agnostic path.
	parsed, err := ParseToken(tokenString, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed.Nonce != "abc123DEF456" {
		t.Fatalf("parsed Nonce = %q, want the embedded nonce", parsed.Nonce)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", testSecret); err == nil {
		t.Fatal("ParseToken accepted a malformed token")
	}
}
