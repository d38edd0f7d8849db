package randx

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestMessageIDIsValidUUID(t *testing.T) {
	id := MessageID()

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("MessageID produced %q, not a valid UUID: %v", id, err)
	}

	if id == MessageID() {
		t.Fatal("two MessageID calls produced the same identifier")
	}
}

func TestResetNonce(t *testing.T) {
	nonce, err := ResetNonce()
	if err != nil {
		t.Fatalf("ResetNonce failed: %v", err)
	}

	if len(nonce) != ResetNonceLength {
		t.Fatalf("nonce length = %d, want %d", len(nonce), ResetNonceLength)
	}

	for _, c := range nonce {
		if !strings.ContainsRune(Base62Chars, c) {
			t.Fatalf("nonce %q contains character %q outside the Base62 set", nonce, c)
		}
	}

	other, err := ResetNonce()
	if err != nil {
		t.Fatalf("ResetNonce failed: %v", err)
	}
	if nonce == other {
		t.Fatal("two ResetNonce calls produced the same nonce")
	}
}
