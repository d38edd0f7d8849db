/*
Package randx provides functions for generating cryptographically secure random identifiers.

It generates UUID message identifiers and Base62 nonces used to make password
reset tokens single-use.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// ResetNonceLength is the fixed length of the password reset nonce.
	ResetNonceLength = 12
)

// MessageID generates a standard UUID v4 string to serve as a unique identifier for a message.
func MessageID() string {
	return uuid.New().String()
}

// ResetNonce generates a Base62 nonce using crypto/rand. The nonce is stored on
// the user row and embedded in the reset token, so a token can be invalidated
// by rotating the stored nonce after a successful reset.
func ResetNonce() (string, error) {
	result := make([]byte, ResetNonceLength)

	for i := range ResetNonceLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for reset nonce: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}
