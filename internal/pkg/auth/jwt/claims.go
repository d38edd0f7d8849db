package jwt

import "github.com/golang-jwt/jwt"

// Token purposes. A token minted for one purpose is never accepted for another,
// so a short-lived reset token cannot be used to authenticate API calls.
const (
	// PurposeIdentity marks a long-lived token that authenticates API requests
	// and WebSocket connection attempts.
	PurposeIdentity = "identity"

	// PurposeReset marks a short-lived token embedded in password reset links.
	PurposeReset = "password_reset"
)

// Payload defines the structure of the JSON Web Token (JWT) claims for Connectify.
// It includes standard claims required by the JWT specification and custom claims
// necessary for identifying users within the messaging system.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the unique identifier of the user the token was issued to.
	ID string `json:"id"`

	// Purpose distinguishes identity tokens from password reset tokens.
	Purpose string `json:"purpose"`

	// Nonce carries the single-use reset nonce for PurposeReset tokens; empty otherwise.
	Nonce string `json:"nonce,omitempty"`
}
