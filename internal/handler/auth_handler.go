/*
Package handler provides HTTP handler functions for user authentication and account recovery.
*/
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"connectify/internal/app/db"
	"connectify/internal/app/store"
	"connectify/internal/pkg/auth/jwt"
	"connectify/internal/pkg/errs"
	"connectify/internal/pkg/logx"
	"connectify/internal/pkg/randx"
	"connectify/internal/pkg/req"
	"connectify/internal/pkg/resp"
)

const (
	// MinPasswordChars and MaxPasswordChars bound the accepted password length.
	// The upper bound stays below bcrypt's 72-byte input limit.
	MinPasswordChars = 8
	MaxPasswordChars = 64

	// MaxFullNameChars bounds the accepted display name length.
	MaxFullNameChars = 100
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validatePassword(password string) *errs.CustomError {
	length := utf8.RuneCountInString(password)
	if length < MinPasswordChars || length > MaxPasswordChars {
		return errs.NewError(errs.ErrInvalidPassword, MinPasswordChars, MaxPasswordChars)
	}
	return nil
}

// issueIdentityToken mints a long-lived identity token for the given user ID.
func issueIdentityToken(userID string, secret string) (string, error) {
	payload := &jwt.Payload{
		ID:      userID,
		Purpose: jwt.PurposeIdentity,
	}
	return jwt.GenerateToken(payload, secret, jwt.UserIdentityExpiration)
}

type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup processes the request to create a new account.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input SignupInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.FullName == "" || utf8.RuneCountInString(input.FullName) > MaxFullNameChars {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidFullName))
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		if customErr := validatePassword(input.Password); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		user, err := deps.Store.CreateUser(r.Context(), input.Email, input.FullName, string(hashedPassword))
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("signup conflict: email already registered", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		tokenString, err := issueIdentityToken(user.ID, deps.Config.JWTSecret)
		if err != nil {
			logx.Error(err, "failed to generate token after signup")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  user,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies the email/password pair and issues an identity token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		user, err := deps.Store.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
				return
			}

			logx.Error(err, "login: user lookup failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		tokenString, err := issueIdentityToken(user.ID, deps.Config.JWTSecret)
		if err != nil {
			logx.Error(err, "failed to generate token after login")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  user,
		})
	}
}

// HandleLogout exists for client parity. Identity tokens are stateless, so there
// is no server-side session to destroy; the client discards its token.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, nil)
	}
}

// HandleCheckAuth returns the authenticated user's current account record.
func HandleCheckAuth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		user, err := deps.Store.GetUserByID(r.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "check auth: user lookup failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": user})
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// HandleForgotPassword emails a short-lived reset link to the given address.
// The reset token embeds a single-use nonce stored on the user row, so issuing
// a new link invalidates any previous one.
func HandleForgotPassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Mailer == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrMailerUnavailable))
			return
		}

		var input ForgotPasswordInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		user, err := deps.Store.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "forgot password: user lookup failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		nonce, err := randx.ResetNonce()
		if err != nil {
			logx.Error(err, "forgot password: nonce generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Store.SetResetNonce(r.Context(), user.ID, nonce); err != nil {
			logx.Error(err, "forgot password: failed to store reset nonce", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		payload := &jwt.Payload{
			ID:      user.ID,
			Purpose: jwt.PurposeReset,
			Nonce:   nonce,
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.PasswordResetExpiration)
		if err != nil {
			logx.Error(err, "forgot password: token generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resetLink := fmt.Sprintf("%s/reset-password/%s", deps.Config.FrontendURL, tokenString)

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		if err := deps.Mailer.SendPasswordReset(ctx, user.Email, resetLink); err != nil {
			logx.Error(err, "forgot password: failed to send reset email", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrMailerUnavailable))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

type ResetPasswordInput struct {
	Password string `json:"password"`
}

// HandleResetPassword validates the reset token from the URL and replaces the
// stored credential hash. The stored nonce is rotated afterwards so the link
// cannot be replayed.
func HandleResetPassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := chi.URLParam(r, "token")
		if tokenString == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input ResetPasswordInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := validatePassword(input.Password); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		payload, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil || payload.Purpose != jwt.PurposeReset {
			resp.RespondError(w, r, errs.NewError(errs.ErrResetTokenInvalid))
			return
		}

		user, err := deps.Store.GetUserByID(r.Context(), payload.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrResetTokenInvalid))
			return
		}

		if user.ResetNonce == "" || user.ResetNonce != payload.Nonce {
			resp.RespondError(w, r, errs.NewError(errs.ErrResetTokenInvalid))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Store.UpdatePassword(r.Context(), user.ID, string(hashedPassword)); err != nil {
			logx.Error(err, "reset password: failed to update credential", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Store.SetResetNonce(r.Context(), user.ID, ""); err != nil {
			logx.Error(err, "reset password: failed to rotate nonce", "user_id", user.ID)
		}

		resp.RespondSuccess(w, r, nil)
	}
}
