/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large."},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging Business Logic Errors
	ErrMessageEmpty:          {Code: ErrMessageEmpty, Message: "Message must contain text, an image, or a video."},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long."},
	ErrSelfMessage:           {Code: ErrSelfMessage, Message: "You cannot send a message to yourself."},
	ErrRecipientNotFound:     {Code: ErrRecipientNotFound, Message: "Recipient not found."},
	ErrFileSizeTooLarge:      {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:       {Code: ErrFileTypeInvalid, Message: "Unsupported file type."},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Password must be between %d and %d characters."},
	ErrInvalidFullName:    {Code: ErrInvalidFullName, Message: "Invalid display name."},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Email is already registered."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found."},
	ErrOldPasswordInvalid: {Code: ErrOldPasswordInvalid, Message: "Current password is incorrect."},
	ErrResetTokenInvalid:  {Code: ErrResetTokenInvalid, Message: "Reset link is invalid or has expired.", Status: http.StatusUnauthorized},
	ErrSessionKicked:      {Code: ErrSessionKicked, Message: "You were signed in on another device."},

	// 5xxx: Internal System Errors
	ErrUnknown:              {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrPersistenceFailed:    {Code: ErrPersistenceFailed, Message: "Message could not be saved. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed:    {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again."},
	ErrMailerUnavailable:    {Code: ErrMailerUnavailable, Message: "Email service is unavailable. Please try again later.", Status: http.StatusServiceUnavailable},
	ErrAssistantUnavailable: {Code: ErrAssistantUnavailable, Message: "Assistant is unavailable. Please try again later.", Status: http.StatusServiceUnavailable},
}
