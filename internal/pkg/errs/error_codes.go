/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Messaging Business Logic Errors
const (
	// ErrMessageEmpty indicates a send attempt with none of text, image, or video populated.
	ErrMessageEmpty = 2101

	// ErrMessageContentTooLong indicates that the message text exceeded the maximum length limit.
	ErrMessageContentTooLong = 2102

	// ErrSelfMessage indicates an attempt to send a message to oneself.
	ErrSelfMessage = 2103

	// ErrRecipientNotFound indicates that the message recipient does not exist.
	ErrRecipientNotFound = 2104

	// ErrFileSizeTooLarge indicates that an uploaded file exceeded the size limit.
	ErrFileSizeTooLarge = 2201

	// ErrFileTypeInvalid indicates an upload with a disallowed file type or mismatched extension.
	ErrFileTypeInvalid = 2202
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates a request without a valid authenticated identity.
	ErrUnauthorized = 3001

	// ErrAlreadyLoggedIn indicates an authenticated user attempting signup or login again.
	ErrAlreadyLoggedIn = 3002

	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = 3101

	// ErrInvalidPassword indicates a password failing the length policy.
	ErrInvalidPassword = 3102

	// ErrInvalidFullName indicates a missing or malformed display name.
	ErrInvalidFullName = 3103

	// ErrUserAlreadyExists indicates that the signup email is already registered.
	ErrUserAlreadyExists = 3104

	// ErrInvalidCredentials indicates a failed email/password check during login.
	ErrInvalidCredentials = 3105

	// ErrUserNotFound indicates that the requested account does not exist.
	ErrUserNotFound = 3106

	// ErrOldPasswordInvalid indicates a failed current-password check during password change.
	ErrOldPasswordInvalid = 3107

	// ErrResetTokenInvalid indicates an invalid, expired, or already-used password reset token.
	ErrResetTokenInvalid = 3108

	// ErrSessionKicked indicates that the current live connection was replaced by a newer one.
	ErrSessionKicked = 3201
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrPersistenceFailed indicates that the durable message write failed; the send may be retried.
	ErrPersistenceFailed = 5001

	// ErrFileStorageFailed indicates a failure talking to the S3 storage backend.
	ErrFileStorageFailed = 5002

	// ErrMailerUnavailable indicates that the password reset mailer is not configured or failed.
	ErrMailerUnavailable = 5003

	// ErrAssistantUnavailable indicates that the AI assistant is not configured or failed.
	ErrAssistantUnavailable = 5004
)
