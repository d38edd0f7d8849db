/*
Package store implements durable persistence for users and messages on PostgreSQL.

Messages are append-only: the store assigns the server-side creation timestamp and
an insertion sequence number, and conversation reads return both orderings of a
user pair sorted ascending by (created_at, seq). The sequence number breaks ties
between messages persisted within the same timestamp tick.
*/
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectify/internal/pkg/randx"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// User represents a registered account. The password hash and reset nonce are
// never serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	AvatarURL    string    `json:"avatarUrl"`
	PasswordHash string    `json:"-"`
	ResetNonce   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Message represents one persisted direct message. JSON field names match the
// wire format consumed by the web client.
type Message struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"-"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"receiverId"`
	Text        string    `json:"text,omitempty"`
	ImageURL    string    `json:"image,omitempty"`
	VideoURL    string    `json:"video,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store executes all database queries over a shared pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store backed by the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id::text, email, full_name, avatar_url, password_hash, reset_nonce, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.PasswordHash, &u.ResetNonce, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// CreateUser inserts a new account and returns the stored row.
// A unique violation on the email column surfaces unchanged so callers can map
// it to a duplicate-account error.
func (s *Store) CreateUser(ctx context.Context, email, fullName, passwordHash string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, fullName, passwordHash,
	)
	return scanUser(row)
}

// GetUserByEmail fetches an account by its unique email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetUserByID fetches an account by its ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1::uuid`, id)
	return scanUser(row)
}

// ListContacts returns every account except the caller's own, for the sidebar.
func (s *Store) ListContacts(ctx context.Context, exceptID string) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id <> $1::uuid
		ORDER BY full_name, email`,
		exceptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateAvatar replaces the user's avatar reference and returns the updated row.
func (s *Store) UpdateAvatar(ctx context.Context, id, avatarURL string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET avatar_url = $2, updated_at = now()
		WHERE id = $1::uuid
		RETURNING `+userColumns,
		id, avatarURL,
	)
	return scanUser(row)
}

// UpdatePassword replaces the stored credential hash.
func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1::uuid`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetNonce stores the nonce embedded in the most recent password reset token.
// Rotating the nonce invalidates any previously issued reset link.
func (s *Store) SetResetNonce(ctx context.Context, id, nonce string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET reset_nonce = $2, updated_at = now()
		WHERE id = $1::uuid`,
		id, nonce,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateMessageParams carries the validated payload of an outgoing message.
type CreateMessageParams struct {
	SenderID    string
	RecipientID string
	Text        string
	ImageURL    string
	VideoURL    string
}

// CreateMessage appends a message with a server-assigned creation timestamp and
// insertion sequence, returning the persisted record. The returned row is the
// authority for "message sent".
func (s *Store) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	msg := Message{
		ID:          randx.MessageID(),
		SenderID:    params.SenderID,
		RecipientID: params.RecipientID,
		Text:        params.Text,
		ImageURL:    params.ImageURL,
		VideoURL:    params.VideoURL,
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, recipient_id, text, image_url, video_url)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6)
		RETURNING seq, created_at`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.Text, msg.ImageURL, msg.VideoURL,
	)

	if err := row.Scan(&msg.Seq, &msg.CreatedAt); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Conversation returns every message exchanged between the two users, in either
// direction, sorted ascending by creation time with insertion order as tiebreak.
func (s *Store) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, seq, sender_id::text, recipient_id::text, text, image_url, video_url, created_at
		FROM messages
		WHERE (sender_id = $1::uuid AND recipient_id = $2::uuid)
		   OR (sender_id = $2::uuid AND recipient_id = $1::uuid)
		ORDER BY created_at, seq`,
		userA, userB,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Seq, &m.SenderID, &m.RecipientID, &m.Text, &m.ImageURL, &m.VideoURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
