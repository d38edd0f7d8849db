package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"connectify/internal/app/db"
)

// newTestStore connects to the database named by TEST_POSTGRES_DSN and applies
// migrations. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping database integration test")
	}

	pool, err := db.NewPool(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	return New(pool)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.test", prefix, time.Now().UnixNano())
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	email := uniqueEmail("alice")
	created, err := s.CreateUser(ctx, email, "Alice Example", "hash-1")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == "" || created.Email != email {
		t.Fatalf("created user = %+v", created)
	}

	if _, err := s.CreateUser(ctx, email, "Alice Again", "hash-2"); !db.IsUniqueViolation(err) {
		t.Fatalf("duplicate signup error = %v, want unique violation", err)
	}

	byEmail, err := s.GetUserByEmail(ctx, email)
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("GetUserByEmail = %+v, %v", byEmail, err)
	}

	byID, err := s.GetUserByID(ctx, created.ID)
	if err != nil || byID.Email != email {
		t.Fatalf("GetUserByID = %+v, %v", byID, err)
	}

	if _, err := s.GetUserByEmail(ctx, uniqueEmail("nobody")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user error = %v, want ErrNotFound", err)
	}

	updated, err := s.UpdateAvatar(ctx, created.ID, created.ID+"/avatar.png")
	if err != nil || updated.AvatarURL != created.ID+"/avatar.png" {
		t.Fatalf("UpdateAvatar = %+v, %v", updated, err)
	}

	if err := s.UpdatePassword(ctx, created.ID, "hash-3"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	refreshed, err := s.GetUserByID(ctx, created.ID)
	if err != nil || refreshed.PasswordHash != "hash-3" {
		t.Fatalf("password hash after update = %+v, %v", refreshed, err)
	}

	if err := s.SetResetNonce(ctx, created.ID, "nonce-1"); err != nil {
		t.Fatalf("SetResetNonce failed: %v", err)
	}
	refreshed, err = s.GetUserByID(ctx, created.ID)
	if err != nil || refreshed.ResetNonce != "nonce-1" {
		t.Fatalf("reset nonce after update = %+v, %v", refreshed, err)
	}
}

func TestMessagePersistenceAndOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, uniqueEmail("alice"), "Alice", "h")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	bob, err := s.CreateUser(ctx, uniqueEmail("bob"), "Bob", "h")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	carol, err := s.CreateUser(ctx, uniqueEmail("carol"), "Carol", "h")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	texts := []struct {
		from, to, text string
	}{
		{alice.ID, bob.ID, "one"},
		{bob.ID, alice.ID, "two"},
		{alice.ID, bob.ID, "three"},
		{alice.ID, carol.ID, "other thread"},
	}
	for _, m := range texts {
		created, err := s.CreateMessage(ctx, CreateMessageParams{
			SenderID:    m.from,
			RecipientID: m.to,
			Text:        m.text,
		})
		if err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
		if created.Seq == 0 || created.CreatedAt.IsZero() {
			t.Fatalf("persisted message missing server-assigned fields: %+v", created)
		}
	}

	msgs, err := s.Conversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("conversation holds %d messages, want 3", len(msgs))
	}

	want := []string{"one", "two", "three"}
	for i, m := range msgs {
		if m.Text != want[i] {
			t.Fatalf("conversation[%d] = %q, want %q", i, m.Text, want[i])
		}
	}

	// Same pair in reversed argument order returns the same thread.
	reversed, err := s.Conversation(ctx, bob.ID, alice.ID)
	if err != nil || len(reversed) != len(msgs) {
		t.Fatalf("reversed Conversation = %d messages, %v", len(reversed), err)
	}

	if !msgs[0].CreatedAt.After(time.Time{}) {
		t.Fatal("message carries a zero creation timestamp")
	}
}

func TestCreateMessageUnknownUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, uniqueEmail("alice"), "Alice", "h")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err = s.CreateMessage(ctx, CreateMessageParams{
		SenderID:    alice.ID,
		RecipientID: "00000000-0000-0000-0000-000000000000",
		Text:        "hello",
	})
	if !db.IsForeignKeyViolation(err) {
		t.Fatalf("message to unknown user error = %v, want foreign key violation", err)
	}
}

func TestListContactsExcludesSelf(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, uniqueEmail("alice"), "Alice", "h")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	contacts, err := s.ListContacts(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	for _, c := range contacts {
		if c.ID == alice.ID {
			t.Fatal("ListContacts returned the caller's own account")
		}
	}
}
