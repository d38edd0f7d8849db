package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"connectify/internal/app/store"
	"connectify/internal/pkg/errs"
)

// stubStore is an in-memory MessageStore for pipeline tests.
type stubStore struct {
	mu       sync.Mutex
	users    map[string]store.User
	messages []store.Message
	seq      int64

	createErr error
	queryErr  error
}

func newStubStore(userIDs ...string) *stubStore {
	s := &stubStore{users: make(map[string]store.User)}
	for _, id := range userIDs {
		s.users[id] = store.User{ID: id}
	}
	return s
}

func (s *stubStore) GetUserByID(_ context.Context, id string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *stubStore) CreateMessage(_ context.Context, params store.CreateMessageParams) (store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return store.Message{}, s.createErr
	}

	s.seq++
	msg := store.Message{
		ID:          params.SenderID + "-" + params.RecipientID,
		Seq:         s.seq,
		SenderID:    params.SenderID,
		RecipientID: params.RecipientID,
		Text:        params.Text,
		ImageURL:    params.ImageURL,
		VideoURL:    params.VideoURL,
		CreatedAt:   time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *stubStore) Conversation(_ context.Context, userA, userB string) ([]store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queryErr != nil {
		return nil, s.queryErr
	}

	out := make([]store.Message, 0)
	for _, m := range s.messages {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubStore) stored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func assertErrCode(t *testing.T, err *errs.CustomError, want int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error code %d, got nil", want)
	}
	if err.Code != want {
		t.Fatalf("error code = %d, want %d", err.Code, want)
	}
}

func TestPipelineRejectsEmptyPayload(t *testing.T) {
	ss := newStubStore("alice", "bob")
	p := NewPipeline(NewHub(), ss)

	_, err := p.Send(context.Background(), "alice", "bob", SendPayload{})
	assertErrCode(t, err, errs.ErrMessageEmpty)

	if ss.stored() != 0 {
		t.Fatal("rejected message was persisted")
	}
}

func TestPipelineRejectsOverlongText(t *testing.T) {
	ss := newStubStore("alice", "bob")
	p := NewPipeline(NewHub(), ss)

	payload := SendPayload{Text: strings.Repeat("a", MaxTextChars+1)}
	_, err := p.Send(context.Background(), "alice", "bob", payload)
	assertErrCode(t, err, errs.ErrMessageContentTooLong)

	if ss.stored() != 0 {
		t.Fatal("rejected message was persisted")
	}
}

func TestPipelineRejectsSelfMessage(t *testing.T) {
	ss := newStubStore("alice")
	p := NewPipeline(NewHub(), ss)

	_, err := p.Send(context.Background(), "alice", "alice", SendPayload{Text: "hi"})
	assertErrCode(t, err, errs.ErrSelfMessage)
}

func TestPipelineRejectsUnknownRecipient(t *testing.T) {
	ss := newStubStore("alice")
	p := NewPipeline(NewHub(), ss)

	_, err := p.Send(context.Background(), "alice", "ghost", SendPayload{Text: "hi"})
	assertErrCode(t, err, errs.ErrRecipientNotFound)
}

func TestPipelinePushesToOnlineRecipient(t *testing.T) {
	ss := newStubStore("alice", "bob")
	hub := NewHub()
	p := NewPipeline(hub, ss)

	bob := newStubPeer("bob")
	hub.Bind(bob)
	before := bob.frameCount()

	msg, err := p.Send(context.Background(), "alice", "bob", SendPayload{Text: "hello"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if msg.Text != "hello" || msg.SenderID != "alice" || msg.RecipientID != "bob" {
		t.Fatalf("persisted message = %+v", msg)
	}

	// Exactly one push, to the recipient only.
	if got := bob.frameCount(); got != before+1 {
		t.Fatalf("recipient received %d pushes, want 1", got-before)
	}
	if ss.stored() != 1 {
		t.Fatalf("stored %d messages, want 1", ss.stored())
	}
}

func TestPipelinePersistsForOfflineRecipient(t *testing.T) {
	ss := newStubStore("alice", "bob")
	p := NewPipeline(NewHub(), ss)

	msg, err := p.Send(context.Background(), "alice", "bob", SendPayload{Text: "hello"})
	if err != nil {
		t.Fatalf("Send failed with offline recipient: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("Send returned an empty message record")
	}
	if ss.stored() != 1 {
		t.Fatal("message for offline recipient was not persisted")
	}
}

func TestPipelineMediaOnlyPayload(t *testing.T) {
	ss := newStubStore("alice", "bob")
	p := NewPipeline(NewHub(), ss)

	msg, err := p.Send(context.Background(), "alice", "bob", SendPayload{ImageURL: "alice/pic.png"})
	if err != nil {
		t.Fatalf("Send failed for media-only payload: %v", err)
	}
	if msg.ImageURL != "alice/pic.png" || msg.Text != "" {
		t.Fatalf("persisted message = %+v", msg)
	}
}

func TestPipelinePersistenceFailureSkipsPush(t *testing.T) {
	ss := newStubStore("alice", "bob")
	ss.createErr = errors.New("connection refused")

	hub := NewHub()
	p := NewPipeline(hub, ss)

	bob := newStubPeer("bob")
	hub.Bind(bob)
	before := bob.frameCount()

	_, err := p.Send(context.Background(), "alice", "bob", SendPayload{Text: "hello"})
	assertErrCode(t, err, errs.ErrPersistenceFailed)

	if bob.frameCount() != before {
		t.Fatal("message was pushed despite failed durable write")
	}
}

func TestPipelineConversation(t *testing.T) {
	ss := newStubStore("alice", "bob", "carol")
	p := NewPipeline(NewHub(), ss)

	ctx := context.Background()
	if _, err := p.Send(ctx, "alice", "bob", SendPayload{Text: "one"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := p.Send(ctx, "bob", "alice", SendPayload{Text: "two"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := p.Send(ctx, "alice", "carol", SendPayload{Text: "other thread"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	msgs, cerr := p.Conversation(ctx, "alice", "bob")
	if cerr != nil {
		t.Fatalf("Conversation failed: %v", cerr)
	}
	if len(msgs) != 2 {
		t.Fatalf("conversation holds %d messages, want 2", len(msgs))
	}
	if msgs[0].Text != "one" || msgs[1].Text != "two" {
		t.Fatalf("conversation order = [%s, %s], want ascending by send time", msgs[0].Text, msgs[1].Text)
	}
}

func TestPipelineConversationQueryError(t *testing.T) {
	ss := newStubStore("alice", "bob")
	ss.queryErr = errors.New("connection refused")
	p := NewPipeline(NewHub(), ss)

	_, err := p.Conversation(context.Background(), "alice", "bob")
	assertErrCode(t, err, errs.ErrUnknown)
}
