package chat

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// stubPeer is a test double for a live connection. It records enqueued frames
// and kick reasons, and can be configured to fail Enqueue.
type stubPeer struct {
	id string

	mu         sync.Mutex
	frames     [][]byte
	kicked     bool
	kickMsg    string
	enqueueErr error
}

func newStubPeer(id string) *stubPeer {
	return &stubPeer{id: id}
}

func (p *stubPeer) UserID() string { return p.id }

func (p *stubPeer) Enqueue(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enqueueErr != nil {
		return p.enqueueErr
	}
	p.frames = append(p.frames, data)
	return nil
}

func (p *stubPeer) Kick(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.kicked = true
	p.kickMsg = reason
}

func (p *stubPeer) failEnqueue() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enqueueErr = errors.New("send queue full")
}

func (p *stubPeer) frameCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func (p *stubPeer) lastFrame() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return nil
	}
	return p.frames[len(p.frames)-1]
}

func (p *stubPeer) wasKicked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kicked
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	alice := newStubPeer("alice")
	if superseded := r.Register(alice); superseded != nil {
		t.Fatalf("expected no superseded peer on first register, got %v", superseded)
	}

	if got := r.Lookup("alice"); got != Peer(alice) {
		t.Fatalf("Lookup returned %v, want the registered peer", got)
	}

	if got := r.Lookup("bob"); got != nil {
		t.Fatalf("Lookup for offline user returned %v, want nil", got)
	}
}

func TestRegistrySupersession(t *testing.T) {
	r := NewRegistry()

	first := newStubPeer("alice")
	second := newStubPeer("alice")

	r.Register(first)
	superseded := r.Register(second)

	if superseded != Peer(first) {
		t.Fatalf("Register returned %v as superseded, want the first connection", superseded)
	}

	if got := r.Lookup("alice"); got != Peer(second) {
		t.Fatalf("Lookup returned %v, want the newest connection", got)
	}

	if ids := r.OnlineIDs(); len(ids) != 1 {
		t.Fatalf("OnlineIDs = %v, want exactly one entry after replacement", ids)
	}
}

func TestRegistryReregisterSamePeer(t *testing.T) {
	r := NewRegistry()

	alice := newStubPeer("alice")
	r.Register(alice)

	if superseded := r.Register(alice); superseded != nil {
		t.Fatalf("re-registering the same connection returned %v, want nil", superseded)
	}

	if got := r.Lookup("alice"); got != Peer(alice) {
		t.Fatalf("Lookup returned %v after re-register, want the same peer", got)
	}
}

func TestRegistryUnregisterIdentityMatch(t *testing.T) {
	r := NewRegistry()

	first := newStubPeer("alice")
	second := newStubPeer("alice")

	r.Register(first)
	r.Register(second)

	// The superseded connection's late disconnect must not evict the newer one.
	if removed := r.Unregister(first); removed {
		t.Fatal("Unregister of a superseded connection reported removal")
	}

	if got := r.Lookup("alice"); got != Peer(second) {
		t.Fatalf("Lookup returned %v after stale unregister, want the newest connection", got)
	}

	if removed := r.Unregister(second); !removed {
		t.Fatal("Unregister of the current connection reported no removal")
	}

	if got := r.Lookup("alice"); got != nil {
		t.Fatalf("Lookup returned %v after unregister, want nil", got)
	}
}

func TestRegistryUnregisterUnknownPeer(t *testing.T) {
	r := NewRegistry()

	if removed := r.Unregister(newStubPeer("ghost")); removed {
		t.Fatal("Unregister of a never-registered connection reported removal")
	}
}

func TestRegistryOnlineIDsSorted(t *testing.T) {
	r := NewRegistry()

	for _, id := range []string{"carol", "alice", "bob"} {
		r.Register(newStubPeer(id))
	}

	ids := r.OnlineIDs()
	want := []string{"alice", "bob", "carol"}
	if len(ids) != len(want) {
		t.Fatalf("OnlineIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("OnlineIDs = %v, want %v", ids, want)
		}
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			p := newStubPeer(fmt.Sprintf("user-%d", n%10))
			r.Register(p)
			r.OnlineIDs()
			r.Snapshot()
			r.Unregister(p)
		}(i)
	}
	wg.Wait()

	// No assertion beyond absence of data races; the final state depends on
	// interleaving, but every remaining entry must be a registered peer.
	for _, id := range r.OnlineIDs() {
		if r.Lookup(id) == nil {
			t.Fatalf("OnlineIDs lists %q but Lookup finds no connection", id)
		}
	}
}
