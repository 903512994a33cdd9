package realtime

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// GlobalRoom is the broadcast scope every session joins on connect. Rooms
// narrow delivery; they never widen it past the visibility policy.
const GlobalRoom = "global"

// Session is one live, authenticated realtime connection: the user's
// identity and role, the rooms it has joined, and its outbound event
// buffer. Sessions are ephemeral — created on connect, destroyed on
// disconnect, never persisted.
//
// The outbound channel has a single producer discipline on the consuming
// side: the transport owns the only goroutine draining Events(), which is
// what preserves per-session delivery order.
type Session struct {
	id     kernel.UUID
	userID kernel.UUID
	role   user.Role

	mu       sync.Mutex
	rooms    map[string]struct{}
	out      chan Event
	closed   bool
	lastSeen time.Time
}

func newSession(userID kernel.UUID, role user.Role, bufferSize int) *Session {
	return &Session{
		id:       kernel.NewUUID(),
		userID:   userID,
		role:     role,
		rooms:    map[string]struct{}{GlobalRoom: {}},
		out:      make(chan Event, bufferSize),
		lastSeen: time.Now().UTC(),
	}
}

// ID returns the session's own identifier (distinct from the user's).
func (s *Session) ID() kernel.UUID {
	return s.id
}

// UserID returns the authenticated user's identifier.
func (s *Session) UserID() kernel.UUID {
	return s.userID
}

// Role returns the authenticated user's role.
func (s *Session) Role() user.Role {
	return s.role
}

// Events returns the outbound event stream for the transport to drain.
// The channel is closed when the session is destroyed.
func (s *Session) Events() <-chan Event {
	return s.out
}

// InRoom reports whether the session has joined the named room.
func (s *Session) InRoom(room string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[room]
	return ok
}

// Touch records liveness. The transport calls it on every inbound frame and
// pong so the presence sweep can spot abandoned connections.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now().UTC()
}

// LastSeen returns the time of the most recent liveness signal.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// joinRoom adds room membership. Called by the registry only.
func (s *Session) joinRoom(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rooms[room] = struct{}{}
}

// send enqueues an event without blocking. Returns false when the event was
// dropped: either the session is already closed or its buffer is full. The
// caller treats both the same way — fire-and-forget.
func (s *Session) send(e Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	select {
	case s.out <- e:
		return true
	default:
		return false
	}
}

// close shuts the outbound channel exactly once. Called by the registry on
// disconnect; safe against concurrent send.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.out)
}
