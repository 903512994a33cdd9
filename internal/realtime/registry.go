package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const defaultSessionBuffer = 64

// PresenceRecorder observes the registry's session lifecycle, typically to
// keep a gauge of connected sessions.
type PresenceRecorder interface {
	SessionOpened()
	SessionClosed()
}

// Registry tracks live sessions and owns their lifecycle. Connect
// authenticates the opaque credential through the Authenticator port, so a
// bad token never produces a session. All mutation happens under the
// registry lock; broadcasts work off point-in-time snapshots so a slow
// transport never stalls the publisher.
type Registry struct {
	authenticator ports.Authenticator
	bufferSize    int
	logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[kernel.UUID]*Session
	recorder PresenceRecorder
}

func NewRegistry(authenticator ports.Authenticator, bufferSize int, logger *slog.Logger) (*Registry, error) {
	if authenticator == nil {
		return nil, errs.NewValueIsRequiredError("authenticator")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if bufferSize <= 0 {
		bufferSize = defaultSessionBuffer
	}

	return &Registry{
		authenticator: authenticator,
		bufferSize:    bufferSize,
		logger:        logger.With("component", "realtime.Registry"),
		sessions:      make(map[kernel.UUID]*Session),
	}, nil
}

// SetRecorder attaches a presence recorder. Must be called before the first
// Connect; a nil recorder keeps the registry silent.
func (r *Registry) SetRecorder(recorder PresenceRecorder) {
	r.recorder = recorder
}

// Connect validates the credential and, on success, registers a new session
// already joined to the global room. The caller drains Session.Events().
func (r *Registry) Connect(ctx context.Context, token string) (*Session, error) {
	claims, err := r.authenticator.ValidateCredential(ctx, token)
	if err != nil {
		return nil, err
	}

	session := newSession(claims.UserID, claims.Role, r.bufferSize)

	r.mu.Lock()
	r.sessions[session.ID()] = session
	total := len(r.sessions)
	r.mu.Unlock()

	if r.recorder != nil {
		r.recorder.SessionOpened()
	}
	r.logger.Info("session connected",
		"session_id", session.ID().String(),
		"user_id", session.UserID().String(),
		"role", session.Role().String(),
		"sessions", total)
	return session, nil
}

// Disconnect removes the session and closes its event stream. Disconnecting
// an unknown or already-removed session is a no-op.
func (r *Registry) Disconnect(sessionID kernel.UUID) {
	r.mu.Lock()
	session, ok := r.sessions[sessionID]
	if ok {
		delete(r.sessions, sessionID)
	}
	total := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}
	session.close()

	if r.recorder != nil {
		r.recorder.SessionClosed()
	}
	r.logger.Info("session disconnected",
		"session_id", sessionID.String(),
		"sessions", total)
}

// JoinRoom adds the session to a named room. Unknown sessions are ignored.
func (r *Registry) JoinRoom(sessionID kernel.UUID, room string) {
	if room == "" {
		return
	}

	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return
	}
	session.joinRoom(room)
}

// Snapshot returns the sessions that are members of the room at call time.
// The returned slice is the caller's to keep; sessions that disconnect
// afterwards simply drop the events sent to them.
func (r *Registry) Snapshot(room string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		if session.InRoom(room) {
			snapshot = append(snapshot, session)
		}
	}
	return snapshot
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SweepStale disconnects every session whose last liveness signal is older
// than maxIdle and returns how many were removed. The presence job runs this
// on a schedule.
func (r *Registry) SweepStale(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	r.mu.RLock()
	stale := make([]kernel.UUID, 0)
	for id, session := range r.sessions {
		if session.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range stale {
		r.Disconnect(id)
	}

	if len(stale) > 0 {
		r.logger.Info("swept stale sessions", "count", len(stale))
	}
	return len(stale)
}
