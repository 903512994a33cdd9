// Package realtime implements the synchronization core that keeps every
// connected client's view of job state and driver location consistent:
// the Event Bus, the Session Registry, and the role-based visibility policy.
//
// The design separates three concerns:
//
//   - Registry: tracks live, authenticated sessions and their room
//     memberships. Sessions are created on connect (after the external
//     Authenticator validates the credential) and discarded on disconnect.
//
//   - Bus: fans published events out to the point-in-time snapshot of
//     registered sessions, after evaluating the central CanReceive
//     predicate per recipient. Delivery is fire-and-forget: a session
//     whose outbound buffer is full or already closed is skipped silently
//     and the publisher never learns about it.
//
//   - Policy: every visibility rule lives in CanReceive, so filtering is
//     defined in one place and independently testable, instead of being
//     scattered through handler closures.
//
// Ordering: each session has a single FIFO outbound channel with one
// writer goroutine (owned by the transport), so events reach a given
// session in publish order. No ordering is guaranteed across sessions.
package realtime
