package realtime

import "dispatch/internal/core/domain/model/user"

// CanReceive is the single visibility predicate for event fan-out. Every
// delivery decision goes through here so the rules cannot drift between
// event types.
//
// Admins and dispatchers see every event. Drivers see an event only when
// its driver scope matches their own user id; unscoped events are withheld
// from drivers entirely.
func CanReceive(e Event, s *Session) bool {
	if s.Role().CanSeeAllLocations() {
		return true
	}
	if s.Role() != user.RoleDriver {
		return false
	}
	if e.DriverID == nil {
		return false
	}
	return e.DriverID.IsEqual(s.UserID())
}
