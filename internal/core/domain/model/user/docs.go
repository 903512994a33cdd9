// Package user contains the User aggregate and the Role value object.
//
// Role is the sole authorization axis in the system: every visibility and
// mutation rule is decided by the caller's role (admin, dispatcher, driver)
// plus, for drivers, ownership of the targeted job or location row.
package user
