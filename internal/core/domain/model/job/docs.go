// Package job contains the Job aggregate, its Status state machine, and the
// append-only Note entity.
//
// The Job aggregate is the authority on which status transitions are legal:
// pending → assigned → in_progress → completed, with cancelled reachable
// from any non-terminal status and assigned → assigned allowed for
// reassignment. Only those five status values exist anywhere in the system;
// nothing else is ever persisted or broadcast.
//
// Role-based rules about who may perform which mutation live in the
// application layer; the aggregate enforces structural invariants (required
// fields, legal transitions) regardless of caller.
package job
