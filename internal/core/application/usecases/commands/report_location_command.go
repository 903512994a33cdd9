package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents a driver reporting its current position.
// Both coordinates are required and range-checked; an invalid sample is
// rejected whole, never partially applied.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	actor    ports.Claims
	position geo.Coordinates

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to record the acting driver's
// position. The reported driver is always the actor; a driver cannot report
// for anyone else.
func NewReportLocationCommand(actor ports.Claims, latitude, longitude float64) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return ReportLocationCommand{}, err
	}
	cmd.actor = actor

	position, err := geo.NewCoordinates(latitude, longitude)
	if err != nil {
		return ReportLocationCommand{}, err
	}
	cmd.position = position

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// Actor returns the identity claims of the reporting user.
func (c ReportLocationCommand) Actor() ports.Claims {
	return c.actor
}

// Position returns the validated coordinates.
func (c ReportLocationCommand) Position() geo.Coordinates {
	return c.position
}
