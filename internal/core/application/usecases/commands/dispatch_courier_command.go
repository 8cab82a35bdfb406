package commands

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

// ErrDispatchCourierCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrDispatchCourierCommandIsNotConstructed = errors.New(
	"DispatchCourierCommand must be created via NewDispatchCourierCommand constructor",
)

// DispatchCourierCommand triggers one round of automatic courier assignment.
// It carries no parameters: the handler picks the oldest ready order without a
// courier and the first free courier. The background job issues this command
// on a fixed schedule.
type DispatchCourierCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchCourierCommand creates a command for one assignment round.
func NewDispatchCourierCommand() DispatchCourierCommand {
	return DispatchCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c DispatchCourierCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCourierCommandIsNotConstructed)
}
