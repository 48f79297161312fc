package world

import (
	"errors"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrQueueFull = errors.New("command queue full")
	// ErrInvariantViolated marks simulation state that should be unreachable.
	ErrInvariantViolated = crafting.ErrInvariantViolated
)
