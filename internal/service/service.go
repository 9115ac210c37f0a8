// Package service provides the engines that mutate and derive tracker state.
package service

import (
	"errors"

	"github.com/google/uuid"
)

// Not-found errors. Lookups and mutations by id return these without
// touching the store.
var (
	ErrStatNotFound        = errors.New("stat not found")
	ErrActionNotFound      = errors.New("action not found")
	ErrCoopNotFound        = errors.New("coop not found")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrMementoNotFound     = errors.New("memento not found")
	ErrTodoNotFound        = errors.New("todo not found")
)

// Other engine errors.
var (
	ErrInvalidCategory = errors.New("invalid coop category")
	ErrInvalidPayload  = errors.New("invalid import payload")
)

// Record id prefixes.
const (
	prefixAction  = "a_"
	prefixCoop    = "coop_"
	prefixMemento = "mem_"
	prefixTodo    = "todo_"
)

// newID mints a time-ordered record id.
func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + id.String()
}
