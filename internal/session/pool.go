// Package session names, creates, and attaches tmux workspace sessions.
package session

import "errors"

// ErrPoolExhausted means every name in the pool is bound to a live
// session; the operator has to close one before a new workspace can
// start.
var ErrPoolExhausted = errors.New("session name pool exhausted: close an existing session and retry")

// DefaultPool is the ordered, closed set of session names. Allocation
// walks it front to back, so the same live set always yields the same
// name.
var DefaultPool = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	"golf", "hotel", "india", "juliet", "kilo", "lima",
}

// Allocator picks the first pool name with no live session. Live is the
// multiplexer's has-session query.
type Allocator struct {
	Pool []string
	Live func(name string) bool
}

// Allocate returns the first free name, or ErrPoolExhausted when every
// name is taken. It never creates anything.
func (a Allocator) Allocate() (string, error) {
	for _, name := range a.Pool {
		if !a.Live(name) {
			return name, nil
		}
	}
	return "", ErrPoolExhausted
}
