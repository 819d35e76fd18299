package nav

import "fmt"

// ContentionError reports an attempt to acquire a channel lock that is
// already held by another tool. The controller treats it as "tool
// temporarily unavailable", never as a fatal condition.
type ContentionError struct {
	Channel string
	Owner   string
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("%s channel locked by %s", e.Channel, e.Owner)
}

// Lock is a single-owner mutual-exclusion primitive for one event
// channel. Each channel gets its own Lock instance: holding the move
// lock implies nothing about the press lock.
type Lock struct {
	channel string
	owner   Tool
}

// Acquire grants ownership to owner. Re-acquiring a lock the owner
// already holds succeeds.
func (l *Lock) Acquire(owner Tool) error {
	if l.owner != nil && l.owner != owner {
		return &ContentionError{Channel: l.channel, Owner: l.owner.Name()}
	}
	l.owner = owner
	return nil
}

// Release clears ownership if owner is the current holder. Releasing a
// lock held by someone else, or an unheld lock, is a no-op: a tool must
// never assume a lock it did not explicitly acquire.
func (l *Lock) Release(owner Tool) {
	if l.owner == owner {
		l.owner = nil
	}
}

// Owner returns the current holder, or nil.
func (l *Lock) Owner() Tool {
	return l.owner
}

// HeldBy reports whether owner currently holds the lock.
func (l *Lock) HeldBy(owner Tool) bool {
	return l.owner != nil && l.owner == owner
}
