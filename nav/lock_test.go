package nav

import (
	"errors"
	"testing"
)

func TestLockAcquireRelease(t *testing.T) {
	c := NewController()
	a := newFakeToggle(c, "a")
	b := newFakeToggle(c, "b")

	l := &Lock{channel: "press"}
	if err := l.Acquire(a); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if !l.HeldBy(a) {
		t.Fatal("lock not held by acquirer")
	}

	err := l.Acquire(b)
	if err == nil {
		t.Fatal("second acquire by another tool succeeded")
	}
	var contention *ContentionError
	if !errors.As(err, &contention) {
		t.Fatalf("error type = %T, want *ContentionError", err)
	}
	if contention.Channel != "press" || contention.Owner != "a" {
		t.Fatalf("contention = %q held by %q, want press held by a", contention.Channel, contention.Owner)
	}

	// Re-acquiring a held lock is not contention.
	if err := l.Acquire(a); err != nil {
		t.Fatalf("re-acquire by owner: %v", err)
	}

	// Release by a non-owner must not free the lock.
	l.Release(b)
	if !l.HeldBy(a) {
		t.Fatal("release by non-owner freed the lock")
	}

	l.Release(a)
	if l.Owner() != nil {
		t.Fatalf("owner after release = %v, want nil", l.Owner())
	}
	if err := l.Acquire(b); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestLockReleaseUnheld(t *testing.T) {
	c := NewController()
	a := newFakeToggle(c, "a")

	l := &Lock{channel: "move"}
	l.Release(a)
	if l.Owner() != nil {
		t.Fatal("releasing an unheld lock assigned an owner")
	}
}
