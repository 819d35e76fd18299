package nav

// ViewSnapshot is an immutable capture of one surface's range pair at a
// point in time.
type ViewSnapshot struct {
	Surface        Surface
	X0, X1, Y0, Y1 float64
}

// SnapshotGroup is a simultaneous snapshot of all navigable surfaces.
type SnapshotGroup []ViewSnapshot

// ViewStack is a linear undo/redo history of view snapshots with a
// cursor. The cursor always points at a valid index unless the stack is
// empty; Back and Forward clamp at the ends.
type ViewStack struct {
	groups []SnapshotGroup
	cursor int
}

// Push appends the group after the cursor, discarding any forward
// history, then advances the cursor onto it.
func (s *ViewStack) Push(g SnapshotGroup) {
	if s.Empty() {
		s.groups = append(s.groups, g)
		s.cursor = 0
		return
	}
	s.groups = append(s.groups[:s.cursor+1], g)
	s.cursor++
}

// Home moves the cursor to the first snapshot. No-op when empty.
func (s *ViewStack) Home() {
	s.cursor = 0
}

// Back moves the cursor one step toward home. No-op at the start.
func (s *ViewStack) Back() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Forward moves the cursor one step toward the newest snapshot. No-op at
// the end.
func (s *ViewStack) Forward() {
	if s.cursor < len(s.groups)-1 {
		s.cursor++
	}
}

// Empty reports whether any snapshot exists.
func (s *ViewStack) Empty() bool {
	return len(s.groups) == 0
}

// Len returns the number of stored snapshot groups.
func (s *ViewStack) Len() int {
	return len(s.groups)
}

// Current returns the snapshot group at the cursor, or nil when empty.
func (s *ViewStack) Current() SnapshotGroup {
	if s.Empty() {
		return nil
	}
	return s.groups[s.cursor]
}
