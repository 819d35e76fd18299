package nav

import (
	"math"
	"testing"
)

func zoomSetup(t *testing.T, surfaces ...*fakeSurface) (*Controller, *ZoomTool) {
	t.Helper()
	c := NewController()
	for _, s := range surfaces {
		c.AddSurface(s)
	}
	z := NewZoomTool(c)
	if err := c.Register(z); err != nil {
		t.Fatalf("register zoom: %v", err)
	}
	if err := c.Trigger("zoom", Event{}); err != nil {
		t.Fatalf("trigger zoom: %v", err)
	}
	return c, z
}

func near(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestZoomInRectangle(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	x0, x1 := s.XRange()
	y0, y1 := s.YRange()
	near(t, "x0", x0, 2)
	near(t, "x1", x1, 8)
	near(t, "y0", y0, 2)
	near(t, "y1", y1, 8)

	// The first gesture pushes home before zooming, then the result.
	if got := c.Views().Len(); got != 2 {
		t.Fatalf("view stack length = %d, want 2", got)
	}
	g := c.Views().Current()
	near(t, "snapshot x0", g[0].X0, 2)
	near(t, "snapshot x1", g[0].X1, 8)
}

func TestZoomOutExtrapolates(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button3, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventRelease, Button: Button3, X: 8, Y: 8})

	// alpha = (10-0)/(8-2); the old view ends map through the rectangle
	// outward.
	x0, x1 := s.XRange()
	near(t, "x0", x0, -10.0/3.0)
	near(t, "x1", x1, 40.0/3.0)
	y0, y1 := s.YRange()
	near(t, "y0", y0, -10.0/3.0)
	near(t, "y1", y1, 40.0/3.0)
}

func TestZoomOutLogScale(t *testing.T) {
	s := newFakeSurface("s")
	s.x0, s.x1 = 1, 100
	s.xScale = ScaleLog
	c, _ := zoomSetup(t, s)

	// Constrained to x; rectangle spans one decade of pixel-data, the
	// view spans two, so alpha = 2.
	c.HandleEvent(Event{Type: EventPress, Button: Button3, Key: "x", X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventRelease, Button: Button3, X: 19, Y: 8})

	x0, x1 := s.XRange()
	alpha := math.Log(100.0) / math.Log(19.0/2.0)
	near(t, "x0", x0, math.Pow(1.0/2.0, alpha))
	near(t, "x1", x1, math.Pow(100.0/2.0, alpha))
	if y0, y1 := s.YRange(); y0 != 0 || y1 != 10 {
		t.Fatalf("y range = (%v, %v), want untouched (0, 10)", y0, y1)
	}
}

func TestZoomOutUndoesZoomIn(t *testing.T) {
	// With a transform tied to the live ranges, zooming out over the
	// same pixel rectangle that was zoomed into maps the shrunk view
	// back onto the original one exactly.
	s := newFakeSurface("s")
	s.affine = true
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 3})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 9, Y: 12})

	if x0, x1 := s.XRange(); x0 == 0 && x1 == 10 {
		t.Fatal("zoom in left the x range untouched")
	}

	c.HandleEvent(Event{Type: EventPress, Button: Button3, X: 2, Y: 3})
	c.HandleEvent(Event{Type: EventRelease, Button: Button3, X: 9, Y: 12})

	x0, x1 := s.XRange()
	y0, y1 := s.YRange()
	near(t, "x0", x0, 0)
	near(t, "x1", x1, 10)
	near(t, "y0", y0, 0)
	near(t, "y1", y1, 10)
}

func TestZoomSingularClickAborts(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	cleared := 0
	c.OnClearRubberband = func() { cleared++ }

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 5, Y: 5})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 18})

	if x0, x1 := s.XRange(); x0 != 0 || x1 != 10 {
		t.Fatalf("x range = (%v, %v), want untouched (0, 10)", x0, x1)
	}
	// Only the home snapshot made it onto the stack.
	if got := c.Views().Len(); got != 1 {
		t.Fatalf("view stack length = %d, want 1", got)
	}
	if cleared != 1 {
		t.Fatalf("rubber band cleared %d times, want 1", cleared)
	}
	if c.MoveLock().Owner() != nil {
		t.Fatal("move lock leaked after aborted zoom")
	}
}

func TestZoomAxisConstraintKey(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	// Pressing "y" mid-gesture constrains to the y axis.
	c.HandleEvent(Event{Type: EventKeyPress, Key: "y"})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	if x0, x1 := s.XRange(); x0 != 0 || x1 != 10 {
		t.Fatalf("x range = (%v, %v), want untouched (0, 10)", x0, x1)
	}
	y0, y1 := s.YRange()
	near(t, "y0", y0, 2)
	near(t, "y1", y1, 8)
}

func TestZoomConstraintKeyReleaseRestores(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventKeyPress, Key: "x"})
	c.HandleEvent(Event{Type: EventKeyRelease, Key: "x"})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	x0, x1 := s.XRange()
	y0, y1 := s.YRange()
	near(t, "x0", x0, 2)
	near(t, "x1", x1, 8)
	near(t, "y0", y0, 2)
	near(t, "y1", y1, 8)
}

func TestZoomInvertedAxisKeepsOrientation(t *testing.T) {
	s := newFakeSurface("s")
	s.x0, s.x1 = 10, 0
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	x0, x1 := s.XRange()
	near(t, "x0", x0, 8)
	near(t, "x1", x1, 2)
	y0, y1 := s.YRange()
	near(t, "y0", y0, 2)
	near(t, "y1", y1, 8)
}

func TestZoomClampsToCurrentView(t *testing.T) {
	s := newFakeSurface("s")
	s.x0, s.x1 = 4, 6
	c, _ := zoomSetup(t, s)

	// The drag reaches pixels outside the current x view; the zoomed
	// interval clamps to it.
	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	x0, x1 := s.XRange()
	near(t, "x0", x0, 4)
	near(t, "x1", x1, 6)
}

func TestZoomSharedAxisAppliedOnce(t *testing.T) {
	s1 := newFakeSurface("s1")
	s2 := newFakeSurface("s2")
	s2.twinX[s1.ID()] = true
	c, _ := zoomSetup(t, s1, s2)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	x0, x1 := s1.XRange()
	near(t, "s1 x0", x0, 2)
	near(t, "s1 x1", x1, 8)

	// s2 shares x with s1, so only its y axis is rezoomed.
	if x0, x1 := s2.XRange(); x0 != 0 || x1 != 10 {
		t.Fatalf("s2 x range = (%v, %v), want untouched (0, 10)", x0, x1)
	}
	y0, y1 := s2.YRange()
	near(t, "s2 y0", y0, 2)
	near(t, "s2 y1", y1, 8)
}

func TestZoomSecondPressCancels(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	cleared := 0
	c.OnClearRubberband = func() { cleared++ }

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	c.HandleEvent(Event{Type: EventPress, Button: Button3, X: 9, Y: 9})
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})

	if x0, x1 := s.XRange(); x0 != 0 || x1 != 10 {
		t.Fatalf("x range = (%v, %v), want untouched (0, 10)", x0, x1)
	}
	if cleared != 1 {
		t.Fatalf("rubber band cleared %d times, want 1", cleared)
	}
	if c.MoveLock().Owner() != nil {
		t.Fatal("move lock leaked after cancel")
	}
	if got := c.Views().Len(); got != 1 {
		t.Fatalf("view stack length = %d, want 1", got)
	}
}

func TestZoomSkipsNonZoomableSurfaces(t *testing.T) {
	s := newFakeSurface("s")
	s.canZoom = false
	c, _ := zoomSetup(t, s)

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	if c.MoveLock().Owner() != nil {
		t.Fatal("zoom armed on a surface with zooming disabled")
	}
	c.HandleEvent(Event{Type: EventRelease, Button: Button1, X: 8, Y: 8})
	if x0, x1 := s.XRange(); x0 != 0 || x1 != 10 {
		t.Fatalf("x range = (%v, %v), want untouched (0, 10)", x0, x1)
	}
}

func TestZoomRubberbandFeedback(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	var rects [][4]int
	c.OnRubberband = func(x0, y0, x1, y1 int) {
		rects = append(rects, [4]int{x0, y0, x1, y1})
	}

	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 3})
	c.HandleEvent(Event{Type: EventMove, X: 9, Y: 12})
	if len(rects) != 1 {
		t.Fatalf("rubber band calls = %d, want 1", len(rects))
	}
	if rects[0] != [4]int{2, 3, 9, 12} {
		t.Fatalf("rubber band = %v, want [2 3 9 12]", rects[0])
	}

	// Motion past the surface edge clamps to its bounds.
	c.HandleEvent(Event{Type: EventMove, X: 40, Y: -3})
	if rects[1] != [4]int{2, 0, 19, 3} {
		t.Fatalf("clamped rubber band = %v, want [2 0 19 3]", rects[1])
	}
}

func TestZoomDeactivateReleasesLocks(t *testing.T) {
	s := newFakeSurface("s")
	c, _ := zoomSetup(t, s)

	// Deactivate mid-gesture: the live box is cancelled and every
	// channel freed.
	c.HandleEvent(Event{Type: EventPress, Button: Button1, X: 2, Y: 2})
	if err := c.Trigger("zoom", Event{}); err != nil {
		t.Fatalf("retrigger zoom: %v", err)
	}

	for name, l := range map[string]*Lock{
		"canvas":  c.CanvasLock(),
		"press":   c.PressLock(),
		"release": c.ReleaseLock(),
		"move":    c.MoveLock(),
	} {
		if l.Owner() != nil {
			t.Fatalf("%s lock still held after deactivation", name)
		}
	}
	if x0, x1 := s.XRange(); x0 != 0 || x1 != 10 {
		t.Fatalf("x range = (%v, %v), want untouched (0, 10)", x0, x1)
	}
}
