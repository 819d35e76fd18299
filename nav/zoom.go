package nav

import "math"

// clickThreshold is the pixel delta below which a drag counts as a
// singular click and the zoom is aborted.
const clickThreshold = 5

// gesturePress freezes everything the release handler needs about one
// surface at press time: the ranges and transform must not see any
// mutation that happens mid-gesture.
type gesturePress struct {
	surface        Surface
	index          int
	x0, x1, y0, y1 float64
	trans          Transform
	startX, startY int
}

// ZoomTool is the zoom-to-rectangle toggle tool. Button 1 zooms in to
// the dragged rectangle; button 3 zooms out so the current view maps
// onto the rectangle. Holding "x" or "y" constrains the zoom to one
// axis. A second press mid-gesture cancels the zoom box.
type ZoomTool struct {
	meta
	c *Controller

	pressed MouseButton
	records []gesturePress
	subs    []SubscriptionID
	mode    string
}

func NewZoomTool(c *Controller) *ZoomTool {
	return &ZoomTool{
		meta: meta{
			name:     "zoom",
			desc:     "Zoom to rectangle",
			keymap:   []string{"z"},
			icon:     "zoom_to_rect",
			position: -1,
			kind:     KindToggle,
		},
		c: c,
	}
}

func (t *ZoomTool) Activate(ev Event) error {
	if err := t.c.CanvasLock().Acquire(t); err != nil {
		return err
	}
	if err := t.c.PressLock().Acquire(t); err != nil {
		t.c.CanvasLock().Release(t)
		return err
	}
	if err := t.c.ReleaseLock().Acquire(t); err != nil {
		t.c.CanvasLock().Release(t)
		t.c.PressLock().Release(t)
		return err
	}
	return nil
}

func (t *ZoomTool) Deactivate(ev Event) {
	if len(t.subs) != 0 {
		t.cancel()
	}
	t.c.CanvasLock().Release(t)
	t.c.PressLock().Release(t)
	t.c.ReleaseLock().Release(t)
}

func (t *ZoomTool) Press(ev Event) {
	// A second press while a zoom box is live cancels the gesture.
	if len(t.subs) != 0 {
		t.cancel()
		return
	}

	switch ev.Button {
	case Button1, Button3:
		t.pressed = ev.Button
	default:
		t.pressed = ButtonNone
		return
	}

	// The first gesture establishes "home".
	if t.c.Views().Empty() {
		t.c.PushCurrent()
	}

	t.records = nil
	for i, s := range t.c.Surfaces() {
		if !s.Contains(ev.X, ev.Y) || !s.Navigable() || !s.CanZoom() {
			continue
		}
		x0, x1 := s.XRange()
		y0, y1 := s.YRange()
		t.records = append(t.records, gesturePress{
			surface: s,
			index:   i,
			x0:      x0, x1: x1, y0: y0, y1: y1,
			trans:  s.Transform(),
			startX: ev.X, startY: ev.Y,
		})
	}

	if len(t.records) == 0 {
		t.pressed = ButtonNone
		return
	}

	if err := t.c.MoveLock().Acquire(t); err != nil {
		t.records = nil
		t.pressed = ButtonNone
		return
	}
	t.subs = []SubscriptionID{
		t.c.Connect(EventKeyPress, t.switchOnMode),
		t.c.Connect(EventKeyRelease, t.switchOffMode),
	}
	t.mode = ev.Key
}

func (t *ZoomTool) switchOnMode(ev Event) {
	t.mode = ev.Key
	t.MouseMove(ev)
}

func (t *ZoomTool) switchOffMode(ev Event) {
	t.mode = ""
	t.MouseMove(ev)
}

// MouseMove updates the rubber band while a zoom box is live: the live
// point is clamped to the first recorded surface's bounds, and an axis
// constraint pins the other axis to the full bounds.
func (t *ZoomTool) MouseMove(ev Event) {
	if len(t.records) == 0 {
		return
	}
	r := t.records[0]
	b := r.surface.Bounds()
	bx0, bx1 := b.X, b.X+b.W-1
	by0, by1 := b.Y, b.Y+b.H-1

	x, lastX := ev.X, r.startX
	y, lastY := ev.Y, r.startY
	x, lastX = maxInt(minInt(x, lastX), bx0), minInt(maxInt(x, lastX), bx1)
	y, lastY = maxInt(minInt(y, lastY), by0), minInt(maxInt(y, lastY), by1)

	switch t.mode {
	case "x":
		y, lastY = by0, by1
	case "y":
		x, lastX = bx0, bx1
	}

	t.c.Rubberband(x, y, lastX, lastY)
}

func (t *ZoomTool) Release(ev Event) {
	t.c.MoveLock().Release(t)
	t.disconnect()

	if len(t.records) == 0 {
		t.pressed = ButtonNone
		return
	}

	var done []Surface
	for _, r := range t.records {
		// Singular clicks abort the whole gesture: a thin rectangle in
		// either axis is degenerate.
		if absInt(ev.X-r.startX) < clickThreshold || absInt(ev.Y-r.startY) < clickThreshold {
			t.records = nil
			t.pressed = ButtonNone
			t.mode = ""
			t.c.ClearRubberband()
			t.c.Draw()
			return
		}

		lastX, lastY := r.trans.PixelToData(float64(r.startX), float64(r.startY))
		dataX, dataY := r.trans.PixelToData(float64(ev.X), float64(ev.Y))
		xMin, xMax := r.x0, r.x1
		yMin, yMax := r.y0, r.y1

		twinX, twinY := false, false
		for _, la := range done {
			if r.surface.SharedX(la) {
				twinX = true
			}
			if r.surface.SharedY(la) {
				twinY = true
			}
		}
		done = append(done, r.surface)

		x0, x1 := xMin, xMax
		if !twinX {
			x0, x1 = orientInterval(dataX, lastX, xMin, xMax)
		}
		y0, y1 := yMin, yMax
		if !twinY {
			y0, y1 = orientInterval(dataY, lastY, yMin, yMax)
		}

		switch t.pressed {
		case Button1:
			switch t.mode {
			case "x":
				r.surface.SetXRange(x0, x1)
			case "y":
				r.surface.SetYRange(y0, y1)
			default:
				r.surface.SetXRange(x0, x1)
				r.surface.SetYRange(y0, y1)
			}
		case Button3:
			rx0, rx1, okX := extrapolate(xMin, xMax, x0, x1, r.surface.XScale())
			ry0, ry1, okY := extrapolate(yMin, yMax, y0, y1, r.surface.YScale())
			switch t.mode {
			case "x":
				if okX {
					r.surface.SetXRange(rx0, rx1)
				}
			case "y":
				if okY {
					r.surface.SetYRange(ry0, ry1)
				}
			default:
				if okX {
					r.surface.SetXRange(rx0, rx1)
				}
				if okY {
					r.surface.SetYRange(ry0, ry1)
				}
			}
		}
	}

	t.c.ClearRubberband()
	t.c.Draw()
	t.records = nil
	t.pressed = ButtonNone
	t.mode = ""
	t.c.PushCurrent()
}

// KeyPress is unused: mode switching goes through the transient
// subscriptions registered at press time.
func (t *ZoomTool) KeyPress(ev Event) {}

func (t *ZoomTool) cancel() {
	t.c.MoveLock().Release(t)
	t.disconnect()
	t.records = nil
	t.pressed = ButtonNone
	t.mode = ""
	t.c.ClearRubberband()
	t.c.Draw()
}

func (t *ZoomTool) disconnect() {
	for _, id := range t.subs {
		t.c.Disconnect(id)
	}
	t.subs = nil
}

// orientInterval orders the dragged interval (p, q) to match the
// original range's min/max ordering and clamps it inside that range.
// Inverted axes (min > max) keep their descending orientation.
func orientInterval(p, q, min, max float64) (float64, float64) {
	if min < max {
		lo, hi := p, q
		if p > q {
			lo, hi = q, p
		}
		if lo < min {
			lo = min
		}
		if hi > max {
			hi = max
		}
		return lo, hi
	}
	hi, lo := p, q
	if p < q {
		hi, lo = q, p
	}
	if hi > min {
		hi = min
	}
	if lo < max {
		lo = max
	}
	return hi, lo
}

// extrapolate computes the zoom-out range: the scale factor that maps
// the drawn rectangle (q0, q1) back onto the original range (min, max),
// applied outward. Linear axes extrapolate affinely; log axes in the
// log domain. Degenerate input (zero-width rectangle after conversion,
// or non-positive values on a log axis) leaves the axis unchanged.
func extrapolate(min, max, q0, q1 float64, scale Scale) (float64, float64, bool) {
	if scale == ScaleLog {
		if min <= 0 || max <= 0 || q0 <= 0 || q1 <= 0 {
			return 0, 0, false
		}
		d := math.Log(q1 / q0)
		if d == 0 {
			return 0, 0, false
		}
		alpha := math.Log(max/min) / d
		r0 := math.Pow(min/q0, alpha) * min
		r1 := math.Pow(max/q0, alpha) * min
		return r0, r1, true
	}
	if q1 == q0 {
		return 0, 0, false
	}
	alpha := (max - min) / (q1 - q0)
	r0 := alpha*(min-q0) + min
	r1 := alpha*(max-q0) + min
	return r0, r1, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
