package nav

// identityTransform maps figure pixels straight to data values, which
// keeps the expected numbers in the gesture tests readable.
type identityTransform struct{}

func (identityTransform) PixelToData(px, py float64) (float64, float64) { return px, py }
func (identityTransform) DataToPixel(x, y float64) (float64, float64)  { return x, y }

// rangeTransform maps the surface bounds onto a view range the way a
// real pane does, with rows growing downward. Unlike identityTransform
// it changes with the ranges, so a gesture sees the mapping left behind
// by the previous one.
type rangeTransform struct {
	b              Rect
	x0, x1, y0, y1 float64
}

func (t rangeTransform) spanX() float64 { return float64(t.b.W - 1) }
func (t rangeTransform) spanY() float64 { return float64(t.b.H - 1) }

func (t rangeTransform) PixelToData(px, py float64) (float64, float64) {
	fx := (px - float64(t.b.X)) / t.spanX()
	fy := (py - float64(t.b.Y)) / t.spanY()
	return t.x0 + fx*(t.x1-t.x0), t.y1 - fy*(t.y1-t.y0)
}

func (t rangeTransform) DataToPixel(x, y float64) (float64, float64) {
	fx := (x - t.x0) / (t.x1 - t.x0)
	fy := (t.y1 - y) / (t.y1 - t.y0)
	return float64(t.b.X) + fx*t.spanX(), float64(t.b.Y) + fy*t.spanY()
}

type panCall struct {
	button MouseButton
	key    string
	x, y   int
}

type fakeSurface struct {
	id                 string
	x0, x1, y0, y1     float64
	xScale, yScale     Scale
	navigable          bool
	canZoom, canPan    bool
	affine             bool
	bounds             Rect
	twinX, twinY       map[string]bool
	panStarts, panEnds int
	drags              []panCall
}

func newFakeSurface(id string) *fakeSurface {
	return &fakeSurface{
		id:        id,
		x0:        0, x1: 10,
		y0:        0, y1: 10,
		navigable: true,
		canZoom:   true,
		canPan:    true,
		bounds:    Rect{X: 0, Y: 0, W: 20, H: 20},
		twinX:     make(map[string]bool),
		twinY:     make(map[string]bool),
	}
}

func (s *fakeSurface) ID() string                  { return s.id }
func (s *fakeSurface) XRange() (float64, float64)  { return s.x0, s.x1 }
func (s *fakeSurface) YRange() (float64, float64)  { return s.y0, s.y1 }
func (s *fakeSurface) SetXRange(min, max float64)  { s.x0, s.x1 = min, max }
func (s *fakeSurface) SetYRange(min, max float64)  { s.y0, s.y1 = min, max }
func (s *fakeSurface) XScale() Scale               { return s.xScale }
func (s *fakeSurface) YScale() Scale               { return s.yScale }
func (s *fakeSurface) Navigable() bool             { return s.navigable }
func (s *fakeSurface) SetNavigable(on bool)        { s.navigable = on }
func (s *fakeSurface) CanZoom() bool               { return s.canZoom }
func (s *fakeSurface) CanPan() bool                { return s.canPan }
func (s *fakeSurface) Bounds() Rect                { return s.bounds }
func (s *fakeSurface) Contains(x, y int) bool      { return s.bounds.Contains(x, y) }
func (s *fakeSurface) Transform() Transform {
	if s.affine {
		return rangeTransform{b: s.bounds, x0: s.x0, x1: s.x1, y0: s.y0, y1: s.y1}
	}
	return identityTransform{}
}
func (s *fakeSurface) SharedX(other Surface) bool  { return s.twinX[other.ID()] }
func (s *fakeSurface) SharedY(other Surface) bool  { return s.twinY[other.ID()] }
func (s *fakeSurface) StartPan(x, y int, b MouseButton) { s.panStarts++ }
func (s *fakeSurface) DragPan(b MouseButton, key string, x, y int) {
	s.drags = append(s.drags, panCall{button: b, key: key, x: x, y: y})
}
func (s *fakeSurface) EndPan() { s.panEnds++ }

// fakeToggle is a minimal toggle tool that takes the press channel on
// activation, for exercising the controller's exclusivity contract.
type fakeToggle struct {
	meta
	c           *Controller
	activated   int
	deactivated int
	presses     int
	releases    int
	moves       int
	keys        int
}

func newFakeToggle(c *Controller, name string) *fakeToggle {
	return &fakeToggle{
		meta: meta{name: name, kind: KindToggle},
		c:    c,
	}
}

func (t *fakeToggle) Activate(ev Event) error {
	if err := t.c.PressLock().Acquire(t); err != nil {
		return err
	}
	t.activated++
	return nil
}

func (t *fakeToggle) Deactivate(ev Event) {
	t.c.PressLock().Release(t)
	t.deactivated++
}

func (t *fakeToggle) Press(ev Event)     { t.presses++ }
func (t *fakeToggle) Release(ev Event)   { t.releases++ }
func (t *fakeToggle) MouseMove(ev Event) { t.moves++ }
func (t *fakeToggle) KeyPress(ev Event)  { t.keys++ }

type fakeOneShot struct {
	meta
	runs int
}

func newFakeOneShot(name string) *fakeOneShot {
	return &fakeOneShot{meta: meta{name: name, kind: KindOneShot}}
}

func (t *fakeOneShot) Activate(ev Event) error {
	t.runs++
	return nil
}
