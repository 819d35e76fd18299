package nav

// Scale identifies how an axis maps data values to screen positions.
type Scale int

const (
	ScaleLinear Scale = iota
	ScaleLog
)

// MouseButton identifies which pointer button an event carries.
// Button1 starts zoom-in / pan gestures, Button3 zoom-out.
type MouseButton int

const (
	ButtonNone MouseButton = 0
	Button1    MouseButton = 1
	Button2    MouseButton = 2
	Button3    MouseButton = 3
)

// EventType classifies surface events delivered to the controller.
type EventType int

const (
	EventPress EventType = iota
	EventRelease
	EventMove
	EventKeyPress
	EventKeyRelease
)

// Event is one pointer or keyboard event in figure pixel coordinates.
// Key holds the logical key name ("x", "y", "3", ...) for key events and
// the modifier key held during pointer events, or "".
type Event struct {
	Type   EventType
	Button MouseButton
	Key    string
	X, Y   int
}

// Rect is a pixel-space bounding box. W and H are cell counts, so the
// rightmost contained column is X+W-1.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the pixel (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Transform converts between figure pixel coordinates and data
// coordinates. Implementations are value snapshots: a Transform obtained
// before a range change keeps mapping with the old ranges.
type Transform interface {
	PixelToData(px, py float64) (x, y float64)
	DataToPixel(x, y float64) (px, py float64)
}

// Surface is a single plot area whose visible data range can be changed
// interactively. Ranges are ordered pairs, not sorted: min > max is a
// valid inverted axis.
type Surface interface {
	ID() string

	XRange() (min, max float64)
	YRange() (min, max float64)
	SetXRange(min, max float64)
	SetYRange(min, max float64)

	XScale() Scale
	YScale() Scale

	Navigable() bool
	SetNavigable(on bool)
	CanZoom() bool
	CanPan() bool

	Bounds() Rect
	Contains(x, y int) bool
	Transform() Transform

	// SharedX and SharedY report twinned-axis membership, used to avoid
	// zooming a shared axis twice in one gesture.
	SharedX(other Surface) bool
	SharedY(other Surface) bool

	// Pan session primitives. The surface owns the incremental pan
	// computation; tools only route the event stream.
	StartPan(x, y int, button MouseButton)
	DragPan(button MouseButton, key string, x, y int)
	EndPan()
}
