package nav

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SubscriptionID identifies a transient event listener registered with
// Connect. Tools store the IDs in their gesture state and must
// Disconnect them deterministically on release or cancellation.
type SubscriptionID string

type subscription struct {
	id  SubscriptionID
	typ EventType
	fn  func(Event)
}

// Controller owns the channel locks, the view history, the tool registry
// and the figure's surfaces, and routes incoming surface events to
// whichever toggle tool currently holds the relevant lock.
//
// Everything runs on the host's single event loop: handlers run to
// completion before the next event is processed, so no locking beyond
// the channel arbitration is needed.
type Controller struct {
	canvas   Lock
	press    Lock
	release  Lock
	move     Lock
	keyPress Lock

	views    ViewStack
	surfaces []Surface

	tools  map[string]Tool
	order  []string
	active ToggleTool

	subs []subscription

	// Render callbacks supplied by the host; nil callbacks are no-ops.
	// OnRubberband receives the two corners of the live zoom rectangle
	// in figure pixel coordinates.
	OnDraw            func()
	OnRubberband      func(x0, y0, x1, y1 int)
	OnClearRubberband func()
}

func NewController() *Controller {
	return &Controller{
		canvas:   Lock{channel: "canvas"},
		press:    Lock{channel: "press"},
		release:  Lock{channel: "release"},
		move:     Lock{channel: "move"},
		keyPress: Lock{channel: "keypress"},
		tools:    make(map[string]Tool),
	}
}

// AddSurface appends a plot area to the figure in draw order.
func (c *Controller) AddSurface(s Surface) {
	c.surfaces = append(c.surfaces, s)
}

// Surfaces returns the figure's plot areas in draw order.
func (c *Controller) Surfaces() []Surface {
	return c.surfaces
}

// Views returns the navigation history stack.
func (c *Controller) Views() *ViewStack {
	return &c.views
}

func (c *Controller) CanvasLock() *Lock  { return &c.canvas }
func (c *Controller) PressLock() *Lock   { return &c.press }
func (c *Controller) ReleaseLock() *Lock { return &c.release }
func (c *Controller) MoveLock() *Lock    { return &c.move }
func (c *Controller) KeyLock() *Lock     { return &c.keyPress }

// Register adds a tool to the registry under its name.
func (c *Controller) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("register tool: empty name")
	}
	if _, ok := c.tools[name]; ok {
		return fmt.Errorf("register tool: %q already registered", name)
	}
	c.tools[name] = t
	c.order = append(c.order, name)
	return nil
}

// Unregister removes a tool. An active toggle tool is deactivated first
// so its channel locks are not left dangling.
func (c *Controller) Unregister(name string) {
	t, ok := c.tools[name]
	if !ok {
		return
	}
	if tg, ok := t.(ToggleTool); ok && c.active == tg {
		tg.Deactivate(Event{})
		c.active = nil
	}
	delete(c.tools, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Tool returns the registered tool with the given name, or nil.
func (c *Controller) Tool(name string) Tool {
	return c.tools[name]
}

// Tools returns all registered tools in registration order.
func (c *Controller) Tools() []Tool {
	out := make([]Tool, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tools[name])
	}
	return out
}

// ActiveToggle returns the currently active toggle tool, or nil.
func (c *Controller) ActiveToggle() ToggleTool {
	return c.active
}

// Trigger activates the named tool. One-shot and persistent tools just
// run Activate. For toggle tools the exclusivity contract applies:
// triggering the active tool deactivates it; triggering another toggle
// tool deactivates the active one first, releasing its locks, before the
// new tool activates. Lock contention during activation means the tool
// is temporarily unavailable and is absorbed silently.
func (c *Controller) Trigger(name string, ev Event) error {
	t, ok := c.tools[name]
	if !ok {
		return fmt.Errorf("trigger: unknown tool %q", name)
	}

	tg, isToggle := t.(ToggleTool)
	if !isToggle || t.Kind() != KindToggle {
		return t.Activate(ev)
	}

	if c.active == tg {
		tg.Deactivate(ev)
		c.active = nil
		return nil
	}
	if c.active != nil {
		c.active.Deactivate(ev)
		c.active = nil
	}
	if err := tg.Activate(ev); err != nil {
		var contention *ContentionError
		if errors.As(err, &contention) {
			return nil
		}
		return err
	}
	c.active = tg
	return nil
}

// HandleEvent routes a surface event. Pointer events go to the toggle
// tool holding the matching channel lock; key events go to transient
// subscribers and, for presses, to the keypress-lock holder. An event
// with no matching lock holder is silently unhandled.
func (c *Controller) HandleEvent(ev Event) {
	switch ev.Type {
	case EventPress:
		if t := toggleOwner(&c.press); t != nil {
			t.Press(ev)
		}
	case EventRelease:
		if t := toggleOwner(&c.release); t != nil {
			t.Release(ev)
		}
	case EventMove:
		if t := toggleOwner(&c.move); t != nil {
			t.MouseMove(ev)
		}
	case EventKeyPress:
		c.notify(ev)
		if t := toggleOwner(&c.keyPress); t != nil {
			t.KeyPress(ev)
		}
	case EventKeyRelease:
		c.notify(ev)
	}
}

func toggleOwner(l *Lock) ToggleTool {
	t, _ := l.Owner().(ToggleTool)
	return t
}

// Connect registers a transient listener for one event type and returns
// its subscription handle.
func (c *Controller) Connect(t EventType, fn func(Event)) SubscriptionID {
	id := SubscriptionID(uuid.NewString())
	c.subs = append(c.subs, subscription{id: id, typ: t, fn: fn})
	return id
}

// Disconnect removes a transient listener. Unknown IDs are ignored.
func (c *Controller) Disconnect(id SubscriptionID) {
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

func (c *Controller) notify(ev Event) {
	// Listeners may disconnect themselves while handling; iterate a copy.
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		if s.typ == ev.Type {
			s.fn(ev)
		}
	}
}

// PushCurrent snapshots the current ranges of every navigable surface
// and pushes the group onto the view history.
func (c *Controller) PushCurrent() {
	var g SnapshotGroup
	for _, s := range c.surfaces {
		if !s.Navigable() {
			continue
		}
		x0, x1 := s.XRange()
		y0, y1 := s.YRange()
		g = append(g, ViewSnapshot{Surface: s, X0: x0, X1: x1, Y0: y0, Y1: y1})
	}
	if len(g) == 0 {
		return
	}
	c.views.Push(g)
}

// UpdateView applies the history's current snapshot group back to its
// surfaces and triggers a redraw.
func (c *Controller) UpdateView() {
	g := c.views.Current()
	if g == nil {
		return
	}
	for _, snap := range g {
		snap.Surface.SetXRange(snap.X0, snap.X1)
		snap.Surface.SetYRange(snap.Y0, snap.Y1)
	}
	c.Draw()
}

// Draw requests a redraw without changing any range.
func (c *Controller) Draw() {
	if c.OnDraw != nil {
		c.OnDraw()
	}
}

// Rubberband requests the zoom feedback rectangle between two corners.
func (c *Controller) Rubberband(x0, y0, x1, y1 int) {
	if c.OnRubberband != nil {
		c.OnRubberband(x0, y0, x1, y1)
	}
}

// ClearRubberband removes the zoom feedback rectangle.
func (c *Controller) ClearRubberband() {
	if c.OnClearRubberband != nil {
		c.OnClearRubberband()
	}
}
