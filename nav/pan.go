package nav

// PanTool is the pan/scale-drag toggle tool. Button 1 drags the view
// so the content follows the cursor; button 3 scale-drags, zooming the
// view about the press point. Holding "x" or "y" constrains the motion
// to one axis.
type PanTool struct {
	meta
	c *Controller

	pressed  MouseButton
	surfaces []Surface
}

func NewPanTool(c *Controller) *PanTool {
	return &PanTool{
		meta: meta{
			name:     "pan",
			desc:     "Pan axes with left mouse, zoom with right",
			keymap:   []string{"p"},
			icon:     "move",
			position: -1,
			kind:     KindToggle,
		},
		c: c,
	}
}

func (t *PanTool) Activate(ev Event) error {
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

func (t *PanTool) Deactivate(ev Event) {
	if len(t.surfaces) != 0 {
		t.endDrag()
	}
	t.c.CanvasLock().Release(t)
	t.c.PressLock().Release(t)
	t.c.ReleaseLock().Release(t)
}

func (t *PanTool) Press(ev Event) {
	switch ev.Button {
	case Button1, Button3:
		t.pressed = ev.Button
	default:
		t.pressed = ButtonNone
		return
	}

	if t.c.Views().Empty() {
		t.c.PushCurrent()
	}

	t.surfaces = nil
	for _, s := range t.c.Surfaces() {
		if !s.Contains(ev.X, ev.Y) || !s.Navigable() || !s.CanPan() {
			continue
		}
		s.StartPan(ev.X, ev.Y, ev.Button)
		t.surfaces = append(t.surfaces, s)
	}
	if len(t.surfaces) == 0 {
		return
	}
	if err := t.c.MoveLock().Acquire(t); err != nil {
		for _, s := range t.surfaces {
			s.EndPan()
		}
		t.surfaces = nil
		t.pressed = ButtonNone
	}
}

func (t *PanTool) MouseMove(ev Event) {
	if len(t.surfaces) == 0 {
		return
	}
	for _, s := range t.surfaces {
		s.DragPan(t.pressed, ev.Key, ev.X, ev.Y)
	}
	t.c.Draw()
}

func (t *PanTool) Release(ev Event) {
	if len(t.surfaces) == 0 {
		t.pressed = ButtonNone
		return
	}
	t.endDrag()
	t.c.Draw()
	t.c.PushCurrent()
}

// KeyPress is unused: the constraint key rides along on motion events,
// so DragPan sees it without a separate key hook.
func (t *PanTool) KeyPress(ev Event) {}

func (t *PanTool) endDrag() {
	t.c.MoveLock().Release(t)
	for _, s := range t.surfaces {
		s.EndPan()
	}
	t.surfaces = nil
	t.pressed = ButtonNone
}
