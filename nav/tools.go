package nav

import "strconv"

// HomeTool restores the first view in the history.
type HomeTool struct {
	meta
	c *Controller
}

func NewHomeTool(c *Controller) *HomeTool {
	return &HomeTool{
		meta: meta{
			name:     "home",
			desc:     "Reset original view",
			keymap:   []string{"h", "r", "home"},
			icon:     "home",
			position: -1,
			kind:     KindOneShot,
		},
		c: c,
	}
}

func (t *HomeTool) Activate(ev Event) error {
	t.c.Views().Home()
	t.c.UpdateView()
	return nil
}

// BackTool steps back in the view history.
type BackTool struct {
	meta
	c *Controller
}

func NewBackTool(c *Controller) *BackTool {
	return &BackTool{
		meta: meta{
			name:     "back",
			desc:     "Back to previous view",
			keymap:   []string{"left", "c", "backspace"},
			icon:     "back",
			position: -1,
			kind:     KindOneShot,
		},
		c: c,
	}
}

func (t *BackTool) Activate(ev Event) error {
	t.c.Views().Back()
	t.c.UpdateView()
	return nil
}

// ForwardTool steps forward in the view history.
type ForwardTool struct {
	meta
	c *Controller
}

func NewForwardTool(c *Controller) *ForwardTool {
	return &ForwardTool{
		meta: meta{
			name:     "forward",
			desc:     "Forward to next view",
			keymap:   []string{"right", "v"},
			icon:     "forward",
			position: -1,
			kind:     KindOneShot,
		},
		c: c,
	}
}

func (t *ForwardTool) Activate(ev Event) error {
	t.c.Views().Forward()
	t.c.UpdateView()
	return nil
}

// EnableAllTool marks every surface navigable, so zoom and pan
// gestures apply to all of them at once.
type EnableAllTool struct {
	meta
	c *Controller
}

func NewEnableAllTool(c *Controller) *EnableAllTool {
	return &EnableAllTool{
		meta: meta{
			name:     "nav_all",
			desc:     "Enable all surfaces for navigation",
			keymap:   []string{"a"},
			position: -1,
			kind:     KindOneShot,
		},
		c: c,
	}
}

func (t *EnableAllTool) Activate(ev Event) error {
	for _, s := range t.c.Surfaces() {
		s.SetNavigable(true)
	}
	return nil
}

// EnableOneTool makes exactly one surface navigable, selected by the
// digit key that triggered the tool. Out-of-range digits and non-digit
// triggers are ignored.
type EnableOneTool struct {
	meta
	c *Controller
}

func NewEnableOneTool(c *Controller) *EnableOneTool {
	keys := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	return &EnableOneTool{
		meta: meta{
			name:     "nav_one",
			desc:     "Enable one surface for navigation",
			keymap:   keys,
			position: -1,
			kind:     KindOneShot,
		},
		c: c,
	}
}

func (t *EnableOneTool) Activate(ev Event) error {
	n, err := strconv.Atoi(ev.Key)
	if err != nil {
		return nil
	}
	surfaces := t.c.Surfaces()
	if n < 1 || n > len(surfaces) {
		return nil
	}
	for i, s := range surfaces {
		s.SetNavigable(i == n-1)
	}
	return nil
}
