package nav

// Kind classifies tool lifecycle. One-shot tools carry no state between
// activations; persistent tools live in the controller registry until
// unregistered; toggle tools are persistent tools that additionally own
// pointer/keyboard channels while active.
type Kind int

const (
	KindOneShot Kind = iota
	KindPersistent
	KindToggle
)

// Tool is the unit of interactive behavior. Name is the registry key and
// must be unique per controller. Description, Keymap, Position and Icon
// are toolbar/menu metadata the core does not interpret (Icon is an
// opaque reference).
type Tool interface {
	Name() string
	Description() string
	Keymap() []string
	Position() int
	Icon() string
	Kind() Kind

	// Activate is called when the tool is triggered. For toggle tools a
	// *ContentionError return means a required channel is owned by
	// another tool and activation was abandoned.
	Activate(ev Event) error
}

// ToggleTool captures press/release/move/key events while active,
// preventing other tools from using the same channels. Only one toggle
// tool may be active at a time per controller.
type ToggleTool interface {
	Tool

	// Deactivate is called on a second trigger of the active tool, or
	// when another toggle tool of the same controller is activated.
	Deactivate(ev Event)

	Press(ev Event)
	Release(ev Event)
	MouseMove(ev Event)
	KeyPress(ev Event)
}

// meta carries the shared toolbar metadata of the built-in tools.
type meta struct {
	name     string
	desc     string
	keymap   []string
	icon     string
	position int
	kind     Kind
}

func (m meta) Name() string        { return m.name }
func (m meta) Description() string { return m.desc }
func (m meta) Keymap() []string    { return m.keymap }
func (m meta) Position() int       { return m.position }
func (m meta) Icon() string        { return m.icon }
func (m meta) Kind() Kind          { return m.kind }
