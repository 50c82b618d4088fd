package input

// Command is a resolved, ready-to-apply action: a name plus fixed or
// binding-supplied arguments. It is shaped identically to
// internal/render.Command but declared independently so internal/input
// never imports internal/render — the two packages only agree by
// convention on field names, the same way internal/app wires one to
// the other.
type Command struct {
	Name string
	Args map[string]any
}
