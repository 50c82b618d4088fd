package input

import "fmt"

// Binding maps one chord sequence to a command, under an optional When
// condition. Keys is kept alongside its parsed Sequence so a binding
// loaded from a config file can report its original spelling in an
// error or a keybinding-list view.
type Binding struct {
	Keys     string
	Sequence Sequence
	Command  string
	Args     map[string]any
	When     string
	Priority int
}

// NewBinding parses keys and returns a Binding bound to command. It
// panics on an unparsable chord string — callers building the default
// keymap pass literals they control; a user-supplied keymap file
// should call ParseSequence itself and construct Binding directly so
// the parse error can be reported instead of panicking.
func NewBinding(keys, command string) Binding {
	seq := MustParseSequence(keys)
	return Binding{Keys: keys, Sequence: seq, Command: command}
}

// WithArgs attaches fixed arguments to the binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithWhen attaches a condition expression to the binding.
func (b Binding) WithWhen(when string) Binding {
	b.When = when
	return b
}

// WithPriority sets the binding's tie-break priority; higher wins.
func (b Binding) WithPriority(p int) Binding {
	b.Priority = p
	return b
}

// Keymap groups bindings under an optional mode/file-type scope.
// Bindings in a mode-specific or file-type-specific keymap outrank
// bindings in a global one when chord, priority, and When all tie.
type Keymap struct {
	Name     string
	Mode     string
	FileType string
	Priority int
	Bindings []Binding
}

// NewKeymap returns an empty, named keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// ForMode scopes the keymap to a single input mode.
func (k *Keymap) ForMode(mode string) *Keymap {
	k.Mode = mode
	return k
}

// ForFileType scopes the keymap to a single file type.
func (k *Keymap) ForFileType(ft string) *Keymap {
	k.FileType = ft
	return k
}

// Add appends a plain keys->command binding.
func (k *Keymap) Add(keys, command string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, command))
	return k
}

// AddBinding appends a fully configured Binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// score ranks a matched binding for tie-breaking when more than one
// keymap's binding matches the same sequence: keymap priority first,
// then binding priority, then mode-specificity, then file-type
// specificity.
func (k *Keymap) score(b Binding) int {
	s := k.Priority<<24 + b.Priority<<2
	if k.Mode != "" {
		s += 2
	}
	if k.FileType != "" {
		s++
	}
	return s
}

func (k *Keymap) applies(ctx Context) bool {
	if k.Mode != "" && k.Mode != ctx.Mode {
		return false
	}
	if k.FileType != "" && k.FileType != ctx.FileType {
		return false
	}
	return true
}

func (k *Keymap) String() string {
	return fmt.Sprintf("Keymap(%s mode=%q filetype=%q, %d bindings)", k.Name, k.Mode, k.FileType, len(k.Bindings))
}
