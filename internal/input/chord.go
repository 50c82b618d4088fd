// Package input resolves backend key/mouse events into named commands
// through a layered keymap stack. It owns no buffer or selection state
// itself; Resolve only ever returns a Command for internal/render's
// Commander to apply.
package input

import (
	"fmt"
	"strings"

	"github.com/forge-editor/forge/internal/gpu"
)

// Chord is one physical key press: a special key or a rune, plus
// modifiers. Two Chords compare equal key-for-key and modifier-for-
// modifier; a Sequence is a run of Chords a keymap binds as one unit
// ("g g", "C-x C-s").
type Chord struct {
	Key  gpu.Key
	Rune rune
	Mod  gpu.ModMask
}

// FromEvent converts a backend key event into the Chord the keymap
// matches against. Non-key events (resize, mouse, paste, focus) have
// no chord representation and are not routed through the resolver.
func FromEvent(ev gpu.Event) Chord {
	return Chord{Key: ev.Key, Rune: ev.Rune, Mod: ev.Mod}
}

// Equals reports whether two chords represent the same physical press.
func (c Chord) Equals(other Chord) bool {
	return c.Key == other.Key && c.Rune == other.Rune && c.Mod == other.Mod
}

// String renders a chord the way bindings are authored: "C-S-a", "Esc",
// "j". Letter runes under a bare Ctrl modifier print as "C-<letter>"
// rather than a control character, matching how config files spell
// chords.
func (c Chord) String() string {
	var mods strings.Builder
	if c.Mod.Has(gpu.ModCtrl) {
		mods.WriteString("C-")
	}
	if c.Mod.Has(gpu.ModAlt) {
		mods.WriteString("A-")
	}
	if c.Mod.Has(gpu.ModShift) {
		mods.WriteString("S-")
	}
	if c.Mod.Has(gpu.ModMeta) {
		mods.WriteString("M-")
	}

	if c.Key == gpu.KeyRune {
		return mods.String() + string(c.Rune)
	}
	return mods.String() + keyName(c.Key)
}

func keyName(k gpu.Key) string {
	switch k {
	case gpu.KeyEscape:
		return "Esc"
	case gpu.KeyEnter:
		return "Enter"
	case gpu.KeyTab:
		return "Tab"
	case gpu.KeyBackspace:
		return "Backspace"
	case gpu.KeyDelete:
		return "Delete"
	case gpu.KeyHome:
		return "Home"
	case gpu.KeyEnd:
		return "End"
	case gpu.KeyPageUp:
		return "PageUp"
	case gpu.KeyPageDown:
		return "PageDown"
	case gpu.KeyUp:
		return "Up"
	case gpu.KeyDown:
		return "Down"
	case gpu.KeyLeft:
		return "Left"
	case gpu.KeyRight:
		return "Right"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

var specialKeyNames = map[string]gpu.Key{
	"esc":       gpu.KeyEscape,
	"escape":    gpu.KeyEscape,
	"enter":     gpu.KeyEnter,
	"return":    gpu.KeyEnter,
	"tab":       gpu.KeyTab,
	"backspace": gpu.KeyBackspace,
	"delete":    gpu.KeyDelete,
	"del":       gpu.KeyDelete,
	"home":      gpu.KeyHome,
	"end":       gpu.KeyEnd,
	"pageup":    gpu.KeyPageUp,
	"pagedown":  gpu.KeyPageDown,
	"up":        gpu.KeyUp,
	"down":      gpu.KeyDown,
	"left":      gpu.KeyLeft,
	"right":     gpu.KeyRight,
}

// ParseChord parses one chord token, either bare ("j", "Esc") or
// wrapped Vim-style ("<C-s>", "<C-S-a>"). Modifier prefixes are
// case-insensitive single letters followed by a dash: C- A- S- M-.
func ParseChord(token string) (Chord, error) {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">") {
		token = token[1 : len(token)-1]
	}
	if token == "" {
		return Chord{}, fmt.Errorf("input: empty chord")
	}

	var mod gpu.ModMask
	for {
		if len(token) >= 2 && token[1] == '-' {
			switch token[0] {
			case 'C', 'c':
				mod |= gpu.ModCtrl
				token = token[2:]
				continue
			case 'A', 'a':
				mod |= gpu.ModAlt
				token = token[2:]
				continue
			case 'S', 's':
				mod |= gpu.ModShift
				token = token[2:]
				continue
			case 'M', 'm':
				mod |= gpu.ModMeta
				token = token[2:]
				continue
			}
		}
		break
	}

	if token == "" {
		return Chord{}, fmt.Errorf("input: chord %q has modifiers but no key", token)
	}

	if k, ok := specialKeyNames[strings.ToLower(token)]; ok {
		return Chord{Key: k, Mod: mod}, nil
	}

	runes := []rune(token)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("input: unrecognized chord token %q", token)
	}
	return Chord{Key: gpu.KeyRune, Rune: runes[0], Mod: mod}, nil
}
