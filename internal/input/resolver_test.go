package input

import (
	"testing"
	"time"

	"github.com/forge-editor/forge/internal/gpu"
)

func ctrlRune(r rune) gpu.Event {
	return gpu.Event{Type: gpu.EventKey, Key: gpu.KeyRune, Rune: r, Mod: gpu.ModCtrl}
}

func plainKey(k gpu.Key) gpu.Event {
	return gpu.Event{Type: gpu.EventKey, Key: k}
}

func plainRune(r rune) gpu.Event {
	return gpu.Event{Type: gpu.EventKey, Key: gpu.KeyRune, Rune: r}
}

func TestParseChordModifiers(t *testing.T) {
	c, err := ParseChord("C-S-a")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if c.Rune != 'a' || !c.Mod.Has(gpu.ModCtrl) || !c.Mod.Has(gpu.ModShift) {
		t.Errorf("unexpected chord %+v", c)
	}
}

func TestParseChordVimBracketNotation(t *testing.T) {
	c, err := ParseChord("<C-s>")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if c.Rune != 's' || !c.Mod.Has(gpu.ModCtrl) {
		t.Errorf("unexpected chord %+v", c)
	}
}

func TestParseSequenceSpaceSeparated(t *testing.T) {
	seq, err := ParseSequence("g g")
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	if len(seq) != 2 || seq[0].Rune != 'g' || seq[1].Rune != 'g' {
		t.Fatalf("unexpected sequence %+v", seq)
	}
}

func TestResolverMatchesSingleChordBinding(t *testing.T) {
	km := NewKeymap("test")
	km.Add("C-s", "file.save")
	r := NewResolver(km)

	outcome, cmd := r.Feed(ctrlRune('s'), Context{})
	if outcome != Matched {
		t.Fatalf("expected Matched, got %v", outcome)
	}
	if cmd.Name != "file.save" {
		t.Errorf("expected file.save, got %q", cmd.Name)
	}
}

func TestResolverChordSequenceRequiresBothKeys(t *testing.T) {
	km := NewKeymap("test")
	km.Add("g g", "cursor.documentStart")
	r := NewResolver(km)

	outcome, _ := r.Feed(plainRune('g'), Context{})
	if outcome != Pending {
		t.Fatalf("expected Pending after first chord, got %v", outcome)
	}

	outcome, cmd := r.Feed(plainRune('g'), Context{})
	if outcome != Matched {
		t.Fatalf("expected Matched after second chord, got %v", outcome)
	}
	if cmd.Name != "cursor.documentStart" {
		t.Errorf("expected cursor.documentStart, got %q", cmd.Name)
	}
}

func TestResolverDropsPendingPrefixOnTimeout(t *testing.T) {
	km := NewKeymap("test")
	km.Add("g g", "cursor.documentStart")
	r := NewResolver(km)
	r.SetTimeout(10 * time.Millisecond)

	fakeNow := time.Now()
	r.now = func() time.Time { return fakeNow }

	outcome, _ := r.Feed(plainRune('g'), Context{})
	if outcome != Pending {
		t.Fatalf("expected Pending, got %v", outcome)
	}

	fakeNow = fakeNow.Add(20 * time.Millisecond)
	outcome, _ = r.Feed(plainRune('g'), Context{})
	if outcome != Pending {
		t.Fatalf("expected the stale prefix to be dropped and a fresh Pending to start, got %v", outcome)
	}
}

func TestResolverNoMatchClearsPending(t *testing.T) {
	km := NewKeymap("test")
	km.Add("g g", "cursor.documentStart")
	r := NewResolver(km)

	r.Feed(plainRune('g'), Context{})
	outcome, _ := r.Feed(plainRune('z'), Context{})
	if outcome != NoMatch {
		t.Fatalf("expected NoMatch, got %v", outcome)
	}
	if len(r.pending) != 0 {
		t.Errorf("expected pending buffer cleared, got %v", r.pending)
	}
}

func TestResolverWhenConditionGatesBinding(t *testing.T) {
	km := NewKeymap("test")
	km.AddBinding(NewBinding("C-h", "search.openReplace").WithWhen("!editorReadonly"))
	r := NewResolver(km)

	ctx := Context{Conditions: map[string]bool{"editorReadonly": true}}
	outcome, _ := r.Feed(ctrlRune('h'), ctx)
	if outcome != NoMatch {
		t.Fatalf("expected the readonly condition to block the binding, got %v", outcome)
	}

	ctx = Context{Conditions: map[string]bool{"editorReadonly": false}}
	outcome, cmd := r.Feed(ctrlRune('h'), ctx)
	if outcome != Matched || cmd.Name != "search.openReplace" {
		t.Fatalf("expected the binding to match once not readonly, got %v %+v", outcome, cmd)
	}
}

func TestResolverLaterKeymapWinsOnTie(t *testing.T) {
	base := NewKeymap("base")
	base.Add("C-p", "file.open")
	override := NewKeymap("override")
	override.Add("C-p", "view.openCommandPalette")

	r := NewResolver(base)
	r.Use(override)

	_, cmd := r.Feed(ctrlRune('p'), Context{})
	if cmd.Name != "view.openCommandPalette" {
		t.Errorf("expected later-registered keymap to win, got %q", cmd.Name)
	}
}

func TestResolverModeScopedKeymapOnlyAppliesInMode(t *testing.T) {
	global := NewKeymap("global")
	global.Add("Enter", "editor.newline")
	palette := NewKeymap("palette").ForMode("palette")
	palette.Add("Enter", "palette.accept")

	r := NewResolver(global, palette)

	_, cmd := r.Feed(plainKey(gpu.KeyEnter), Context{Mode: "editor"})
	if cmd.Name != "editor.newline" {
		t.Errorf("expected editor.newline outside palette mode, got %q", cmd.Name)
	}

	_, cmd = r.Feed(plainKey(gpu.KeyEnter), Context{Mode: "palette"})
	if cmd.Name != "palette.accept" {
		t.Errorf("expected palette.accept in palette mode, got %q", cmd.Name)
	}
}

func TestDefaultKeymapResolvesSave(t *testing.T) {
	r := NewResolver(DefaultKeymap())
	outcome, cmd := r.Feed(ctrlRune('s'), Context{})
	if outcome != Matched || cmd.Name != "file.save" {
		t.Fatalf("expected file.save, got %v %+v", outcome, cmd)
	}
}
