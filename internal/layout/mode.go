package layout

// Mode names the six pre-defined layout-flag presets. Switching a
// mode only changes which fixed-position zones are shown/hidden and a
// couple of cosmetic toggles — no zone ever moves to a different edge
// because the mode changed.
type Mode uint8

const (
	ModeStandard Mode = iota
	ModeFocus
	ModePerformance
	ModeDebug
	ModeZen
	ModeReview
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeFocus:
		return "focus"
	case ModePerformance:
		return "performance"
	case ModeDebug:
		return "debug"
	case ModeZen:
		return "zen"
	case ModeReview:
		return "review"
	default:
		return "unknown"
	}
}

// ModePreset is the set of layout flags a Mode fixes. PanelFlags
// (sidebar/bottom-panel/right-panel visibility) stays under the
// user's control independent of mode; ModePreset only governs the
// zones and cosmetics a mode switch is defined to touch.
type ModePreset struct {
	ShowActivityBar bool
	ShowStatusBar   bool
	ShowTabBar      bool
	ShowBreadcrumb  bool
	MaxEditorWidth  int // 0 means unconstrained
	Animations      bool
	CursorBlink     bool
}

// preset returns the fixed ModePreset for a Mode. Unknown values fall
// back to ModeStandard's preset.
func preset(m Mode) ModePreset {
	switch m {
	case ModeFocus:
		return ModePreset{
			ShowActivityBar: false,
			ShowStatusBar:   true,
			ShowTabBar:      true,
			ShowBreadcrumb:  false,
			Animations:      true,
			CursorBlink:     true,
		}
	case ModePerformance:
		return ModePreset{
			ShowActivityBar: true,
			ShowStatusBar:   true,
			ShowTabBar:      true,
			ShowBreadcrumb:  true,
			Animations:      false,
			CursorBlink:     false,
		}
	case ModeDebug:
		return ModePreset{
			ShowActivityBar: true,
			ShowStatusBar:   true,
			ShowTabBar:      true,
			ShowBreadcrumb:  true,
			Animations:      true,
			CursorBlink:     true,
		}
	case ModeZen:
		return ModePreset{
			ShowActivityBar: false,
			ShowStatusBar:   false,
			ShowTabBar:      false,
			ShowBreadcrumb:  false,
			MaxEditorWidth:  900,
			Animations:      true,
			CursorBlink:     true,
		}
	case ModeReview:
		return ModePreset{
			ShowActivityBar: true,
			ShowStatusBar:   true,
			ShowTabBar:      true,
			ShowBreadcrumb:  true,
			Animations:      true,
			CursorBlink:     false,
		}
	case ModeStandard:
		fallthrough
	default:
		return ModePreset{
			ShowActivityBar: true,
			ShowStatusBar:   true,
			ShowTabBar:      true,
			ShowBreadcrumb:  true,
			Animations:      true,
			CursorBlink:     true,
		}
	}
}

// Preset exposes a Mode's flag preset for callers that need it without
// going through ComputeZones (e.g. to drive cursor-blink timers or
// animation toggles in the render loop).
func Preset(m Mode) ModePreset {
	return preset(m)
}
