// Package layout computes the editor window's non-overlapping
// rectangular zones (activity bar, sidebar, tab bar, breadcrumb,
// gutter, editor, scrollbar, bottom panel, status bar, optional right
// panel) from a window size, a set of panel visibility flags, and a
// named UI mode, and keeps zone positions stable across unrelated
// state changes.
package layout

// Zone names the fixed set of rectangular regions the window is
// partitioned into.
type Zone uint8

const (
	ZoneActivityBar Zone = iota
	ZoneSidebar
	ZoneTabBar
	ZoneBreadcrumb
	ZoneGutter
	ZoneEditor
	ZoneScrollbar
	ZoneBottomPanel
	ZoneStatusBar
	ZoneRightPanel
)

func (z Zone) String() string {
	switch z {
	case ZoneActivityBar:
		return "activity-bar"
	case ZoneSidebar:
		return "sidebar"
	case ZoneTabBar:
		return "tab-bar"
	case ZoneBreadcrumb:
		return "breadcrumb"
	case ZoneGutter:
		return "gutter"
	case ZoneEditor:
		return "editor"
	case ZoneScrollbar:
		return "scrollbar"
	case ZoneBottomPanel:
		return "bottom-panel"
	case ZoneStatusBar:
		return "status-bar"
	case ZoneRightPanel:
		return "right-panel"
	default:
		return "unknown"
	}
}

// Rect is a pixel-addressed, top-left-origin rectangle. Unlike
// internal/gpu's Rect, this one carries no color — it is pure
// geometry, shared between layout math and whichever package turns a
// Zone's Rect into paint primitives.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) falls within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Size holds a window's pixel dimensions.
type Size struct {
	W, H int
}

// PanelFlags records which optional panels/zones are currently shown.
// Zones not covered by a flag (activity bar, status bar, gutter,
// scrollbar, tab bar, breadcrumb) are governed purely by the active
// Mode's preset.
type PanelFlags struct {
	ShowSidebar     bool
	ShowBottomPanel bool
	ShowRightPanel  bool
	SidebarWidth    int // pixels; 0 selects DefaultSidebarWidth
	BottomHeight    int // pixels; 0 selects DefaultBottomHeight
	RightWidth      int // pixels; 0 selects DefaultSidebarWidth
}

// Default zone dimensions, in pixels, used when a PanelFlags field
// leaves a size unspecified.
const (
	DefaultActivityBarWidth = 48
	DefaultSidebarWidth     = 280
	DefaultTabBarHeight     = 32
	DefaultBreadcrumbHeight = 24
	DefaultGutterWidth      = 56
	DefaultScrollbarWidth   = 14
	DefaultBottomHeight     = 220
	DefaultStatusBarHeight  = 24

	// MinEditorWidth is the smallest the editor zone is ever allowed to
	// shrink to; ComputeZones hides the right panel, then the sidebar,
	// until this is satisfied rather than ever shrinking the editor
	// zone further.
	MinEditorWidth = 200
)

// ZoneSet is the result of computing zones for one frame: every shown
// Zone's Rect, plus which zones are hidden, whether by the panel
// flags, by the mode's preset, or because the window was too small to
// fit everything the flags asked for.
type ZoneSet struct {
	Rects  map[Zone]Rect
	Hidden map[Zone]bool
}

// Rect returns the zone's rectangle, or the zero Rect if the zone is
// hidden (Hidden[zone] is true) or unknown.
func (z ZoneSet) Rect(zone Zone) Rect {
	return z.Rects[zone]
}

// IsVisible reports whether zone occupies non-zero screen space.
func (z ZoneSet) IsVisible(zone Zone) bool {
	return !z.Hidden[zone]
}

// ComputeZones partitions a window of the given size into Zones,
// honoring panel flags and the active mode's preset, and enforcing
// MinEditorWidth by hiding optional panels (right panel first, then
// sidebar) until the editor zone fits; the bottom panel is hidden only
// when the window height would leave the editor no row. Zone
// positions are deterministic functions of (size, flags, mode) only —
// no hidden state carries over between calls — which is what gives
// callers spatial stability: an unrelated state change that doesn't
// touch size/flags/mode recomputes to the identical ZoneSet.
func ComputeZones(size Size, flags PanelFlags, mode Mode) ZoneSet {
	preset := preset(mode)

	rects := make(map[Zone]Rect, 10)
	hidden := make(map[Zone]bool, 4)

	sidebarW := orDefault(flags.SidebarWidth, DefaultSidebarWidth)
	bottomH := orDefault(flags.BottomHeight, DefaultBottomHeight)
	rightW := orDefault(flags.RightWidth, DefaultSidebarWidth)
	if flags.RightWidth != 0 {
		rightW = flags.RightWidth
	}

	showSidebar := flags.ShowSidebar
	showBottom := flags.ShowBottomPanel
	showRight := flags.ShowRightPanel

	activityW := 0
	if preset.ShowActivityBar {
		activityW = DefaultActivityBarWidth
	}

	// Hide optional panels, right panel first, then sidebar, until the
	// editor's remaining width clears MinEditorWidth. Vertical panels
	// (bottom) don't compete for width so they're considered after.
	fits := func() bool {
		used := activityW + DefaultGutterWidth + DefaultScrollbarWidth
		if showSidebar {
			used += sidebarW
		}
		if showRight {
			used += rightW
		}
		return size.W-used >= MinEditorWidth
	}
	for !fits() {
		if showRight {
			showRight = false
			hidden[ZoneRightPanel] = true
			continue
		}
		if showSidebar {
			showSidebar = false
			hidden[ZoneSidebar] = true
			continue
		}
		// Nothing left to hide; the editor zone is clamped to zero below
		// rather than going negative.
		break
	}

	statusH := 0
	if preset.ShowStatusBar {
		statusH = DefaultStatusBarHeight
	}
	tabH := 0
	if preset.ShowTabBar {
		tabH = DefaultTabBarHeight
	}
	breadcrumbH := 0
	if preset.ShowBreadcrumb {
		breadcrumbH = DefaultBreadcrumbHeight
	}

	for size.H-(tabH+breadcrumbH+statusH+boolToInt(showBottom)*bottomH) < 1 && showBottom {
		showBottom = false
		hidden[ZoneBottomPanel] = true
	}

	x := 0
	if preset.ShowActivityBar {
		rects[ZoneActivityBar] = Rect{X: 0, Y: 0, W: activityW, H: size.H}
		x = activityW
	} else {
		hidden[ZoneActivityBar] = true
	}

	if showSidebar {
		rects[ZoneSidebar] = Rect{X: x, Y: 0, W: sidebarW, H: size.H}
		x += sidebarW
	} else {
		hidden[ZoneSidebar] = true
	}

	rightX := size.W
	if showRight {
		rightX = size.W - rightW
		rects[ZoneRightPanel] = Rect{X: rightX, Y: 0, W: rightW, H: size.H}
	} else {
		hidden[ZoneRightPanel] = true
	}

	contentW := rightX - x
	if contentW < 0 {
		contentW = 0
	}

	y := 0
	if preset.ShowTabBar {
		rects[ZoneTabBar] = Rect{X: x, Y: y, W: contentW, H: tabH}
		y += tabH
	} else {
		hidden[ZoneTabBar] = true
	}
	if preset.ShowBreadcrumb {
		rects[ZoneBreadcrumb] = Rect{X: x, Y: y, W: contentW, H: breadcrumbH}
		y += breadcrumbH
	} else {
		hidden[ZoneBreadcrumb] = true
	}

	bottomY := size.H
	if preset.ShowStatusBar {
		bottomY -= statusH
		rects[ZoneStatusBar] = Rect{X: 0, Y: bottomY, W: size.W, H: statusH}
	} else {
		hidden[ZoneStatusBar] = true
	}
	if showBottom {
		bottomY -= bottomH
		rects[ZoneBottomPanel] = Rect{X: x, Y: bottomY, W: contentW, H: bottomH}
	} else {
		hidden[ZoneBottomPanel] = true
	}

	editorH := bottomY - y
	if editorH < 0 {
		editorH = 0
	}

	gutterX := x
	editorW := contentW - DefaultGutterWidth - DefaultScrollbarWidth
	if editorW < 0 {
		editorW = 0
	}
	// A mode's MaxEditorWidth (zen mode) centers the gutter/editor/
	// scrollbar block within the content column instead of letting the
	// editor stretch to fill it.
	if preset.MaxEditorWidth > 0 && editorW > preset.MaxEditorWidth {
		slack := editorW - preset.MaxEditorWidth
		gutterX = x + slack/2
		editorW = preset.MaxEditorWidth
	}

	rects[ZoneGutter] = Rect{X: gutterX, Y: y, W: DefaultGutterWidth, H: editorH}
	editorX := gutterX + DefaultGutterWidth
	rects[ZoneEditor] = Rect{X: editorX, Y: y, W: editorW, H: editorH}
	rects[ZoneScrollbar] = Rect{X: editorX + editorW, Y: y, W: DefaultScrollbarWidth, H: editorH}

	return ZoneSet{Rects: rects, Hidden: hidden}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
