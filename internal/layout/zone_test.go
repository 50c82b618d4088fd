package layout

import "testing"

func TestComputeZonesStandardLayout(t *testing.T) {
	zs := ComputeZones(Size{W: 1600, H: 900}, PanelFlags{ShowSidebar: true}, ModeStandard)

	activity := zs.Rect(ZoneActivityBar)
	if activity.X != 0 || activity.W != DefaultActivityBarWidth {
		t.Errorf("expected activity bar pinned to left edge, got %+v", activity)
	}

	sidebar := zs.Rect(ZoneSidebar)
	if sidebar.X != activity.W {
		t.Errorf("expected sidebar to start after activity bar, got %+v", sidebar)
	}

	status := zs.Rect(ZoneStatusBar)
	if status.Y+status.H != 900 {
		t.Errorf("expected status bar pinned to bottom edge, got %+v", status)
	}

	editor := zs.Rect(ZoneEditor)
	if editor.W < MinEditorWidth {
		t.Errorf("expected editor width >= %d, got %d", MinEditorWidth, editor.W)
	}

	gutter := zs.Rect(ZoneGutter)
	scrollbar := zs.Rect(ZoneScrollbar)
	if gutter.X+gutter.W != editor.X {
		t.Errorf("expected gutter directly left of editor: gutter=%+v editor=%+v", gutter, editor)
	}
	if scrollbar.X != editor.X+editor.W {
		t.Errorf("expected scrollbar directly right of editor: scrollbar=%+v editor=%+v", scrollbar, editor)
	}
}

func TestComputeZonesHidesPanelsWhenTooNarrow(t *testing.T) {
	zs := ComputeZones(Size{W: 400, H: 600}, PanelFlags{ShowSidebar: true, ShowRightPanel: true}, ModeStandard)

	if zs.IsVisible(ZoneRightPanel) {
		t.Error("expected right panel hidden under width pressure")
	}
	editor := zs.Rect(ZoneEditor)
	if editor.W < MinEditorWidth {
		t.Errorf("editor zone still under MinEditorWidth after hiding panels: %+v", editor)
	}
}

func TestComputeZonesZenModeHidesChrome(t *testing.T) {
	zs := ComputeZones(Size{W: 1600, H: 900}, PanelFlags{}, ModeZen)

	for _, z := range []Zone{ZoneActivityBar, ZoneStatusBar, ZoneTabBar, ZoneBreadcrumb} {
		if zs.IsVisible(z) {
			t.Errorf("expected %s hidden in zen mode", z)
		}
	}

	editor := zs.Rect(ZoneEditor)
	if editor.W > 900 {
		t.Errorf("expected zen mode to cap editor width at 900, got %d", editor.W)
	}
}

func TestComputeZonesSpatialStability(t *testing.T) {
	flags := PanelFlags{ShowSidebar: true}
	a := ComputeZones(Size{W: 1600, H: 900}, flags, ModeStandard)
	b := ComputeZones(Size{W: 1600, H: 900}, flags, ModeStandard)

	for _, z := range []Zone{ZoneActivityBar, ZoneSidebar, ZoneEditor, ZoneStatusBar, ZoneGutter} {
		if a.Rect(z) != b.Rect(z) {
			t.Errorf("zone %s not stable across identical recompute: %+v vs %+v", z, a.Rect(z), b.Rect(z))
		}
	}
}

func TestComputeZonesNoOverlap(t *testing.T) {
	zs := ComputeZones(Size{W: 1600, H: 900}, PanelFlags{ShowSidebar: true, ShowBottomPanel: true, ShowRightPanel: true}, ModeStandard)

	editor := zs.Rect(ZoneEditor)
	sidebar := zs.Rect(ZoneSidebar)
	if sidebar.X+sidebar.W > editor.X {
		t.Errorf("sidebar overlaps editor: sidebar=%+v editor=%+v", sidebar, editor)
	}
	bottom := zs.Rect(ZoneBottomPanel)
	if bottom.Y < editor.Y+editor.H {
		t.Errorf("bottom panel overlaps editor vertically: bottom=%+v editor=%+v", bottom, editor)
	}
}

func TestModePresetFlags(t *testing.T) {
	if !Preset(ModeZen).Animations {
		t.Error("expected zen mode to keep animations on per preset")
	}
	if Preset(ModePerformance).Animations {
		t.Error("expected performance mode to disable animations")
	}
	if Preset(ModeZen).ShowActivityBar {
		t.Error("expected zen mode to hide activity bar")
	}
}
