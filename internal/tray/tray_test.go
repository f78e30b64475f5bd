package tray

import "testing"

func newTestTray(enabled bool) (*Tray, *int) {
	quits := 0
	tr := New(enabled)
	tr.quit = func() { quits++ }
	return tr, &quits
}

func TestTray_Toggle(t *testing.T) {
	tr, _ := newTestTray(true)

	var got []bool
	tr.OnToggle(func(enabled bool) { got = append(got, enabled) })

	tr.handleToggle()
	tr.handleToggle()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("toggle callbacks = %v, want [false true]", got)
	}
	if !tr.IsEnabled() {
		t.Error("IsEnabled() = false after two toggles")
	}
}

func TestTray_Reset(t *testing.T) {
	tr, quits := newTestTray(true)

	resets := 0
	tr.OnReset(func() { resets++ })
	tr.handleReset()

	if resets != 1 {
		t.Errorf("resets = %d, want 1", resets)
	}
	if *quits != 0 {
		t.Error("reset should not quit the tray")
	}
}

func TestTray_Quit(t *testing.T) {
	tr, quits := newTestTray(false)

	called := false
	tr.OnQuit(func() { called = true })
	tr.handleQuit()

	if !called {
		t.Error("quit callback not called")
	}
	if *quits != 1 {
		t.Errorf("tray quit calls = %d, want 1", *quits)
	}
}

func TestTray_NoCallbacks(t *testing.T) {
	tr, _ := newTestTray(true)

	// Menu items are nil before Run; handlers must still be safe.
	tr.handleToggle()
	tr.handleReset()
	tr.SetStatus("running")

	if tr.IsEnabled() {
		t.Error("IsEnabled() = true after toggle")
	}
}

func TestToggleTitle(t *testing.T) {
	if toggleTitle(true) == toggleTitle(false) {
		t.Error("toggle titles should differ by state")
	}
}
