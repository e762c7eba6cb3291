package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meeran-official/news-analyzer/internal/orchestrator"
	"github.com/meeran-official/news-analyzer/internal/prefs"
)

func TestDebugOverlayRendersState(t *testing.T) {
	p := prefs.New(prefs.NewMemoryStorage())
	p.Load(nil)
	orch := orchestrator.New(context.Background(), &fakeGateway{}, p, orchestrator.DefaultPolicy())

	result := debugOverlay(NewStyles(prefs.Dark), orch, p.Snapshot(), 80, 40)

	for _, want := range []string{"Requests", "Phase:        idle", "Dropped:      0 triggers", "not loaded", "Preferences", "English"} {
		if !strings.Contains(result, want) {
			t.Errorf("overlay should contain %q", want)
		}
	}
}

func TestDebugOverlayTruncatesToHeight(t *testing.T) {
	p := prefs.New(prefs.NewMemoryStorage())
	orch := orchestrator.New(context.Background(), &fakeGateway{}, p, orchestrator.DefaultPolicy())

	result := debugOverlay(NewStyles(prefs.Light), orch, p.Snapshot(), 80, 10)
	lines := strings.Split(result, "\n")
	if len(lines) > 10 {
		t.Errorf("overlay should fit in 10 lines, got %d", len(lines))
	}
}

func TestDebugOverlayCountsDroppedTriggers(t *testing.T) {
	app := started(t, &fakeGateway{}, prefs.NewMemoryStorage())

	// Start a request and hit analyze-by-suggestion while it is in flight.
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = model.(App)
	for _, msg := range runCmd(cmd) {
		model, _ = app.Update(msg) // debounce tick: fetch starts, guard taken
		app = model.(App)
	}
	if !app.Orchestrator().Loading() {
		t.Fatal("random flow should be loading")
	}
	app = send(app, keyRunes("1"))
	app = send(app, keyRunes("?"))

	view := app.View()
	if !strings.Contains(view, "Dropped:      1 triggers") {
		t.Error("debug overlay should show the dropped trigger")
	}
	if !strings.Contains(view, "Recent") || !strings.Contains(view, "request.dropped") {
		t.Error("debug overlay should list recent request events")
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 5, "trun…"},
		{"தமிழ் செய்தி", 4, "தமி…"},
		{"ab", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
