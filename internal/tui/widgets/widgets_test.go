package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderPopupOverlaysWithoutDroppingBase(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := RenderPopup(base, "Popup", 20, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(out, "Popup") {
		t.Fatalf("expected popup content in output")
	}
	if !strings.Contains(lines[0], "row-0") {
		t.Fatalf("expected top base row preserved, got %q", lines[0])
	}
	if !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected bottom base row preserved, got %q", lines[8])
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 20 {
			t.Fatalf("line %d width %d exceeds canvas", i, w)
		}
	}
}

func TestRenderPopupEmptyCanvas(t *testing.T) {
	if out := RenderPopup("base", "popup", 0, 5); out != "" {
		t.Fatalf("expected empty output for zero width, got %q", out)
	}
}

func TestHStackFixedColumn(t *testing.T) {
	h := HStack{Widgets: []Widget{Text("nav"), Text("body")}, Fixed: []int{6, 0}, Gap: 1}
	out := h.Render(20, 1)
	if w := ansi.StringWidth(out); w != 20 {
		t.Fatalf("width = %d, want 20", w)
	}
	if !strings.HasPrefix(out, "nav    body") {
		t.Fatalf("unexpected layout %q", out)
	}
}

func TestVStackSpacingAndHeight(t *testing.T) {
	v := VStack{Widgets: []Widget{Text("top"), Text("bottom")}, Spacing: 1}
	out := v.Render(20, 7)
	if !strings.Contains(out, "top") || !strings.Contains(out, "bottom") {
		t.Fatalf("expected both widgets in output")
	}
	if n := len(strings.Split(out, "\n")); n != 7 {
		t.Fatalf("lines = %d, want 7", n)
	}
}

func TestPaneTitleAndSize(t *testing.T) {
	out := Pane{Title: "Loads", Content: "one\ntwo"}.Render(24, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if !strings.Contains(lines[0], "Loads") {
		t.Fatalf("title missing from border: %q", lines[0])
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 24 {
			t.Fatalf("line %d width = %d, want 24", i, w)
		}
	}
}

func TestFitHeight(t *testing.T) {
	if got := FitHeight("a\nb\nc", 2); got != "a\nb" {
		t.Fatalf("clip: %q", got)
	}
	if got := FitHeight("a", 3); got != "a\n\n" {
		t.Fatalf("pad: %q", got)
	}
}
