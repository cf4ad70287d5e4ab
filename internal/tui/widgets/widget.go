// Package widgets holds width/height-aware rendering primitives: stacks, a
// titled pane and popup compositing.
package widgets

// Widget renders itself into a box of the given size.
type Widget interface {
	Render(width, height int) string
}

// Text is a widget that ignores its box and returns a fixed string.
type Text string

func (t Text) Render(int, int) string { return string(t) }

// Func adapts a render function.
type Func func(width, height int) string

func (f Func) Render(width, height int) string { return f(width, height) }
