package tui

import tea "github.com/charmbracelet/bubbletea"

// Screen is a modal drawn over the body. Update reports pop=true to close.
type Screen interface {
	Update(msg tea.Msg) (next Screen, cmd tea.Cmd, pop bool)
	View(width, height int) string
	Scope() string
	Title() string
}

type ScreenStack struct {
	items []Screen
}

func (s *ScreenStack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.items = append(s.items, screen)
}

func (s *ScreenStack) Pop() Screen {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

// Replace swaps the top screen.
func (s *ScreenStack) Replace(screen Screen) {
	if len(s.items) == 0 || screen == nil {
		return
	}
	s.items[len(s.items)-1] = screen
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Contains reports whether screen is anywhere on the stack.
func (s ScreenStack) Contains(screen Screen) bool {
	for _, it := range s.items {
		if it == screen {
			return true
		}
	}
	return false
}

// Remove drops screen from the stack wherever it is.
func (s *ScreenStack) Remove(screen Screen) {
	out := s.items[:0]
	for _, it := range s.items {
		if it != screen {
			out = append(out, it)
		}
	}
	s.items = out
}
