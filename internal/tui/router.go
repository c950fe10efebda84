package tui

// ScreenStack is the App's navigation history. The login flow starts with a
// single entry; links push a screen that esc pops again, and a successful
// login replaces the whole history with the welcome route. Only the top
// screen receives input.
type ScreenStack struct {
	items []Screen
}

func (s *ScreenStack) Push(screen Screen) {
	if screen == nil {
		return
	}
	s.items = append(s.items, screen)
}

// Pop removes and returns the top screen, or nil on an empty history.
func (s *ScreenStack) Pop() Screen {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	top := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return top
}

// ReplaceTop swaps the top screen for next; nil keeps the current one.
func (s *ScreenStack) ReplaceTop(next Screen) {
	if next == nil || len(s.items) == 0 {
		return
	}
	s.items[len(s.items)-1] = next
}

// Top is the visible screen.
func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s ScreenStack) Len() int { return len(s.items) }
