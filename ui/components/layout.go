package components

// SideBySideWidth is the terminal width from which the notes and analysis
// panels are placed next to each other.
const SideBySideWidth = 100

// Layout returns the outer width of each panel.
func Layout(width int) (panelWidth int, sideBySide bool) {
	if width <= 0 {
		width = 80
	}
	if width >= SideBySideWidth {
		return width / 2, true
	}
	return width, false
}

// ContentWidth is the usable width inside a panel of the given outer width.
func ContentWidth(panelWidth int) int {
	// border + padding on both sides
	w := panelWidth - 4
	if w < 10 {
		return 10
	}
	return w
}
