package layout

// CalculatePopupWidth fits the popup into the terminal.
// Uses cfg.Width when there is room, otherwise the terminal width minus the
// margins, never below 1.
func CalculatePopupWidth(terminalWidth int, cfg PopupConfig) int {
	width := cfg.Width
	if width > terminalWidth-2*cfg.Margin {
		width = terminalWidth - 2*cfg.Margin
	}
	if width < cfg.MinWidth && terminalWidth >= cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width < 1 {
		return 1
	}
	return width
}

// CalculateVisibleResults computes how many results fit below the header.
// Returns at least 1.
func CalculateVisibleResults(terminalHeight int, cfg PopupConfig) int {
	lines := cfg.LinesPerResult
	if lines < 1 {
		lines = 1
	}
	n := (terminalHeight - cfg.HeaderLines) / lines
	if n < 1 {
		return 1
	}
	return n
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}

// WrapChips joins rendered chips into lines no wider than width.
// A chip wider than width gets a line of its own.
func WrapChips(chips []string, width int, sep string) []string {
	var lines []string
	var line string
	lineLen := 0
	sepLen := VisibleLength(sep)

	for _, chip := range chips {
		chipLen := VisibleLength(chip)
		if lineLen > 0 && lineLen+sepLen+chipLen > width {
			lines = append(lines, line)
			line, lineLen = "", 0
		}
		if lineLen > 0 {
			line += sep
			lineLen += sepLen
		}
		line += chip
		lineLen += chipLen
	}
	if lineLen > 0 {
		lines = append(lines, line)
	}
	return lines
}
