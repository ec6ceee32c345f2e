package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "Tab", "Enter")
	Desc string // Short description (e.g., "next", "save")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (Tab, arrows)
	Action []Hint // Action hints (Enter, ctrl+s)
	System []Hint // System hints (Esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func renderHint(styles Styles, h Hint) string {
	return styles.HintKey.Render(h.Key) + ":" + styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "Tab:next Enter:save Esc:close"
func renderHints(styles Styles, hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = renderHint(styles, h)
	}
	return strings.Join(parts, " ")
}

func setupHints() HintSet {
	return HintSet{
		Action: []Hint{
			{Key: "Enter", Desc: "open settings"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "close"},
		},
	}
}

// saveHints returns hints for the focused save form field.
func saveHints(focus saveFocus, hasLink bool) HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "Tab", Desc: "next"},
		},
		Action: []Hint{
			{Key: "ctrl+s", Desc: "save"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "close"},
		},
	}

	switch focus {
	case focusTags:
		hints.Action = append([]Hint{{Key: "Enter", Desc: "add tag"}}, hints.Action...)
	case focusChips:
		hints.Nav = append(hints.Nav, Hint{Key: "←/→", Desc: "move"})
		hints.Action = append([]Hint{{Key: "Space", Desc: "toggle"}}, hints.Action...)
	case focusSubmit:
		hints.Action = append([]Hint{{Key: "Enter", Desc: "save"}}, hints.Action[1:]...)
	}

	if hasLink {
		hints.Action = append(hints.Action, Hint{Key: "ctrl+o", Desc: "open link"})
	}
	return hints
}

func searchHints(hasItems bool) HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "move"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "close"},
		},
	}
	if hasItems {
		hints.Action = []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "ctrl+y", Desc: "copy URL"},
		}
	}
	return hints
}
