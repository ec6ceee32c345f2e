package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the popup.
type Styles struct {
	App            lipgloss.Style
	Title          lipgloss.Style
	Label          lipgloss.Style
	LabelActive    lipgloss.Style
	URL            lipgloss.Style
	Chip           lipgloss.Style
	ChipSelected   lipgloss.Style
	ChipCursor     lipgloss.Style
	ChipMatch      lipgloss.Style
	Button         lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonDisabled lipgloss.Style
	Item           lipgloss.Style
	ItemSelected   lipgloss.Style
	Tag            lipgloss.Style
	Date           lipgloss.Style
	Empty          lipgloss.Style
	Success        lipgloss.Style
	Info           lipgloss.Style
	Error          lipgloss.Style
	Link           lipgloss.Style
	HintKey        lipgloss.Style // Key portion of hints (e.g., "Enter", "Tab")
	HintDesc       lipgloss.Style // Description portion of hints (e.g., "save", "next")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Label: lipgloss.NewStyle().
			Foreground(subtle),

		LabelActive: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Chip: lipgloss.NewStyle().
			Foreground(primary),

		ChipSelected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		ChipCursor: lipgloss.NewStyle().
			Reverse(true),

		ChipMatch: lipgloss.NewStyle().
			Underline(true),

		Button: lipgloss.NewStyle().
			Foreground(primary),

		ButtonActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(subtle).
			Faint(true),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		Link: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
