package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Popup PopupConfig
	Input InputConfig
	Text  TextConfig
}

// PopupConfig holds popup frame configuration.
type PopupConfig struct {
	// Width is the preferred popup width in characters.
	Width int

	// MinWidth is the smallest usable width.
	MinWidth int

	// Margin is kept free on each side when the terminal is narrower than Width.
	Margin int

	// HeaderLines accounts for: title (1) + input (1) + spacing (1) + hints (2) = 5
	HeaderLines int

	// LinesPerResult is how many lines one search result takes.
	LinesPerResult int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit       int
	DescriptionCharLimit int
	TagCharLimit         int
	SearchCharLimit      int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Popup: PopupConfig{
			Width:          64,
			MinWidth:       30,
			Margin:         2,
			HeaderLines:    5,
			LinesPerResult: 2,
		},
		Input: InputConfig{
			TitleCharLimit:       100,
			DescriptionCharLimit: 1000,
			TagCharLimit:         50,
			SearchCharLimit:      200,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
