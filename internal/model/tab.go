package model

// Tab describes a browser tab as reported by the browser host.
type Tab struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// PageSnapshot is what the page snapshot provider extracts from a tab.
type PageSnapshot struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"` // truncated upstream to MaxContentLength
}

// FallbackSnapshot builds a snapshot from tab-level metadata only.
// Used when extraction from the page fails.
func FallbackSnapshot(tab Tab) PageSnapshot {
	return PageSnapshot{
		URL:   tab.URL,
		Title: tab.Title,
	}
}
