package browser

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// PageMeta is the head metadata of an HTML document.
type PageMeta struct {
	Title       string
	Description string
}

// ParseMeta reads <title> and the description meta tags from an HTML document.
// og:title and og:description are used when the plain tags are missing.
func ParseMeta(r io.Reader) (PageMeta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return PageMeta{}, err
	}

	var meta PageMeta
	var ogTitle, ogDescription string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "title":
				if meta.Title == "" {
					meta.Title = getTextContent(n)
				}
				return // Don't recurse into TITLE

			case "meta":
				content := strings.TrimSpace(getAttr(n, "content"))
				switch strings.ToLower(getAttr(n, "name")) {
				case "description":
					if meta.Description == "" {
						meta.Description = content
					}
				}
				switch strings.ToLower(getAttr(n, "property")) {
				case "og:title":
					ogTitle = content
				case "og:description":
					ogDescription = content
				}
				return

			case "body":
				// Head metadata only
				return
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	if meta.Title == "" {
		meta.Title = ogTitle
	}
	if meta.Description == "" {
		meta.Description = ogDescription
	}
	return meta, nil
}

// getTextContent returns the text content of a node, whitespace collapsed.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
