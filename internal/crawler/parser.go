package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts the text body and outbound links from HTML content.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. Standard library extension, well-maintained
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative links.
	baseURL *url.URL
}

// ParseResult contains the information extracted from an HTML page.
// A single parsing pass collects everything the crawler and the analyzer
// need: the title, the visible text, and the outbound links.
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Text is the visible text content with markup, scripts, and styles
	// removed and whitespace collapsed.
	Text string

	// Links contains discovered absolute http(s) URLs in document order,
	// fragments stripped, duplicates removed.
	Links []string
}

// NewParser creates an HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse parses HTML content and extracts the title, text, and links.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Links: make([]string, 0)}

	var text strings.Builder
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				// Nothing inside these contributes to visible text.
				return
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case "a":
				if href := getAttr(n, "href"); href != "" {
					if resolved := p.resolveLink(href); resolved != "" && !seen[resolved] {
						seen[resolved] = true
						result.Links = append(result.Links, resolved)
					}
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	// Collapse runs of whitespace left behind by markup boundaries.
	result.Text = strings.Join(strings.Fields(text.String()), " ")

	return result, nil
}

// resolveLink resolves an href against the base URL and returns an absolute
// http(s) URL with the fragment stripped, or "" when the link is not
// crawlable (javascript:, mailto:, anchors, malformed URLs).
//
// Design decision: We resolve URLs rather than storing them as-is because:
//  1. Makes deduplication easier
//  2. Allows the link policy to compare hosts reliably
func (p *Parser) resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}

	// Fragments identify positions within the same content.
	resolved.Fragment = ""

	return resolved.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
