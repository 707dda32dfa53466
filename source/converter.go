package source

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// Converter turns HTML reference pages into GitHub-flavored markdown so that
// their tables come out as pipe-tables.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a new HTML to markdown converter.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Converter{converter: converter}
}

// Convert transforms HTML content to markdown, keeping only the main content
// area when the page has one.
func (c *Converter) Convert(htmlContent []byte) (string, error) {
	markdown, err := c.converter.ConvertString(extractMainContent(htmlContent))
	if err != nil {
		return "", err
	}
	return cleanMarkdown(markdown), nil
}

// extractMainContent returns the first main, article or body element, or the
// input unchanged if none parses.
func extractMainContent(content []byte) string {
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return string(content)
	}

	for _, tag := range []string{"main", "article", "body"} {
		if node := findElement(doc, tag); node != nil {
			return renderNode(node)
		}
	}
	return string(content)
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// renderNode renders a node and its children back to HTML string.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

// cleanMarkdown collapses runs of blank lines and trailing spaces.
func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}
