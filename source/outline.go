package source

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Outline summarises the markdown structure of a document as a GFM parser
// sees it. The vocabulary parsers do not use it; it exists so that a
// document whose tables parse poorly can be diagnosed.
type Outline struct {
	Tables   int      `json:"tables"`
	Rows     int      `json:"rows"`
	Headings []string `json:"headings"`
}

var outlineParser = goldmark.New(goldmark.WithExtensions(extension.Table))

// OutlineOf parses content as GitHub-flavored markdown and counts its tables,
// table body rows and headings.
func OutlineOf(content []byte) Outline {
	root := outlineParser.Parser().Parse(text.NewReader(content))

	var out Outline
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *east.Table:
			out.Tables++
		case *east.TableRow:
			out.Rows++
		case *ast.Heading:
			out.Headings = append(out.Headings, string(node.Text(content)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}
