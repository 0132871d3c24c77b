package text

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlainText renders markdown to its visible text, one block per line.
func PlainText(markdown string) string {
	source := []byte(markdown)

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var sb strings.Builder

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				sb.WriteString("\n")
			}

			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))

			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteString("\n")
			}

		case *ast.String:
			sb.Write(node.Value)

		case *ast.AutoLink:
			sb.Write(node.Label(source))
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()

			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				sb.Write(segment.Value(source))
			}

			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return collapse(sb.String())
}

func collapse(s string) string {
	var lines []string

	for line := range strings.SplitSeq(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")

		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
