// File: internal/services/speech/normalize.go
package speech

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	rePunctRun   = regexp.MustCompile(`([.!?])(?:\s*[.!?])+`)
	reSpaceDot   = regexp.MustCompile(`\s+([.!?,])`)
)

// Normalize strips markdown syntax from message content so it reads well
// aloud: heading, emphasis and quote markers disappear, code spans and
// fenced blocks unwrap to their inner text, links keep their text and lose
// the URL, and structural breaks (list items, paragraphs, line breaks)
// become sentence-pause periods. Repeated punctuation is collapsed.
func Normalize(content string) string {
	source := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteString(". ")
				}
			}

		case *ast.String:
			if entering {
				b.Write(node.Value)
			}

		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(source))
			}

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					b.Write(seg.Value(source))
					b.WriteString(" ")
				}
				b.WriteString(". ")
			}
			return ast.WalkSkipChildren, nil

		case *ast.Image:
			// Drop images entirely; there is nothing to read aloud.
			if entering {
				return ast.WalkSkipChildren, nil
			}

		case *ast.ThematicBreak:
			if entering {
				b.WriteString(". ")
			}

		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.TextBlock, *ast.Blockquote:
			if !entering {
				b.WriteString(". ")
			}
		}
		return ast.WalkContinue, nil
	})

	return cleanup(b.String())
}

func cleanup(s string) string {
	s = reWhitespace.ReplaceAllString(s, " ")
	s = reSpaceDot.ReplaceAllString(s, "$1")
	s = rePunctRun.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, ".!? ")
	return s
}
