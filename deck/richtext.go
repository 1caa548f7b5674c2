package deck

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
)

// FormatMarkdown marks string content as markdown source.
const FormatMarkdown = "markdown"

var htmlBlockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "hr": true,
}

var proseMirrorBlocks = map[string]bool{
	"paragraph": true, "heading": true, "blockquote": true, "listItem": true,
	"list_item": true, "codeBlock": true, "code_block": true, "bulletList": true,
	"orderedList": true, "taskItem": true, "horizontalRule": true,
}

// FlattenRichText turns rich content into plain text with one line per block.
// raw may be a plain string, an HTML string, a ProseMirror document, an array
// of any of these, or a scalar. String content is parsed as markdown when
// format is FormatMarkdown. The result is NFC normalized.
func FlattenRichText(raw json.RawMessage, format string) string {
	return norm.NFC.String(strings.TrimSpace(flattenValue(bytes.TrimSpace(raw), format)))
}

func flattenValue(raw []byte, format string) string {
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return FlattenString(s, format)
	case '{':
		var node proseMirrorNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return ""
		}
		if node.Type == "" && len(node.Content) == 0 {
			var t Text
			_ = t.UnmarshalJSON(raw)
			return FlattenString(string(t), format)
		}
		var b strings.Builder
		node.flatten(&b)
		return cleanLines(b.String())
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		lines := make([]string, 0, len(items))
		for _, item := range items {
			if s := flattenValue(bytes.TrimSpace(item), format); s != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	case 'n':
		return ""
	default:
		return string(raw)
	}
}

// FlattenString flattens string content: markdown when format says so, HTML
// when it looks like markup, otherwise the string itself.
func FlattenString(s, format string) string {
	switch {
	case strings.EqualFold(format, FormatMarkdown):
		return FlattenMarkdown(s)
	case looksLikeHTML(s):
		return FlattenHTML(s)
	}
	return s
}

func looksLikeHTML(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "<") && strings.Contains(t, ">")
}

// FlattenHTML strips markup, keeping block boundaries and <br> as newlines.
func FlattenHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	walkHTML(doc.Find("body"), &b)
	return cleanLines(b.String())
}

func walkHTML(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			b.WriteString(collapseSpace(child.Text()))
		case name == "br":
			b.WriteByte('\n')
		case name == "script" || name == "style":
		case htmlBlockElements[name]:
			b.WriteByte('\n')
			walkHTML(child, b)
			b.WriteByte('\n')
		case name == "td" || name == "th":
			walkHTML(child, b)
			b.WriteByte(' ')
		default:
			walkHTML(child, b)
		}
	})
}

// FlattenMarkdown renders markdown source as plain text.
func FlattenMarkdown(s string) string {
	src := []byte(s)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			switch {
			case node.HardLineBreak():
				b.WriteByte('\n')
			case node.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(src))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return cleanLines(b.String())
}

type proseMirrorNode struct {
	Type    string            `json:"type"`
	Text    string            `json:"text"`
	Content []proseMirrorNode `json:"content"`
}

func (n proseMirrorNode) flatten(b *strings.Builder) {
	switch n.Type {
	case "hardBreak", "hard_break":
		b.WriteByte('\n')
		return
	case "text", "":
		b.WriteString(n.Text)
	}
	block := proseMirrorBlocks[n.Type]
	if block {
		b.WriteByte('\n')
	}
	for _, c := range n.Content {
		c.flatten(b)
	}
	if block {
		b.WriteByte('\n')
	}
}

func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	lead := s[0] == ' ' || s[0] == '\n' || s[0] == '\t' || s[0] == '\r'
	last := s[len(s)-1]
	trail := last == ' ' || last == '\n' || last == '\t' || last == '\r'
	out := strings.Join(strings.Fields(s), " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

// cleanLines trims each line, collapses runs of blanks inside a line and drops
// empty lines.
func cleanLines(s string) string {
	parts := strings.Split(s, "\n")
	lines := parts[:0]
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n")
}
