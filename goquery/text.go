package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// invisibleSelector matches elements whose text is never rendered.
const invisibleSelector = `script, style, noscript, template, [hidden]`

// blockElements start and end a line when rendered.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Caption: true, atom.Dd: true, atom.Details: true, atom.Dialog: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Fieldset: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hgroup: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Summary: true, atom.Table: true, atom.Tbody: true,
	atom.Thead: true, atom.Tfoot: true, atom.Tr: true, atom.Ul: true,
}

// paragraphElements are separated from their neighbours by a blank line.
var paragraphElements = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Blockquote: true, atom.Pre: true,
	atom.Table: true, atom.Ul: true, atom.Ol: true,
}

// skippedElements never contribute text.
var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
	atom.Head: true, atom.Iframe: true, atom.Object: true,
}

// VisibleText approximates the rendered text of n the way a browser's
// innerText does: invisible subtrees are skipped, whitespace in normal flow
// collapses, block elements break lines, and <pre> keeps its formatting.
func VisibleText(n *html.Node) string {
	w := textWriter{last: '\n'}
	w.walk(n, false)
	return w.String()
}

// textWriter accumulates text with pending line breaks.
type textWriter struct {
	b      strings.Builder
	breaks int  // newlines owed before the next text
	last   rune // last byte written, or '\n' when empty
}

func (w *textWriter) lineBreak(n int) {
	if w.b.Len() == 0 {
		return
	}
	w.breaks = max(w.breaks, n)
}

// write appends s. Outside preformatted text, leading spaces at the start
// of a line or after a space are dropped.
func (w *textWriter) write(s string, pre bool) {
	if !pre && (w.breaks > 0 || strings.ContainsRune(" \t\n", w.last)) {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}
	if w.breaks > 0 {
		w.b.WriteString(strings.Repeat("\n", w.breaks))
		w.breaks = 0
	}
	w.b.WriteString(s)
	w.last = rune(s[len(s)-1])
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			w.write(n.Data, true)
		} else {
			w.write(collapseSpace(n.Data), false)
		}
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] || isHidden(n) {
			return
		}
		switch n.DataAtom {
		case atom.Br:
			w.b.WriteString("\n")
			w.last = '\n'
			w.breaks = 0
			return
		case atom.Td, atom.Th:
			if prevElement(n) != nil {
				w.write("\t", false)
			}
		}
		if n.DataAtom == atom.Pre {
			pre = true
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	breaks := 0
	if n.Type == html.ElementNode {
		if paragraphElements[n.DataAtom] {
			breaks = 2
		} else if blockElements[n.DataAtom] {
			breaks = 1
		}
	}
	w.lineBreak(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}
	w.lineBreak(breaks)
}

// String returns the accumulated text with line-level whitespace trimmed.
func (w *textWriter) String() string {
	lines := strings.Split(w.b.String(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.Trim(strings.Join(out, "\n"), "\n")
}

func prevElement(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// isHidden reports whether the element is hidden by attribute.
func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// collapseSpace replaces every whitespace run with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
				space = true
			}
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}
