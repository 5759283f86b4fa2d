package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Pred matches an element node by tag name plus optional class token and
// attribute presence. The zero value matches every element.
type Pred struct {
	Tag     string
	Class   string // one token of the class list
	HasAttr string // attribute that must be present, any value
}

func (p Pred) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if p.Tag != "" && n.Data != p.Tag {
		return false
	}
	if p.Class != "" && !hasClass(n, p.Class) {
		return false
	}
	if p.HasAttr != "" {
		if _, ok := lookupAttr(n, p.HasAttr); !ok {
			return false
		}
	}
	return true
}

// Text concatenates all text nodes under node.
func Text(node *html.Node) string {
	var buffer bytes.Buffer
	textRecursive(node, &buffer)
	return buffer.String()
}

func textRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		textRecursive(child, buffer)
	}
}

// TrimmedText is Text with surrounding whitespace removed.
func TrimmedText(node *html.Node) string {
	return strings.TrimSpace(Text(node))
}

// NextSiblingText returns the trimmed content of the node's immediate next
// sibling when that sibling is a text node, and "" otherwise. Nutrition pages
// put values in bare text right after their label elements.
func NextSiblingText(node *html.Node) string {
	if node == nil || node.NextSibling == nil || node.NextSibling.Type != html.TextNode {
		return ""
	}
	return strings.TrimSpace(node.NextSibling.Data)
}

// Attr returns the value of the named attribute, or "".
func Attr(node *html.Node, key string) string {
	val, _ := lookupAttr(node, key)
	return val
}

// Find returns the first descendant of root matching p, in document order, or
// nil.
func Find(root *html.Node, p Pred) *html.Node {
	if root == nil {
		return nil
	}
	for n := root.FirstChild; n != nil; {
		if p.Match(n) {
			return n
		}
		n = successorWithin(n, root)
	}
	return nil
}

// FindAll returns every descendant of root matching p, in document order.
func FindAll(root *html.Node, p Pred) []*html.Node {
	var out []*html.Node
	if root == nil {
		return out
	}
	for n := root.FirstChild; n != nil; n = successorWithin(n, root) {
		if p.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Next returns the first node after n in document order that matches p,
// descending into n's own subtree first, or nil when the document is
// exhausted. This is the cursor primitive the flat hours-table walk relies
// on: it crosses subtree boundaries instead of stopping at siblings.
func Next(n *html.Node, p Pred) *html.Node {
	for cur := successor(n); cur != nil; cur = successor(cur) {
		if p.Match(cur) {
			return cur
		}
	}
	return nil
}

// successor is the document-order successor: first child if any, otherwise
// the next sibling of the nearest ancestor that has one.
func successor(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// successorWithin walks like successor but never escapes the given root.
func successorWithin(n, root *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil && n != root {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	val, ok := lookupAttr(n, "class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(val) {
		if token == class {
			return true
		}
	}
	return false
}
