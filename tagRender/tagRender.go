package tagRender

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"jaytaylor.com/html2text"
)

// Visitor receives the tags the transcript cares about, in document order.
type Visitor interface {
	Heading(level int, text string)
	Paragraph(text string)
	Anchor(href string)
	ListItem(text string)
}

// CompileSelector checks a CSS selector up front so a typo is reported
// before anything is fetched.
func CompileSelector(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel, nil
}

// Walk visits node and every descendant. Matched tags are still descended
// into, so a link inside a list item yields both the item and its URL.
func Walk(node *html.Node, v Visitor) {
	if node == nil {
		return
	}

	if node.Type == html.ElementNode {
		switch node.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			v.Heading(int(node.Data[1]-'0'), collapsedText(node))
		case "p":
			v.Paragraph(collapsedText(node))
		case "a":
			for _, attr := range node.Attr {
				if attr.Key == "href" && attr.Val != "" {
					v.Anchor(attr.Val)
					break
				}
			}
		case "li":
			v.ListItem(collapsedText(node))
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		Walk(child, v)
	}
}

// Render writes the tag transcript of body. An empty selector renders the
// whole document.
func Render(w io.Writer, body string, selector string) error {
	roots, err := parse(body, selector)
	if err != nil {
		return err
	}
	t := &transcript{w: w}
	for _, root := range roots {
		Walk(root, t)
	}
	return t.err
}

// PlainText writes body converted to readable text, tables and all.
func PlainText(w io.Writer, body string, selector string) error {
	roots, err := parse(body, selector)
	if err != nil {
		return err
	}
	var parts []string
	for _, root := range roots {
		text, err := html2text.FromHTMLNode(root, html2text.Options{PrettyTables: true})
		if err != nil {
			return err
		}
		parts = append(parts, text)
	}
	_, err = fmt.Fprintln(w, strings.Join(parts, "\n\n"))
	return err
}

func parse(body string, selector string) ([]*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if selector == "" {
		return []*html.Node{doc}, nil
	}

	sel, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	matched := goquery.NewDocumentFromNode(doc).FindMatcher(sel).Nodes
	return outermost(matched), nil
}

// outermost drops matches nested inside another match so nothing is
// rendered twice.
func outermost(nodes []*html.Node) []*html.Node {
	seen := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		seen[n] = true
	}
	var roots []*html.Node
	for _, n := range nodes {
		nested := false
		for p := n.Parent; p != nil; p = p.Parent {
			if seen[p] {
				nested = true
				break
			}
		}
		if !nested {
			roots = append(roots, n)
		}
	}
	return roots
}

func collapsedText(node *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(node)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// transcript prints what Walk finds and keeps the first write error.
type transcript struct {
	w   io.Writer
	err error
}

func (t *transcript) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *transcript) Heading(level int, text string) {
	if text == "" {
		return
	}
	t.printf("%s\n%s\n", text, strings.Repeat("=", utf8.RuneCountInString(text)))
}

func (t *transcript) Paragraph(text string) {
	if text == "" {
		return
	}
	t.printf("\n%s\n", text)
}

func (t *transcript) Anchor(href string) {
	t.printf("URL: %s\n", href)
}

func (t *transcript) ListItem(text string) {
	t.printf("  - %s\n", text)
}
