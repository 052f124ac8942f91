package tagRender

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const page = `<html><head><title>T</title><style>p { color: red }</style></head>
<body>
<h1>Main  Title</h1>
<p>First
   paragraph with <a href="https://example.com/a">a link</a>.</p>
<ul>
  <li>one</li>
  <li><a href="/two">two</a></li>
</ul>
<div id="side"><h2>Side</h2><p>aside</p></div>
<script>var x = "<p>not rendered</p>";</script>
</body></html>`

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		selector string
		expected string
	}{
		{
			name:     "whole page",
			body:     page,
			expected: "Main Title\n==========\n\nFirst paragraph with a link .\nURL: https://example.com/a\n  - one\n  - two\nURL: /two\nSide\n====\n\naside\n",
		},
		{
			name:     "selector",
			body:     page,
			selector: "#side",
			expected: "Side\n====\n\naside\n",
		},
		{
			name:     "nested matches render once",
			body:     `<div><div><p>inner</p></div></div>`,
			selector: "div",
			expected: "\ninner\n",
		},
		{
			name:     "no tags",
			body:     "Hello, World!",
			expected: "",
		},
		{
			name:     "empty heading and paragraph",
			body:     "<h3> </h3><p></p><a>no href</a><a href=\"\">empty</a>",
			expected: "",
		},
		{
			name:     "heading underline counts runes",
			body:     "<h2>café</h2>",
			expected: "café\n====\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.body, tt.selector); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestRender_InvalidSelector(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, page, "div["); err == nil {
		t.Fatal("expected an error for a broken selector")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestCompileSelector(t *testing.T) {
	if _, err := CompileSelector("ul > li"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := CompileSelector(":::")
	if err == nil || !strings.Contains(err.Error(), `":::"`) {
		t.Errorf("expected error naming the selector, got %v", err)
	}
}

type recorder struct {
	events []string
}

func (r *recorder) Heading(level int, text string) {
	r.events = append(r.events, "h"+string(rune('0'+level))+":"+text)
}
func (r *recorder) Paragraph(text string) { r.events = append(r.events, "p:"+text) }
func (r *recorder) Anchor(href string)    { r.events = append(r.events, "a:"+href) }
func (r *recorder) ListItem(text string)  { r.events = append(r.events, "li:"+text) }

func TestWalk_Order(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<h6>six</h6><ol><li><p>x</p></li></ol><a href="u">u</a>`))
	if err != nil {
		t.Fatal(err)
	}
	r := &recorder{}
	Walk(doc, r)

	expected := []string{"h6:six", "li:x", "p:x", "a:u"}
	if strings.Join(r.events, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, r.events)
	}
}

func TestWalk_Nil(t *testing.T) {
	r := &recorder{}
	Walk(nil, r)
	if len(r.events) != 0 {
		t.Errorf("expected no events, got %v", r.events)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestRender_WriteError(t *testing.T) {
	if err := Render(failWriter{}, page, ""); err == nil {
		t.Fatal("expected the write error to surface")
	}
}

func TestPlainText(t *testing.T) {
	var buf bytes.Buffer
	if err := PlainText(&buf, page, ""); err != nil {
		t.Fatalf("PlainText failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Title", "aside", "https://example.com/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "not rendered") || strings.Contains(out, "color: red") {
		t.Errorf("expected script and style to be dropped, got %q", out)
	}
}

func TestPlainText_Selector(t *testing.T) {
	var buf bytes.Buffer
	if err := PlainText(&buf, page, "#side p"); err != nil {
		t.Fatalf("PlainText failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "aside" {
		t.Errorf("expected %q, got %q", "aside", buf.String())
	}
}
