// Package goquery provides the goquery-backed implementation of
// sitegrab.Parser and sitegrab.Document.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitegrab/sitegrab"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ sitegrab.Parser   = (*Parser)(nil)
	_ sitegrab.Document = (*Document)(nil)
)

// Parser parses response bodies into navigable documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a response body into a Document.
func (p *Parser) Parse(body string) (sitegrab.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, sitegrab.Errorf(sitegrab.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc, raw: body}, nil
}

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
	raw string
}

// Title returns the text of the page's title element.
// The bool is false when the page has no title element.
func (d *Document) Title() (string, bool) {
	sel := d.doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// Text returns the page's visible text with whitespace collapsed to single
// spaces. Script, style, noscript, template, and title content is excluded.
func (d *Document) Text() string {
	var b strings.Builder
	for _, node := range d.doc.Selection.Nodes {
		visibleText(node, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Links returns the raw href values of the page's anchor elements in
// document order. Values may be relative references.
func (d *Document) Links() []string {
	var hrefs []string
	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// HTML returns the original markup the document was parsed from.
func (d *Document) HTML() string {
	return d.raw
}

// visibleText walks the node tree collecting text, skipping elements whose
// content a browser never renders.
func visibleText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template", "title":
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visibleText(c, b)
	}
}
