package mock

import "github.com/sitegrab/sitegrab"

var _ sitegrab.Document = (*Document)(nil)

// Document is a mock implementation of sitegrab.Document backed by plain
// field values, convenient for table tests.
type Document struct {
	TitleValue string
	HasTitle   bool
	TextValue  string
	LinkValues []string
	HTMLValue  string
}

func (d *Document) Title() (string, bool) {
	return d.TitleValue, d.HasTitle
}

func (d *Document) Text() string {
	return d.TextValue
}

func (d *Document) Links() []string {
	return d.LinkValues
}

func (d *Document) HTML() string {
	return d.HTMLValue
}

var _ sitegrab.Parser = (*Parser)(nil)

// Parser is a mock implementation of sitegrab.Parser.
type Parser struct {
	ParseFn func(body string) (sitegrab.Document, error)
}

func (p *Parser) Parse(body string) (sitegrab.Document, error) {
	return p.ParseFn(body)
}
