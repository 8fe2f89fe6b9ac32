package sitegrab

// Document is a parsed, navigable page.
type Document interface {
	// Title returns the page title. The bool is false when the page has
	// no title element.
	Title() (string, bool)

	// Text returns the visible text of the page. Script and style
	// content is excluded.
	Text() string

	// Links returns the raw href values of the page's anchor elements,
	// in document order. Values may be relative references.
	Links() []string

	// HTML returns the page's markup. Used by processors that need to
	// re-analyze the raw content.
	HTML() string
}

// Parser converts a fetched response body into a navigable Document.
type Parser interface {
	Parse(body string) (Document, error)
}
