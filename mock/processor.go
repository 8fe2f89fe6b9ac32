package mock

import "github.com/sitegrab/sitegrab"

var _ sitegrab.Processor = (*Processor)(nil)

// Processor is a mock implementation of sitegrab.Processor.
type Processor struct {
	ProcessFn func(url string, doc sitegrab.Document) (*sitegrab.Result, error)
}

func (p *Processor) Process(url string, doc sitegrab.Document) (*sitegrab.Result, error) {
	return p.ProcessFn(url, doc)
}

var _ sitegrab.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitegrab.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(doc sitegrab.Document, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(doc sitegrab.Document, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(doc, baseURL)
}
