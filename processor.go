package sitegrab

// Processor converts a fetched, parsed page into a result record.
// It is an injectable strategy: the crawl engine accepts any implementation
// at construction time. Implementations must tolerate malformed or empty
// documents; a missing title yields a nil Title, not a failure.
type Processor interface {
	Process(url string, doc Document) (*Result, error)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(url string, doc Document) (*Result, error)

// Process calls f(url, doc).
func (f ProcessorFunc) Process(url string, doc Document) (*Result, error) {
	return f(url, doc)
}
