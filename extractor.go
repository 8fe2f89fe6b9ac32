package sitegrab

// LinkExtractor returns the absolute, in-scope candidate links of a page.
// References are resolved against baseURL; unresolvable references are
// dropped silently; duplicates within the page collapse. Extraction does not
// consult the visited set: scope filtering and visited filtering are
// distinct stages.
type LinkExtractor interface {
	ExtractLinks(doc Document, baseURL string) ([]string, error)
}
