package crawl

import (
	"net/url"
	"strings"

	"github.com/sitegrab/sitegrab"
)

// Compile-time interface verification.
var _ sitegrab.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor resolves a page's raw hrefs into absolute candidate links
// and screens them through the domain scope filter. Duplicates within a page
// collapse, keeping first-seen document order. Unresolvable references are
// dropped silently and never surface as errors.
//
// Resolved URLs are compared as plain strings: trailing slashes, query
// parameter order, and fragments are not canonicalized.
type LinkExtractor struct {
	scope *sitegrab.DomainScope
}

// NewLinkExtractor creates a LinkExtractor using the given scope filter.
// A nil scope allows all domains.
func NewLinkExtractor(scope *sitegrab.DomainScope) *LinkExtractor {
	if scope == nil {
		scope = sitegrab.NewDomainScope(nil)
	}
	return &LinkExtractor{scope: scope}
}

// ExtractLinks returns the absolute, in-scope links of a parsed page.
func (e *LinkExtractor) ExtractLinks(doc sitegrab.Document, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitegrab.Errorf(sitegrab.EINVALID, "invalid base URL: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	for _, href := range doc.Links() {
		if href == "" || isNonHTTPLink(href) {
			continue
		}

		resolved := resolveRef(base, href)
		if resolved == "" {
			continue
		}

		if !e.scope.Allowed(resolved) {
			continue
		}

		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	}

	return links, nil
}

// resolveRef resolves a reference against the base URL. Returns the empty
// string for unparseable references and for resolutions that leave the
// http(s) space.
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
