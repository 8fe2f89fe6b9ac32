package sitegrab

import (
	"net/url"
	"strings"
)

// DomainScope decides whether a URL's host is eligible to be crawled.
// An empty scope allows every domain. Otherwise the URL's hostname must be
// an exact member of the allowed set: no subdomain matching, no wildcards.
//
// Allowed is a pure function with no failure modes. A malformed URL yields
// an empty hostname which simply fails membership.
type DomainScope struct {
	allowed map[string]struct{}
}

// NewDomainScope creates a scope filter from a list of hostnames.
// Hostnames are matched case-insensitively.
func NewDomainScope(domains []string) *DomainScope {
	s := &DomainScope{}
	if len(domains) == 0 {
		return s
	}
	s.allowed = make(map[string]struct{}, len(domains))
	for _, d := range domains {
		s.allowed[strings.ToLower(d)] = struct{}{}
	}
	return s
}

// Allowed reports whether the URL's host is in scope.
func (s *DomainScope) Allowed(rawURL string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := s.allowed[strings.ToLower(u.Hostname())]
	return ok
}
