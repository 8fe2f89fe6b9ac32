// Package sitegrab provides a breadth-first web crawler. Given seed URLs it
// fetches pages, extracts structured records, discovers in-scope outbound
// links, and keeps visiting newly discovered URLs until a page budget is
// exhausted.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, trafilatura/).
package sitegrab
