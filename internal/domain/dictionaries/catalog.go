package dictionaries

import (
	"strings"

	"github.com/andresmx/sentimsg/internal/domain/messages"
)

// Catalog is the ordered company dictionary for one ingestion run. Slice
// order is document order: resolution is first-match-wins, so the order is
// part of the contract. Immutable after load.
type Catalog []Company

// Company is a known business entity with zero-or-more named services.
type Company struct {
	Name     string
	Services []Service
}

// Service is one offering of a company, matched in free text through its
// lowercase aliases. The alias list may be empty, in which case the service
// can never be resolved.
type Service struct {
	Name    string
	Aliases []string
}

// Resolve attributes a message body to a company and service.
//
// The first company whose name occurs (case-insensitive) as a substring of
// the body wins; within it, the first service with any alias present wins.
// Iteration stops at the first match in both loops. There is no longest-match
// or most-specific resolution: an earlier-declared company takes precedence
// even when a later one matches more text.
func Resolve(body string, c Catalog) (company, service string) {
	lower := strings.ToLower(body)

	for _, co := range c {
		if co.Name == "" || !strings.Contains(lower, strings.ToLower(co.Name)) {
			continue
		}
		for _, sv := range co.Services {
			for _, alias := range sv.Aliases {
				if alias != "" && strings.Contains(lower, alias) {
					return co.Name, sv.Name
				}
			}
		}
		return co.Name, messages.ServiceUnknown
	}
	return messages.CompanyUnknown, messages.ServiceUnknown
}
