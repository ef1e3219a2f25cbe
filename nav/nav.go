// Package nav provides the location type threaded through routing.
package nav

import (
	"net/url"

	"github.com/frondui/frond/errors"
)

// Location is a navigation target split into the parts routing cares about.
// Search carries the raw query string without the leading '?', Hash the
// fragment without the leading '#'.
type Location struct {
	Href   string
	Path   string
	Search string
	Hash   string
}

// FromURL converts a parsed URL into a Location.
func FromURL(u *url.URL) Location {
	return Location{
		Href:   u.String(),
		Path:   u.EscapedPath(),
		Search: u.RawQuery,
		Hash:   u.Fragment,
	}
}

// Parse parses a raw URL string into a Location.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, errors.Wrap(errors.PhaseRouting, errors.KindInvalidData, err, "parse location")
	}
	return FromURL(u), nil
}

// String reassembles the location from its parts.
func (l Location) String() string {
	s := l.Path
	if l.Search != "" {
		s += "?" + l.Search
	}
	if l.Hash != "" {
		s += "#" + l.Hash
	}
	if s == "" {
		return l.Href
	}
	return s
}
