// Package identify reconciles external identification services into an
// identity set for a release.
package identify

import (
	"fmt"
	"sort"

	"github.com/vmunix/seedgo/pkg/release"
)

// Kind names one external identifier namespace.
type Kind string

const (
	KindTMDB        Kind = "tmdb_id"
	KindIMDB        Kind = "imdb_id"
	KindTVDB        Kind = "tvdb_id"
	KindOpenLibrary Kind = "open_library_id"
)

// Identifier is one resolved external identifier with its provenance.
type Identifier struct {
	Value      string
	Confidence float64
	// Query records the lookup that produced the value, for reporting.
	Query string
	// Ambiguous marks a value accepted by edit-distance tie-break among
	// several above-threshold candidates.
	Ambiguous bool
}

// IdentitySet holds the identifiers resolved for a release. Only the
// resolver mutates it; downstream consumers read it. An identifier below
// the acceptance threshold is never stored, so presence implies resolved.
type IdentitySet struct {
	ids map[Kind]Identifier
}

// NewIdentitySet returns an empty set.
func NewIdentitySet() *IdentitySet {
	return &IdentitySet{ids: make(map[Kind]Identifier)}
}

// Resolved returns the identifier for a kind, if one was accepted.
func (s *IdentitySet) Resolved(k Kind) (Identifier, bool) {
	id, ok := s.ids[k]
	return id, ok
}

// Kinds lists the resolved kinds in sorted order.
func (s *IdentitySet) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.ids))
	for k := range s.ids {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Empty reports whether no identifier was resolved.
func (s *IdentitySet) Empty() bool {
	return len(s.ids) == 0
}

// Set stores an identifier. Downstream consumers treat the set as
// read-only; only the resolver (and test fixtures) populate it.
func (s *IdentitySet) Set(k Kind, id Identifier) {
	s.ids[k] = id
}

// Query is the lookup key passed to identification services.
type Query struct {
	Title  string
	Year   int
	Season int
	Type   release.ContentType
}

func (q Query) String() string {
	s := fmt.Sprintf("%s:%q", q.Type, q.Title)
	if q.Year > 0 {
		s += fmt.Sprintf(" year=%d", q.Year)
	}
	if q.Season > 0 {
		s += fmt.Sprintf(" season=%d", q.Season)
	}
	return s
}

// Candidate is one identifier proposed by a service. Confidence is assigned
// by the resolver from title similarity, not by the service.
type Candidate struct {
	Kind  Kind
	Value string
	Title string
	Year  int
}
