// Package evidence consolidates per-gene functional evidence from every
// curated source into one classified, scored entry per canonical human
// symbol.
package evidence

import (
	"sort"

	"github.com/genecensus/apomap/geneset"
)

// Profile accumulates evidence for one canonical human symbol: which source
// labels contributed under each polarity, and which mouse symbols are
// associated with the gene. All four members are sets, so filing order across
// sources is irrelevant.
type Profile struct {
	Pro          map[string]struct{}
	Anti         map[string]struct{}
	General      map[string]struct{}
	MouseSymbols map[string]struct{}
}

func newProfile() *Profile {
	return &Profile{
		Pro:          make(map[string]struct{}),
		Anti:         make(map[string]struct{}),
		General:      make(map[string]struct{}),
		MouseSymbols: make(map[string]struct{}),
	}
}

// AddEvidence files one source label under the given polarity.
func (p *Profile) AddEvidence(polarity geneset.Polarity, source string) {
	switch polarity {
	case geneset.Pro:
		p.Pro[source] = struct{}{}
	case geneset.Anti:
		p.Anti[source] = struct{}{}
	default:
		p.General[source] = struct{}{}
	}
}

// AssociateMouse records a mouse ortholog symbol for the gene.
func (p *Profile) AssociateMouse(symbol string) {
	p.MouseSymbols[symbol] = struct{}{}
}

// Sources returns the sorted union of source labels across all three
// polarities. A source contributing under more than one polarity counts once.
func (p *Profile) Sources() []string {
	seen := make(map[string]struct{})
	for source := range p.Pro {
		seen[source] = struct{}{}
	}
	for source := range p.Anti {
		seen[source] = struct{}{}
	}
	for source := range p.General {
		seen[source] = struct{}{}
	}

	sources := make([]string, 0, len(seen))
	for source := range seen {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	return sources
}

// Score is the evidence score: the count of distinct contributing sources.
func (p *Profile) Score() int {
	return len(p.Sources())
}

// Empty reports whether no evidence has been filed at all. An empty profile
// is an invariant violation: profiles are only created when a record is
// filed.
func (p *Profile) Empty() bool {
	return len(p.Pro) == 0 && len(p.Anti) == 0 && len(p.General) == 0
}

// ProfileMap owns the per-gene accumulator. Profiles are created explicitly
// through GetOrInsert rather than by implicit default construction, so the
// creation of a new entity is always visible at the call site.
type ProfileMap map[string]*Profile

// GetOrInsert returns the profile for the symbol, creating it on first
// access.
func (m ProfileMap) GetOrInsert(symbol string) *Profile {
	if profile, ok := m[symbol]; ok {
		return profile
	}

	profile := newProfile()
	m[symbol] = profile

	return profile
}
