package ortholog

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"gopkg.in/guregu/null.v3"

	"github.com/genecensus/apomap/mygene"
)

// Lookup is the slice of the identifier-resolution service the resolver
// needs. *mygene.Client satisfies it.
type Lookup interface {
	QueryHomologene(symbols []string, from, to mygene.Species) map[string][]int64
	ResolveEntrez(ids []int64, species mygene.Species) map[int64]string
}

// ResolutionFailure means the lookup service produced zero usable pairs from
// either direction, so there is nothing for downstream stages to project
// through.
type ResolutionFailure struct {
	HumanQueried int
	MouseQueried int
}

func (e ResolutionFailure) Error() string {
	return fmt.Sprintf("ortholog resolution produced zero pairs (%d human and %d mouse symbols queried); is the lookup service reachable?", e.HumanQueried, e.MouseQueried)
}

// Resolver builds the deduplicated bidirectional pair table from two
// disjoint symbol sets.
type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Result is the resolver's output: the sorted deduplicated pair table, the
// derived index, and the coverage counters every run reports.
type Result struct {
	Pairs             []Pair
	Index             *Index
	DuplicatesRemoved int

	HumanQueried     int
	MouseQueried     int
	HumanWithTargets int
	MouseWithTargets int
}

// Resolve queries the service in both directions, resolves the discovered
// Entrez IDs back to symbols, and assembles the deduplicated pair table.
// Unresolved identifiers are dropped silently and only reduce coverage. The
// service being asymmetric is expected: a symbol with no forward hit may
// still appear through the reverse direction.
func (r *Resolver) Resolve(humanSymbols, mouseSymbols []string) (*Result, error) {
	result := &Result{
		HumanQueried: len(humanSymbols),
		MouseQueried: len(mouseSymbols),
	}

	log.Printf("Resolving orthologs for %d human and %d mouse symbols\n", len(humanSymbols), len(mouseSymbols))

	humanToMouseIDs := r.lookup.QueryHomologene(humanSymbols, mygene.Human, mygene.Mouse)
	mouseToHumanIDs := r.lookup.QueryHomologene(mouseSymbols, mygene.Mouse, mygene.Human)

	result.HumanWithTargets = len(humanToMouseIDs)
	result.MouseWithTargets = len(mouseToHumanIDs)

	log.Printf("Forward direction: %d/%d human symbols had ortholog clusters\n", len(humanToMouseIDs), len(humanSymbols))
	log.Printf("Reverse direction: %d/%d mouse symbols had ortholog clusters\n", len(mouseToHumanIDs), len(mouseSymbols))

	mouseIDToSymbol := r.lookup.ResolveEntrez(collectIDs(humanToMouseIDs), mygene.Mouse)
	humanIDToSymbol := r.lookup.ResolveEntrez(collectIDs(mouseToHumanIDs), mygene.Human)

	// Assemble in sorted source-symbol order so the pair table, and with it
	// the keep-first dedup, is identical on every run.
	raw := make([]Pair, 0)

	for _, humanSymbol := range sortedKeys(humanToMouseIDs) {
		for _, mouseID := range humanToMouseIDs[humanSymbol] {
			mouseSymbol, ok := mouseIDToSymbol[mouseID]
			if !ok || mouseSymbol == "" {
				continue
			}

			raw = append(raw, Pair{
				HumanSymbol: strings.ToUpper(humanSymbol),
				MouseSymbol: mouseSymbol,
				MouseEntrez: null.IntFrom(mouseID),
				Source:      HumanToMouse,
			})
		}
	}

	for _, mouseSymbol := range sortedKeys(mouseToHumanIDs) {
		for _, humanID := range mouseToHumanIDs[mouseSymbol] {
			humanSymbol, ok := humanIDToSymbol[humanID]
			if !ok || humanSymbol == "" {
				continue
			}

			raw = append(raw, Pair{
				HumanSymbol: strings.ToUpper(humanSymbol),
				MouseSymbol: mouseSymbol,
				HumanEntrez: null.IntFrom(humanID),
				Source:      MouseToHuman,
			})
		}
	}

	// Dedup on the symbol pair regardless of direction, keeping the
	// first-seen record (and with it that record's direction tag).
	type pairKey struct{ human, mouse string }
	seen := make(map[pairKey]struct{}, len(raw))
	deduped := make([]Pair, 0, len(raw))
	for _, pair := range raw {
		key := pairKey{pair.HumanSymbol, pair.MouseSymbol}
		if _, ok := seen[key]; ok {
			result.DuplicatesRemoved++
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, pair)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].HumanSymbol != deduped[j].HumanSymbol {
			return deduped[i].HumanSymbol < deduped[j].HumanSymbol
		}
		return deduped[i].MouseSymbol < deduped[j].MouseSymbol
	})

	if len(deduped) == 0 {
		return nil, ResolutionFailure{HumanQueried: len(humanSymbols), MouseQueried: len(mouseSymbols)}
	}

	result.Pairs = deduped
	result.Index = BuildIndex(deduped)

	log.Printf("Removed %d duplicate pairs; %d pairs remain\n", result.DuplicatesRemoved, len(deduped))

	return result, nil
}

func collectIDs(bySymbol map[string][]int64) []int64 {
	seen := make(map[int64]struct{})
	for _, ids := range bySymbol {
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func sortedKeys(m map[string][]int64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
