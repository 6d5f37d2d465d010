package evidence

import (
	"errors"
	"log"

	"github.com/genecensus/apomap/geneset"
	"github.com/genecensus/apomap/ortholog"
)

// ErrNoEvidence means aggregation produced zero profiles: no record could be
// filed, so downstream stages have nothing to operate on.
var ErrNoEvidence = errors.New("evidence: no gene accumulated any evidence from any source")

// AggregateStats are the coverage counters reported after aggregation.
type AggregateStats struct {
	Records       int
	HumanRecords  int
	MouseRecords  int
	MouseMapped   int
	MouseUnmapped int
}

// Aggregate folds every gene-set record into one profile per canonical human
// symbol.
//
// Human records file their source and polarity directly under their own
// symbol, and associate every forward-index mouse ortholog with the profile.
// Mouse records are projected through the reverse index first: if the index
// has no entry for the mouse symbol, the record contributes no evidence and
// is counted as unmapped; otherwise the evidence is filed under the resolved
// human symbol with polarity preserved and the original mouse symbol joins
// the profile's ortholog set.
func Aggregate(records []geneset.Record, index *ortholog.Index) (ProfileMap, AggregateStats, error) {
	profiles := make(ProfileMap)
	stats := AggregateStats{Records: len(records)}

	for _, record := range records {
		switch record.Organism {
		case geneset.Mouse:
			stats.MouseRecords++

			humanSymbol, ok := index.HumanOrtholog(record.Symbol)
			if !ok {
				stats.MouseUnmapped++
				continue
			}
			stats.MouseMapped++

			profile := profiles.GetOrInsert(humanSymbol)
			profile.AddEvidence(record.Polarity, record.Source)
			profile.AssociateMouse(record.Symbol)

		default:
			stats.HumanRecords++

			profile := profiles.GetOrInsert(record.Symbol)
			profile.AddEvidence(record.Polarity, record.Source)
			for _, mouseSymbol := range index.MouseOrthologs(record.Symbol) {
				profile.AssociateMouse(mouseSymbol)
			}
		}
	}

	log.Printf("Aggregated %d records into %d gene profiles (%d mouse records mapped, %d unmapped)\n",
		stats.Records, len(profiles), stats.MouseMapped, stats.MouseUnmapped)

	if len(profiles) == 0 {
		return nil, stats, ErrNoEvidence
	}

	return profiles, stats, nil
}
