// Package annotate enriches the consolidated gene table with Ensembl gene
// IDs per organism. Annotation is best-effort: a missing mapping leaves the
// field absent and only lowers the reported coverage.
package annotate

import (
	"fmt"
	"log"
	"sort"

	"gopkg.in/guregu/null.v3"

	"github.com/genecensus/apomap/evidence"
	"github.com/genecensus/apomap/mygene"
)

// EnsemblLookup is the slice of the identifier-resolution service the
// annotator needs. *mygene.Client satisfies it.
type EnsemblLookup interface {
	EnsemblIDs(symbols []string, species mygene.Species) map[string]string
}

// Entry is a consolidated gene plus its optional external identifiers. An
// absent identifier is a valid terminal state, not an error.
type Entry struct {
	HumanSymbol    string              `csv:"human_symbol"`
	HumanEnsemblID null.String         `csv:"human_ensembl_id"`
	MouseSymbols   evidence.SymbolList `csv:"mouse_symbol"`
	MouseEnsemblID null.String         `csv:"mouse_ensembl_id"`
	Category       evidence.Category   `csv:"category"`
	Sources        evidence.SymbolList `csv:"sources"`
	EvidenceScore  int                 `csv:"evidence_score"`
}

// Coverage reports per-organism mapping success. It is informational only
// and never gates the run.
type Coverage struct {
	HumanMapped int
	HumanTotal  int
	MouseMapped int
	MouseTotal  int
}

func (c Coverage) String() string {
	return fmt.Sprintf("Human Ensembl ID coverage: %d/%d (%s); Mouse Ensembl ID coverage: %d/%d (%s)",
		c.HumanMapped, c.HumanTotal, percent(c.HumanMapped, c.HumanTotal),
		c.MouseMapped, c.MouseTotal, percent(c.MouseMapped, c.MouseTotal))
}

// Annotate looks up Ensembl IDs for every human symbol and every distinct
// mouse ortholog symbol, then merges them into the final table. A mouse-side
// ID is only attached when the entry has exactly one associated mouse
// symbol; a multi-ortholog entry keeps the field absent.
func Annotate(entries []evidence.Entry, lookup EnsemblLookup) ([]Entry, Coverage, error) {
	humanSymbols := make([]string, 0, len(entries))
	mouseSet := make(map[string]struct{})
	for _, entry := range entries {
		humanSymbols = append(humanSymbols, entry.HumanSymbol)
		for _, mouseSymbol := range entry.MouseSymbols {
			mouseSet[mouseSymbol] = struct{}{}
		}
	}

	mouseSymbols := make([]string, 0, len(mouseSet))
	for symbol := range mouseSet {
		mouseSymbols = append(mouseSymbols, symbol)
	}
	sort.Strings(mouseSymbols)

	log.Printf("Fetching Ensembl IDs for %d human symbols\n", len(humanSymbols))
	humanIDs := lookup.EnsemblIDs(humanSymbols, mygene.Human)

	log.Printf("Fetching Ensembl IDs for %d mouse symbols\n", len(mouseSymbols))
	mouseIDs := lookup.EnsemblIDs(mouseSymbols, mygene.Mouse)

	coverage := Coverage{HumanTotal: len(entries)}
	annotated := make([]Entry, 0, len(entries))

	for _, entry := range entries {
		out := Entry{
			HumanSymbol:   entry.HumanSymbol,
			MouseSymbols:  entry.MouseSymbols,
			Category:      entry.Category,
			Sources:       entry.Sources,
			EvidenceScore: entry.EvidenceScore,
		}

		if id, ok := humanIDs[entry.HumanSymbol]; ok {
			out.HumanEnsemblID = null.StringFrom(id)
			coverage.HumanMapped++
		}

		if len(entry.MouseSymbols) > 0 {
			coverage.MouseTotal++

			if len(entry.MouseSymbols) == 1 {
				if id, ok := mouseIDs[entry.MouseSymbols[0]]; ok {
					out.MouseEnsemblID = null.StringFrom(id)
					coverage.MouseMapped++
				}
			}
		}

		annotated = append(annotated, out)
	}

	log.Println(coverage.String())

	return annotated, coverage, nil
}

func percent(n, total int) string {
	if total == 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
