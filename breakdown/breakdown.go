// Package breakdown re-projects the final classified gene table back onto
// each originating source for per-source reporting. The global category
// assignment is never altered here; entries are only filtered and re-sorted.
package breakdown

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/genecensus/apomap/annotate"
	"github.com/genecensus/apomap/evidence"
)

// Pattern binds a report label to the substring matched against an entry's
// source labels. A single entry may match several patterns.
type Pattern struct {
	Label string
	Match string
}

// DefaultPatterns covers the four curated databases. The GO pattern is a
// prefix family: it matches GO_Pro_Human, GO_Anti_Mouse, and the rest.
var DefaultPatterns = []Pattern{
	{Label: "KEGG", Match: "KEGG"},
	{Label: "Reactome", Match: "Reactome"},
	{Label: "Hallmark", Match: "Hallmark"},
	{Label: "GO", Match: "GO_"},
}

// SourceBreakdown is one label's filtered, re-sorted slice of the final
// table plus its per-category counts.
type SourceBreakdown struct {
	Label   string
	Entries []annotate.Entry
	Counts  map[evidence.Category]int
}

// Total is the number of entries under this label.
func (sb SourceBreakdown) Total() int { return len(sb.Entries) }

// Filename is the per-source output file name for this label.
func (sb SourceBreakdown) Filename(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("apoptosis_genes_%s.csv", sb.Label))
}

// Generate filters the final table once per pattern, in pattern order. Each
// subset is sorted by the fixed category order and then by upper-cased human
// symbol; counts are computed from the filtered subset.
func Generate(entries []annotate.Entry, patterns []Pattern) []SourceBreakdown {
	out := make([]SourceBreakdown, 0, len(patterns))

	for _, pattern := range patterns {
		sb := SourceBreakdown{
			Label:  pattern.Label,
			Counts: make(map[evidence.Category]int),
		}

		for _, entry := range entries {
			if !entry.Sources.Contains(pattern.Match) {
				continue
			}

			sb.Entries = append(sb.Entries, entry)
			sb.Counts[entry.Category]++
		}

		sort.SliceStable(sb.Entries, func(i, j int) bool {
			ri, rj := evidence.CategoryRank(sb.Entries[i].Category), evidence.CategoryRank(sb.Entries[j].Category)
			if ri != rj {
				return ri < rj
			}
			return strings.ToUpper(sb.Entries[i].HumanSymbol) < strings.ToUpper(sb.Entries[j].HumanSymbol)
		})

		out = append(out, sb)
	}

	return out
}
