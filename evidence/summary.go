package evidence

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// Summary renders the consolidation report: totals, ortholog coverage, mean
// evidence score, the category and score distributions, and the top genes by
// score.
func Summary(entries []Entry) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	thinRule := strings.Repeat("-", 40)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "GENE SET CONSOLIDATION SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	var withMouse, multiSource int
	scores := make([]float64, 0, len(entries))
	categoryCounts := make(map[Category]int)
	scoreCounts := make(map[int]int)
	for _, entry := range entries {
		if len(entry.MouseSymbols) > 0 {
			withMouse++
		}
		if entry.EvidenceScore > 1 {
			multiSource++
		}
		scores = append(scores, float64(entry.EvidenceScore))
		categoryCounts[entry.Category]++
		scoreCounts[entry.EvidenceScore]++
	}

	meanScore, err := stats.Mean(scores)
	if err != nil {
		meanScore = 0
	}

	fmt.Fprintf(&b, "Total unique human genes: %d\n", len(entries))
	fmt.Fprintf(&b, "Genes with mouse orthologs: %d (%s)\n", withMouse, percent(withMouse, len(entries)))
	fmt.Fprintf(&b, "Average evidence score: %.2f\n", meanScore)
	fmt.Fprintf(&b, "Genes from multiple sources: %d (%s)\n", multiSource, percent(multiSource, len(entries)))

	fmt.Fprintf(&b, "\n%s\nCATEGORY DISTRIBUTION\n%s\n", thinRule, thinRule)
	for _, category := range CategoryOrder {
		count := categoryCounts[category]
		fmt.Fprintf(&b, "  %s: %d (%s)\n", category, count, percent(count, len(entries)))
	}

	fmt.Fprintf(&b, "\n%s\nEVIDENCE SCORE DISTRIBUTION\n%s\n", thinRule, thinRule)
	distinctScores := make([]int, 0, len(scoreCounts))
	for score := range scoreCounts {
		distinctScores = append(distinctScores, score)
	}
	sort.Ints(distinctScores)
	for _, score := range distinctScores {
		fmt.Fprintf(&b, "  %d source(s): %d genes\n", score, scoreCounts[score])
	}

	fmt.Fprintf(&b, "\n%s\nTOP 20 GENES BY EVIDENCE SCORE\n%s\n", thinRule, thinRule)
	top := entries
	if len(top) > 20 {
		top = top[:20]
	}
	for _, entry := range top {
		fmt.Fprintf(&b, "  %s: %s (score=%d, sources: %s)\n",
			entry.HumanSymbol, entry.Category, entry.EvidenceScore, strings.Join(entry.Sources, ","))
	}

	return b.String()
}

// WriteSummary writes the consolidation report to a plain-text file.
func WriteSummary(path string, entries []Entry) error {
	return pfx.Err(os.WriteFile(path, []byte(Summary(entries)), 0o644))
}

func percent(n, total int) string {
	if total == 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
