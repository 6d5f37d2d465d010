package breakdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/genecensus/apomap/annotate"
	"github.com/genecensus/apomap/evidence"
)

// SummaryReport renders the per-source, per-category counts as plain text.
func SummaryReport(breakdowns []SourceBreakdown) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	thinRule := strings.Repeat("-", 40)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "APOPTOTIC GENE LIST - SOURCE BREAKDOWN SUMMARY")
	fmt.Fprintln(&b, rule)

	for _, sb := range breakdowns {
		fmt.Fprintf(&b, "\n%s\n%s\n", sb.Label, thinRule)
		for _, category := range evidence.CategoryOrder {
			fmt.Fprintf(&b, "  %-20s: %4d genes\n", category, sb.Counts[category])
		}
		fmt.Fprintf(&b, "  %-20s: %4d genes\n", "TOTAL", sb.Total())
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintln(&b, "Notes:")
	fmt.Fprintln(&b, "- Categories are consensus annotations derived from multiple sources")
	fmt.Fprintln(&b, "- A gene may appear in multiple source lists")
	fmt.Fprintln(&b, rule)

	return b.String()
}

// WriteAll writes one CSV per source label plus the plain-text summary
// report into dir.
func WriteAll(dir string, breakdowns []SourceBreakdown) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pfx.Err(err)
	}

	for _, sb := range breakdowns {
		if err := annotate.WriteEntries(sb.Filename(dir), sb.Entries); err != nil {
			return pfx.Err(err)
		}
	}

	summaryPath := filepath.Join(dir, "breakdown_summary.txt")
	if err := os.WriteFile(summaryPath, []byte(SummaryReport(breakdowns)), 0o644); err != nil {
		return pfx.Err(err)
	}

	return nil
}
