// sourcebreakdown re-projects the final annotated gene table back onto each
// originating source, writing one CSV per configured source label plus a
// plain-text per-source category summary. The global category assignments
// are preserved.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/genecensus/apomap/annotate"
	"github.com/genecensus/apomap/breakdown"
)

func main() {
	var inPath, outDir string

	flag.StringVar(&inPath, "in", "", "Path to the final annotated gene table from annotategenes.")
	flag.StringVar(&outDir, "outdir", "source_breakdown", "Directory that will receive the per-source tables and the summary.")
	flag.Parse()

	if inPath == "" {
		flag.PrintDefaults()
		return
	}

	entries, err := annotate.ReadEntries(inPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d genes from %s\n", len(entries), inPath)

	breakdowns := breakdown.Generate(entries, breakdown.DefaultPatterns)

	if err := breakdown.WriteAll(outDir, breakdowns); err != nil {
		log.Fatalln(err)
	}

	for _, sb := range breakdowns {
		log.Printf("%s: %d genes -> %s\n", sb.Label, sb.Total(), sb.Filename(outDir))
	}

	fmt.Println(breakdown.SummaryReport(breakdowns))
}
