// consolidate folds every raw gene-set table through the ortholog map into
// one deduplicated, categorized, evidence-scored gene list keyed by human
// symbol.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/genecensus/apomap"
	"github.com/genecensus/apomap/evidence"
	"github.com/genecensus/apomap/geneset"
	"github.com/genecensus/apomap/ortholog"
)

func main() {
	var rawDir, orthologyPath, outPath, summaryPath string

	flag.StringVar(&rawDir, "rawdir", "", "Directory holding the raw gene-set CSVs from fetchsets.")
	flag.StringVar(&orthologyPath, "orthology", "", "Path to the ortholog pair table from maporthologs.")
	flag.StringVar(&outPath, "out", "consolidated_apoptosis_genes.csv", "Output path for the consolidated gene table.")
	flag.StringVar(&summaryPath, "summary", "gene_category_summary.txt", "Output path for the plain-text category summary.")
	flag.Parse()

	if rawDir == "" || orthologyPath == "" {
		flag.PrintDefaults()
		return
	}

	if _, err := os.Stat(apomap.ExpandHome(orthologyPath)); os.IsNotExist(err) {
		log.Fatalf("Orthology file not found: %s\n", orthologyPath)
	}

	pairs, err := ortholog.ReadPairs(orthologyPath)
	if err != nil {
		log.Fatalln(err)
	}
	index := ortholog.BuildIndex(pairs)
	log.Printf("Loaded %d ortholog pairs (%d human genes with orthologs, %d mouse genes mapped)\n",
		len(pairs), index.HumanCount(), index.MouseCount())

	// The label, not the file's own source column, is the provenance tag
	// that feeds the evidence score.
	sourceFiles := []geneset.SourceFile{
		{Label: "GO_Pro_Human", Path: filepath.Join(rawDir, "human_go_pro.csv")},
		{Label: "GO_Anti_Human", Path: filepath.Join(rawDir, "human_go_anti.csv")},
		{Label: "GO_Pro_Mouse", Path: filepath.Join(rawDir, "mouse_go_pro.csv")},
		{Label: "GO_Anti_Mouse", Path: filepath.Join(rawDir, "mouse_go_anti.csv")},
		{Label: "KEGG", Path: filepath.Join(rawDir, "human_kegg_apoptosis.csv")},
		{Label: "Reactome", Path: filepath.Join(rawDir, "human_reactome_apoptosis.csv")},
		{Label: "Hallmark", Path: filepath.Join(rawDir, "human_hallmark_apoptosis.csv")},
	}

	records, err := geneset.LoadSourceFiles(sourceFiles)
	if err != nil {
		log.Fatalln(err)
	}

	profiles, stats, err := evidence.Aggregate(records, index)
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("Evidence aggregation: %d records (%d human, %d mouse; %d mouse mapped, %d unmapped)\n",
		stats.Records, stats.HumanRecords, stats.MouseRecords, stats.MouseMapped, stats.MouseUnmapped)

	entries := evidence.Consolidate(profiles)

	if err := evidence.WriteEntries(outPath, entries); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Saved %d consolidated genes to %s\n", len(entries), outPath)

	if err := evidence.WriteSummary(summaryPath, entries); err != nil {
		log.Fatalln(err)
	}

	fmt.Println(evidence.Summary(entries))
}
