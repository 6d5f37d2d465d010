// maporthologs builds the bidirectional human/mouse ortholog pair table for
// every gene symbol found in the raw gene-set tables, resolving the numeric
// identifiers returned by the lookup service back to symbols.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/genecensus/apomap"
	"github.com/genecensus/apomap/geneset"
	"github.com/genecensus/apomap/mygene"
	"github.com/genecensus/apomap/ortholog"
)

func main() {
	var rawDir, outPath, simplePath string
	var batchSize, concurrency int
	var retries uint64

	flag.StringVar(&rawDir, "rawdir", "", "Directory holding the raw gene-set CSVs from fetchsets.")
	flag.StringVar(&outPath, "out", "orthology_mapping_full.csv", "Output path for the full pair table.")
	flag.StringVar(&simplePath, "simple", "orthology_mapping.csv", "Output path for the simplified two-column pair table.")
	flag.IntVar(&batchSize, "batch", 500, "Symbols per lookup request.")
	flag.IntVar(&concurrency, "concurrency", 3, "Maximum lookup batches in flight at once.")
	flag.Uint64Var(&retries, "retries", 3, "Maximum exponential-backoff retries per batch.")
	flag.Parse()

	if rawDir == "" {
		flag.PrintDefaults()
		return
	}

	paths, err := filepath.Glob(filepath.Join(apomap.ExpandHome(rawDir), "*.csv"))
	if err != nil {
		log.Fatalln(err)
	}
	if len(paths) == 0 {
		log.Fatalf("No raw gene-set CSVs found in %s\n", rawDir)
	}

	files := make([]geneset.SourceFile, 0, len(paths))
	for _, path := range paths {
		files = append(files, geneset.SourceFile{Label: filepath.Base(path), Path: path})
	}

	records, err := geneset.LoadSourceFiles(files)
	if err != nil {
		log.Fatalln(err)
	}

	humanSymbols, mouseSymbols := geneset.SymbolsByOrganism(records)
	log.Printf("Unique genes loaded: %d human, %d mouse\n", len(humanSymbols), len(mouseSymbols))

	if len(humanSymbols) == 0 && len(mouseSymbols) == 0 {
		log.Fatalln("No gene symbols found in the raw gene-set tables")
	}

	lookup := mygene.New(mygene.Config{
		BatchSize:   batchSize,
		Concurrency: concurrency,
		MaxRetries:  retries,
	})

	result, err := ortholog.NewResolver(lookup).Resolve(humanSymbols, mouseSymbols)
	if err != nil {
		log.Fatalln(err)
	}

	if err := ortholog.WritePairs(outPath, result.Pairs); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Full orthology mapping saved to %s\n", outPath)

	if err := ortholog.WriteSimplePairs(simplePath, result.Pairs); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Simplified mapping saved to %s\n", simplePath)

	fmt.Println(result.Summary())
}
