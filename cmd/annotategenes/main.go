// annotategenes enriches the consolidated gene table with Ensembl gene IDs
// for both organisms. Annotation is best-effort: missing mappings lower the
// reported coverage but never fail the run.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/genecensus/apomap/annotate"
	"github.com/genecensus/apomap/evidence"
	"github.com/genecensus/apomap/mygene"
)

func main() {
	var inPath, outPath string
	var batchSize, concurrency int
	var retries uint64

	flag.StringVar(&inPath, "in", "", "Path to the consolidated gene table from consolidate.")
	flag.StringVar(&outPath, "out", "final_apoptotic_gene_list.csv", "Output path for the final annotated gene table.")
	flag.IntVar(&batchSize, "batch", 200, "Symbols per lookup request.")
	flag.IntVar(&concurrency, "concurrency", 3, "Maximum lookup batches in flight at once.")
	flag.Uint64Var(&retries, "retries", 3, "Maximum exponential-backoff retries per batch.")
	flag.Parse()

	if inPath == "" {
		flag.PrintDefaults()
		return
	}

	entries, err := evidence.ReadEntries(inPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d consolidated genes from %s\n", len(entries), inPath)

	lookup := mygene.New(mygene.Config{
		BatchSize:   batchSize,
		Concurrency: concurrency,
		MaxRetries:  retries,
	})

	annotated, coverage, err := annotate.Annotate(entries, lookup)
	if err != nil {
		log.Fatalln(err)
	}

	if err := annotate.WriteEntries(outPath, annotated); err != nil {
		log.Fatalln(err)
	}

	log.Printf("Saved final annotated gene list to %s\n", outPath)
	fmt.Println(coverage.String())
}
