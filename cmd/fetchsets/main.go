// fetchsets retrieves the raw apoptosis gene-set tables from an
// Enrichr-style library service: GO Biological Process pro- and
// anti-apoptotic sets for Human and Mouse, plus the KEGG, Reactome, and
// Hallmark apoptosis pathways for Human. One CSV is written per source.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/genecensus/apomap/geneset"
)

type fetchSpec struct {
	Library  string
	Organism geneset.Organism
	Polarity geneset.Polarity
	Source   string
	Filter   geneset.SetFilter
	OutFile  string
}

func main() {
	var outDir, goLib, keggLib, reactomeLib, hallmarkLib string
	var retries uint64

	flag.StringVar(&outDir, "out", "raw_data", "Directory that will receive one raw gene-set CSV per source.")
	flag.StringVar(&goLib, "golib", "GO_Biological_Process_2023", "GO Biological Process library name.")
	flag.StringVar(&keggLib, "kegglib", "KEGG_2021_Human", "KEGG library name.")
	flag.StringVar(&reactomeLib, "reactomelib", "Reactome_2022", "Reactome library name.")
	flag.StringVar(&hallmarkLib, "hallmarklib", "MSigDB_Hallmark_2020", "Hallmark library name.")
	flag.Uint64Var(&retries, "retries", 3, "Maximum exponential-backoff retries per library fetch.")
	flag.Parse()

	if outDir == "" {
		flag.PrintDefaults()
		return
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalln(err)
	}

	// "APOPTO" covers both APOPTOSIS and APOPTOTIC in set names.
	specs := []fetchSpec{
		{goLib, geneset.Human, geneset.Pro, "GO_BP", geneset.SetFilter{Require: []string{"POSITIVE", "APOPTO"}}, "human_go_pro.csv"},
		{goLib, geneset.Human, geneset.Anti, "GO_BP", geneset.SetFilter{Require: []string{"NEGATIVE", "APOPTO"}}, "human_go_anti.csv"},
		{goLib, geneset.Mouse, geneset.Pro, "GO_BP", geneset.SetFilter{Require: []string{"POSITIVE", "APOPTO"}}, "mouse_go_pro.csv"},
		{goLib, geneset.Mouse, geneset.Anti, "GO_BP", geneset.SetFilter{Require: []string{"NEGATIVE", "APOPTO"}}, "mouse_go_anti.csv"},
		{keggLib, geneset.Human, geneset.General, "KEGG", geneset.SetFilter{Require: []string{"APOPTOSIS"}}, "human_kegg_apoptosis.csv"},
		{reactomeLib, geneset.Human, geneset.General, "Reactome", geneset.SetFilter{Require: []string{"APOPTO"}}, "human_reactome_apoptosis.csv"},
		{hallmarkLib, geneset.Human, geneset.General, "Hallmark", geneset.SetFilter{Require: []string{"APOPTOSIS"}}, "human_hallmark_apoptosis.csv"},
	}

	client := geneset.NewLibraryClient(geneset.LibraryClientConfig{MaxRetries: retries})

	written := 0
	for _, spec := range specs {
		log.Printf("Fetching %s (%s) for %s sets\n", spec.Library, spec.Organism, spec.Source)

		library, err := client.FetchLibrary(spec.Library, spec.Organism)
		if err != nil {
			// A single unreachable library degrades coverage rather than
			// aborting the acquisition.
			log.Printf("Warning: could not fetch %s (%s): %v\n", spec.Library, spec.Organism, err)
			continue
		}

		sets := geneset.FilterSets(library, spec.Filter)
		if len(sets) == 0 {
			log.Printf("Warning: no gene sets in %s matched %v\n", spec.Library, spec.Filter.Require)
			continue
		}

		records := geneset.RecordsFromSets(sets, spec.Source, spec.Polarity, spec.Organism)
		outPath := filepath.Join(outDir, spec.OutFile)
		if err := geneset.WriteRecords(outPath, records); err != nil {
			log.Fatalln(err)
		}

		log.Printf("Saved %d gene entries (%d sets) to %s\n", len(records), len(sets), outPath)
		written++
	}

	if written == 0 {
		log.Fatalln("No gene-set tables could be retrieved; nothing for downstream stages to consume")
	}

	log.Printf("Data acquisition complete: %d/%d source tables written to %s\n", written, len(specs), outDir)
}
