package geneset

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/genecensus/apomap"
)

// SourceFile binds a configured source label to its raw gene-set table on
// disk. The label, not the file's own source column, becomes the provenance
// tag used for evidence scoring downstream.
type SourceFile struct {
	Label string
	Path  string
}

// LoadSourceFile reads one raw gene-set table, from a local path or a URL,
// and stamps every record with the configured source label. The delimiter is
// sniffed, since raw tables arrive both comma- and tab-delimited.
func LoadSourceFile(sf SourceFile) ([]Record, error) {
	contents, err := apomap.OpenFileOrURL(sf.Path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := apomap.DetermineDelimiter(bytes.NewReader(contents))

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.LazyQuotes = true
		return r
	})

	records := []*Record{}
	if err := gocsv.Unmarshal(bytes.NewReader(contents), &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]Record, 0, len(records))
	for _, record := range records {
		if record.Symbol == "" {
			continue
		}

		organism, err := ParseOrganism(string(record.Organism))
		if err != nil {
			return nil, pfx.Err(err)
		}

		polarity, err := ParsePolarity(string(record.Polarity))
		if err != nil {
			return nil, pfx.Err(err)
		}

		record.Organism = organism
		record.Polarity = polarity
		record.Source = sf.Label
		out = append(out, *record)
	}

	return out, nil
}

// LoadSourceFiles reads every configured source table in order. A missing
// file is logged and skipped so a partial acquisition still consolidates;
// any other read error is terminal.
func LoadSourceFiles(files []SourceFile) ([]Record, error) {
	all := make([]Record, 0)

	for _, sf := range files {
		if !strings.HasPrefix(sf.Path, "http") {
			if _, err := os.Stat(apomap.ExpandHome(sf.Path)); os.IsNotExist(err) {
				log.Printf("Warning: source file not found for %s: %s\n", sf.Label, sf.Path)
				continue
			}
		}

		records, err := LoadSourceFile(sf)
		if err != nil {
			return nil, pfx.Err(err)
		}

		log.Printf("Loaded %s: %d gene entries\n", sf.Label, len(records))
		all = append(all, records...)
	}

	return all, nil
}

// WriteRecords writes records as a comma-delimited raw gene-set table.
func WriteRecords(path string, records []Record) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		return gocsv.NewSafeCSVWriter(csv.NewWriter(out))
	})

	buf := &bytes.Buffer{}
	if err := gocsv.Marshal(records, buf); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.WriteFile(path, buf.Bytes(), 0o644))
}

// SymbolsByOrganism splits the distinct symbols present in records into the
// human and mouse sets, each returned sorted for deterministic downstream
// batching.
func SymbolsByOrganism(records []Record) (human, mouse []string) {
	humanSet := make(map[string]struct{})
	mouseSet := make(map[string]struct{})

	for _, record := range records {
		switch record.Organism {
		case Human:
			humanSet[record.Symbol] = struct{}{}
		case Mouse:
			mouseSet[record.Symbol] = struct{}{}
		}
	}

	for symbol := range humanSet {
		human = append(human, symbol)
	}
	for symbol := range mouseSet {
		mouse = append(mouse, symbol)
	}

	sort.Strings(human)
	sort.Strings(mouse)

	return human, mouse
}
