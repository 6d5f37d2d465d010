package evidence

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/genecensus/apomap"
)

// SymbolList is an ordered set of symbols or source labels rendered as one
// comma-joined CSV cell.
type SymbolList []string

func (l SymbolList) MarshalCSV() (string, error) {
	return strings.Join(l, ","), nil
}

func (l *SymbolList) UnmarshalCSV(cell string) error {
	if cell == "" {
		*l = nil
		return nil
	}

	*l = strings.Split(cell, ",")
	return nil
}

// Contains reports whether any element contains the pattern as a substring.
func (l SymbolList) Contains(pattern string) bool {
	for _, s := range l {
		if strings.Contains(s, pattern) {
			return true
		}
	}

	return false
}

// Entry is one consolidated gene: immutable once classified.
type Entry struct {
	HumanSymbol   string     `csv:"human_symbol"`
	MouseSymbols  SymbolList `csv:"mouse_symbol"`
	Category      Category   `csv:"category"`
	Sources       SymbolList `csv:"sources"`
	EvidenceScore int        `csv:"evidence_score"`
}

// Consolidate classifies every profile and returns the final table, sorted
// by evidence score descending and then by upper-cased symbol ascending
// (display case preserved). Case-insensitive symbol ties fall back to the
// raw symbol so the order never depends on map iteration.
func Consolidate(profiles ProfileMap) []Entry {
	entries := make([]Entry, 0, len(profiles))

	for humanSymbol, profile := range profiles {
		category, score := Classify(profile)

		mouseSymbols := make([]string, 0, len(profile.MouseSymbols))
		for symbol := range profile.MouseSymbols {
			mouseSymbols = append(mouseSymbols, symbol)
		}
		sort.Strings(mouseSymbols)

		entries = append(entries, Entry{
			HumanSymbol:   humanSymbol,
			MouseSymbols:  mouseSymbols,
			Category:      category,
			Sources:       profile.Sources(),
			EvidenceScore: score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EvidenceScore != entries[j].EvidenceScore {
			return entries[i].EvidenceScore > entries[j].EvidenceScore
		}
		if ui, uj := strings.ToUpper(entries[i].HumanSymbol), strings.ToUpper(entries[j].HumanSymbol); ui != uj {
			return ui < uj
		}
		return entries[i].HumanSymbol < entries[j].HumanSymbol
	})

	return entries
}

// WriteEntries writes the consolidated gene table.
func WriteEntries(path string, entries []Entry) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		return gocsv.NewSafeCSVWriter(csv.NewWriter(out))
	})

	buf := &bytes.Buffer{}
	if err := gocsv.Marshal(entries, buf); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.WriteFile(path, buf.Bytes(), 0o644))
}

// ReadEntries loads a consolidated gene table.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(apomap.ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		return r
	})

	entries := []*Entry{}
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *entry)
	}

	return out, nil
}
