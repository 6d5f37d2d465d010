package ortholog

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	"github.com/genecensus/apomap"
)

// Direction records which lookup direction produced a pair.
type Direction string

const (
	HumanToMouse Direction = "human_to_mouse"
	MouseToHuman Direction = "mouse_to_human"
)

// Pair is one deduplicated human/mouse ortholog assertion. The Entrez ID is
// only known on the side that was resolved from the ortholog cluster, so one
// of the two is always absent depending on Source.
type Pair struct {
	HumanSymbol string    `csv:"human_symbol"`
	MouseSymbol string    `csv:"mouse_symbol"`
	HumanEntrez null.Int  `csv:"human_entrez"`
	MouseEntrez null.Int  `csv:"mouse_entrez"`
	Source      Direction `csv:"mapping_source"`
}

// ReadPairs loads a pair table written by WritePairs (or the two-column
// simplified table, in which case the optional columns stay absent).
func ReadPairs(path string) ([]Pair, error) {
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

	pairs := []*Pair{}
	if err := gocsv.UnmarshalFile(f, &pairs); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]Pair, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, *pair)
	}

	return out, nil
}

// WritePairs writes the full pair table.
func WritePairs(path string, pairs []Pair) error {
	buf := &bytes.Buffer{}
	if err := gocsv.Marshal(pairs, buf); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.WriteFile(path, buf.Bytes(), 0o644))
}

// WriteSimplePairs writes just the two symbol columns, deduplicated, in
// input order.
func WriteSimplePairs(path string, pairs []Pair) error {
	type simplePair struct {
		HumanSymbol string `csv:"human_symbol"`
		MouseSymbol string `csv:"mouse_symbol"`
	}

	seen := make(map[simplePair]struct{})
	simple := make([]simplePair, 0, len(pairs))
	for _, pair := range pairs {
		sp := simplePair{pair.HumanSymbol, pair.MouseSymbol}
		if _, ok := seen[sp]; ok {
			continue
		}
		seen[sp] = struct{}{}
		simple = append(simple, sp)
	}

	buf := &bytes.Buffer{}
	if err := gocsv.Marshal(simple, buf); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.WriteFile(path, buf.Bytes(), 0o644))
}
