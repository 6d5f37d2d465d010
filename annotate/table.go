package annotate

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/genecensus/apomap"
)

// WriteEntries writes the final annotated gene table.
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

// ReadEntries loads a final annotated gene table.
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
