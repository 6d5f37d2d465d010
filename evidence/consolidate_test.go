package evidence

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/genecensus/apomap/geneset"
)

// The final table sorts by evidence score descending, then by upper-cased
// symbol ascending, with display case preserved.
func TestConsolidateSortOrder(t *testing.T) {
	profiles := make(ProfileMap)
	profiles.GetOrInsert("ZZZ").AddEvidence(geneset.General, "KEGG")
	profiles.GetOrInsert("abc").AddEvidence(geneset.General, "KEGG")
	profiles.GetOrInsert("AAA").AddEvidence(geneset.Pro, "GO_Pro_Human")
	profiles.GetOrInsert("AAA").AddEvidence(geneset.General, "KEGG")

	entries := Consolidate(profiles)

	gotOrder := make([]string, 0, len(entries))
	for _, entry := range entries {
		gotOrder = append(gotOrder, entry.HumanSymbol)
	}

	// AAA has score 2; abc sorts before ZZZ on the upper-cased key while
	// keeping its original case.
	if want := []string{"AAA", "abc", "ZZZ"}; !reflect.DeepEqual(gotOrder, want) {
		t.Errorf("sort order: got %v, want %v", gotOrder, want)
	}
}

// Two symbols that tie on score and on the upper-cased key (a human record
// alongside a mouse-projected one, say) still come out in one fixed order,
// independent of map iteration.
func TestConsolidateCaseTieDeterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		profiles := make(ProfileMap)
		profiles.GetOrInsert("CASP3").AddEvidence(geneset.Pro, "GO_Pro_Human")
		profiles.GetOrInsert("Casp3").AddEvidence(geneset.Pro, "GO_Pro_Mouse")

		entries := Consolidate(profiles)
		if entries[0].HumanSymbol != "CASP3" || entries[1].HumanSymbol != "Casp3" {
			t.Fatalf("run %d: got %s, %s; want CASP3, Casp3", i, entries[0].HumanSymbol, entries[1].HumanSymbol)
		}
	}
}

// The evidence score must equal the size of the source-label union for every
// entry.
func TestEvidenceScoreInvariant(t *testing.T) {
	profiles := make(ProfileMap)
	p := profiles.GetOrInsert("CASP3")
	p.AddEvidence(geneset.Pro, "GO_Pro_Human")
	p.AddEvidence(geneset.Pro, "GO_Pro_Mouse")
	p.AddEvidence(geneset.General, "KEGG")
	p.AddEvidence(geneset.General, "GO_Pro_Human")

	for _, entry := range Consolidate(profiles) {
		if entry.EvidenceScore != len(entry.Sources) {
			t.Errorf("%s: score %d != |sources| %d", entry.HumanSymbol, entry.EvidenceScore, len(entry.Sources))
		}
	}
}

func TestEntriesRoundTrip(t *testing.T) {
	entries := []Entry{
		{HumanSymbol: "TP53", MouseSymbols: SymbolList{"Trp53"}, Category: ProApoptotic, Sources: SymbolList{"GO_Pro_Human", "KEGG"}, EvidenceScore: 2},
		{HumanSymbol: "NOORTH", MouseSymbols: nil, Category: Unspecified, Sources: SymbolList{"Hallmark"}, EvidenceScore: 1},
	}

	path := filepath.Join(t.TempDir(), "consolidated.csv")
	if err := WriteEntries(path, entries); err != nil {
		t.Fatal(err)
	}

	got, err := ReadEntries(path)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got, entries) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, entries)
	}
}

func TestSymbolListContains(t *testing.T) {
	sources := SymbolList{"GO_Pro_Human", "KEGG"}

	if !sources.Contains("GO_") {
		t.Error("expected prefix-family match on GO_")
	}
	if sources.Contains("Reactome") {
		t.Error("unexpected match on Reactome")
	}
}

func TestSummaryMentionsEveryCategory(t *testing.T) {
	profiles := make(ProfileMap)
	profiles.GetOrInsert("TP53").AddEvidence(geneset.Pro, "GO_Pro_Human")

	summary := Summary(Consolidate(profiles))
	for _, category := range CategoryOrder {
		if !strings.Contains(summary, string(category)) {
			t.Errorf("summary omits category %s", category)
		}
	}
}
