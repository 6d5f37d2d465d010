package geneset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParsePolarity(t *testing.T) {
	cases := map[string]Polarity{
		"Pro":     Pro,
		"anti":    Anti,
		"GENERAL": General,
	}

	for input, want := range cases {
		got, err := ParsePolarity(input)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%q: got %s, want %s", input, got, want)
		}
	}

	if _, err := ParsePolarity("sideways"); err == nil {
		t.Error("expected an error for an illegal polarity value")
	}
}

func TestParseOrganism(t *testing.T) {
	if got, err := ParseOrganism(" human "); err != nil || got != Human {
		t.Errorf("got %s, %v", got, err)
	}
	if _, err := ParseOrganism("rat"); err == nil {
		t.Error("expected an error for an unsupported organism")
	}
}

func TestLoadSourceFileStampsLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "human_go_pro.csv")
	contents := "gene_symbol,gene_set_name,source,category,organism\n" +
		"TP53,GOBP_POSITIVE_REGULATION_OF_APOPTOTIC_PROCESS,GO_BP,Pro,Human\n" +
		"BAX,GOBP_POSITIVE_REGULATION_OF_APOPTOTIC_PROCESS,GO_BP,Pro,Human\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadSourceFile(SourceFile{Label: "GO_Pro_Human", Path: path})
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("record count: got %d, want 2", len(records))
	}
	for _, record := range records {
		if record.Source != "GO_Pro_Human" {
			t.Errorf("source label: got %s, want GO_Pro_Human", record.Source)
		}
		if record.Polarity != Pro || record.Organism != Human {
			t.Errorf("record not normalized: %+v", record)
		}
	}
}

func TestLoadSourceFileTabDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mouse_go_anti.tsv")
	contents := "gene_symbol\tgene_set_name\tsource\tcategory\torganism\n" +
		"Bcl2\tGOBP_NEGATIVE_REGULATION_OF_APOPTOTIC_PROCESS\tGO_BP\tAnti\tMouse\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadSourceFile(SourceFile{Label: "GO_Anti_Mouse", Path: path})
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 || records[0].Symbol != "Bcl2" {
		t.Errorf("got %+v", records)
	}
}

// A raw table served over HTTP loads the same way a local one does.
func TestLoadSourceFileFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gene_symbol,gene_set_name,source,category,organism\n" +
			"CASP3,KEGG_APOPTOSIS,KEGG,General,Human\n"))
	}))
	defer server.Close()

	records, err := LoadSourceFile(SourceFile{Label: "KEGG", Path: server.URL + "/kegg_apoptosis.csv"})
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 || records[0].Symbol != "CASP3" || records[0].Source != "KEGG" {
		t.Errorf("got %+v", records)
	}
}

func TestSymbolsByOrganism(t *testing.T) {
	records := []Record{
		{Symbol: "TP53", Organism: Human},
		{Symbol: "BAX", Organism: Human},
		{Symbol: "TP53", Organism: Human},
		{Symbol: "Trp53", Organism: Mouse},
	}

	human, mouse := SymbolsByOrganism(records)

	if want := []string{"BAX", "TP53"}; !reflect.DeepEqual(human, want) {
		t.Errorf("human symbols: got %v, want %v", human, want)
	}
	if want := []string{"Trp53"}; !reflect.DeepEqual(mouse, want) {
		t.Errorf("mouse symbols: got %v, want %v", mouse, want)
	}
}

func TestParseGMT(t *testing.T) {
	gmt := "KEGG_APOPTOSIS\thttp://example.invalid\tTP53\tBAX\tCASP3,1.0\n" +
		"\n" +
		"SHORT_LINE\tdescription-only\n" +
		"HALLMARK_APOPTOSIS\tdesc\tBCL2\n"

	library, err := ParseGMT(strings.NewReader(gmt))
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"TP53", "BAX", "CASP3"}; !reflect.DeepEqual(library["KEGG_APOPTOSIS"], want) {
		t.Errorf("KEGG_APOPTOSIS: got %v, want %v", library["KEGG_APOPTOSIS"], want)
	}
	if _, ok := library["SHORT_LINE"]; ok {
		t.Error("a line without member genes should be skipped")
	}
	if len(library) != 2 {
		t.Errorf("library size: got %d, want 2", len(library))
	}
}

func TestSetFilter(t *testing.T) {
	filter := SetFilter{Require: []string{"POSITIVE", "APOPTO"}}

	if !filter.Matches("GOBP_Positive_Regulation_Of_Apoptotic_Process") {
		t.Error("expected case-insensitive match")
	}
	if filter.Matches("GOBP_NEGATIVE_REGULATION_OF_APOPTOTIC_PROCESS") {
		t.Error("unexpected match without POSITIVE")
	}

	excluding := SetFilter{Require: []string{"APOPTO"}, Exclude: []string{"NEURON"}}
	if excluding.Matches("GOBP_NEURON_APOPTOTIC_PROCESS") {
		t.Error("exclude term should drop the set")
	}
}

func TestRecordsFromSetsDeterministic(t *testing.T) {
	sets := map[string][]string{
		"B_SET": {"BAX"},
		"A_SET": {"TP53", "CASP3"},
	}

	records := RecordsFromSets(sets, "KEGG", General, Human)

	gotOrder := make([]string, 0, len(records))
	for _, record := range records {
		gotOrder = append(gotOrder, record.SetName+"/"+record.Symbol)
	}

	want := []string{"A_SET/TP53", "A_SET/CASP3", "B_SET/BAX"}
	if !reflect.DeepEqual(gotOrder, want) {
		t.Errorf("order: got %v, want %v", gotOrder, want)
	}
}
