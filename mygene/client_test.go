package mygene

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
)

func TestSpeciesTaxonID(t *testing.T) {
	if Human.TaxonID() != 9606 || Mouse.TaxonID() != 10090 {
		t.Errorf("taxon ids: got %d/%d", Human.TaxonID(), Mouse.TaxonID())
	}
}

// The service answers /query with one hit per requested symbol, carrying a
// homologene cluster with one mouse entry.
func homologeneHandler(t *testing.T, requests *int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)

		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}

		var hits []map[string]interface{}
		for i, symbol := range strings.Split(r.Form.Get("q"), ",") {
			hits = append(hits, map[string]interface{}{
				"query":  symbol,
				"symbol": symbol,
				"homologene": map[string]interface{}{
					"id":    100 + i,
					"genes": [][]int64{{9606, int64(1000 + i)}, {10090, int64(2000 + i)}},
				},
			})
		}

		json.NewEncoder(w).Encode(hits)
	}
}

// Batching must remain correct for any positive batch size, including 1.
func TestQueryHomologeneBatchSizeOne(t *testing.T) {
	var requests int64
	server := httptest.NewServer(homologeneHandler(t, &requests))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, BatchSize: 1, Concurrency: 2})

	got := client.QueryHomologene([]string{"TP53", "BAX", "CASP3"}, Human, Mouse)

	if len(got) != 3 {
		t.Fatalf("result count: got %d, want 3", len(got))
	}
	if atomic.LoadInt64(&requests) != 3 {
		t.Errorf("request count: got %d, want 3 (one per batch)", requests)
	}
	for symbol, ids := range got {
		if len(ids) != 1 {
			t.Errorf("%s: got %d target ids, want the single mouse entry", symbol, len(ids))
		}
	}
}

// A symbol already looked up must be served from the cache, not re-queried.
func TestQueryHomologeneCacheDedup(t *testing.T) {
	var requests int64
	server := httptest.NewServer(homologeneHandler(t, &requests))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, BatchSize: 10, Concurrency: 1})

	first := client.QueryHomologene([]string{"TP53"}, Human, Mouse)
	second := client.QueryHomologene([]string{"TP53"}, Human, Mouse)

	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs from the original lookup")
	}
	if atomic.LoadInt64(&requests) != 1 {
		t.Errorf("request count: got %d, want 1 (second call served from cache)", requests)
	}
}

// A batch that keeps failing is skipped; the surviving batches still
// contribute results.
func TestFailedBatchSkipped(t *testing.T) {
	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)

		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}

		if strings.Contains(r.Form.Get("q"), "BROKEN") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		homologeneHandler(t, new(int64))(w, r)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, BatchSize: 1, Concurrency: 1, MaxRetries: 1})

	got := client.QueryHomologene([]string{"BROKEN", "TP53"}, Human, Mouse)

	if len(got) != 1 {
		t.Fatalf("result count: got %d, want 1 (failed batch skipped)", len(got))
	}
	if _, ok := got["TP53"]; !ok {
		t.Error("surviving batch result missing")
	}
}

func TestResolveEntrez(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}

		var hits []map[string]interface{}
		for _, id := range strings.Split(r.Form.Get("ids"), ",") {
			if id == "99" {
				hits = append(hits, map[string]interface{}{"query": id, "notfound": true})
				continue
			}
			hits = append(hits, map[string]interface{}{"query": id, "symbol": "SYM" + id})
		}

		json.NewEncoder(w).Encode(hits)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, BatchSize: 2, Concurrency: 1})

	got := client.ResolveEntrez([]int64{1, 2, 99}, Mouse)

	want := map[int64]string{1: "SYM1", 2: "SYM2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// The ensembl field arrives as either a single object or an array; the first
// gene ID wins in the array case.
func TestEnsemblIDsMixedShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}

		var hits []json.RawMessage
		for _, symbol := range strings.Split(r.Form.Get("q"), ",") {
			switch symbol {
			case "SINGLE":
				hits = append(hits, json.RawMessage(`{"query":"SINGLE","ensembl":{"gene":"ENSG01"}}`))
			case "MANY":
				hits = append(hits, json.RawMessage(`{"query":"MANY","ensembl":[{"gene":"ENSG02"},{"gene":"ENSG03"}]}`))
			default:
				hits = append(hits, json.RawMessage(fmt.Sprintf(`{"query":%q,"notfound":true}`, symbol)))
			}
		}

		json.NewEncoder(w).Encode(hits)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, BatchSize: 10, Concurrency: 1})

	got := client.EnsemblIDs([]string{"SINGLE", "MANY", "MISSING"}, Human)

	want := map[string]string{"SINGLE": "ENSG01", "MANY": "ENSG02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	mapped := make([]string, 0, len(got))
	for symbol := range got {
		mapped = append(mapped, symbol)
	}
	sort.Strings(mapped)
	if want := []string{"MANY", "SINGLE"}; !reflect.DeepEqual(mapped, want) {
		t.Errorf("mapped symbols: got %v, want %v", mapped, want)
	}
}
