// Package mygene is a batched client for a MyGene.info-style identifier
// resolution service: gene symbol to cross-species ortholog Entrez IDs,
// Entrez ID to symbol, and symbol to Ensembl gene ID.
//
// All lookups are dispatched in batches of a configurable size, with a
// bounded number of batches in flight at once and per-batch retry with
// exponential backoff. A batch that still fails after retries is logged with
// its offset and size and skipped; callers see reduced coverage rather than
// an error.
package mygene

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const DefaultBaseURL = "https://mygene.info/v3"

// Config carries the knobs for the lookup client. The zero value is usable.
type Config struct {
	BaseURL string

	// BatchSize is the per-request item limit. Must remain correct for any
	// positive value, including 1.
	BatchSize int

	// Concurrency caps the number of batches in flight at once, to respect
	// the service's rate limit.
	Concurrency int

	// MaxRetries bounds the exponential backoff per batch. 0 means a single
	// attempt per batch.
	MaxRetries uint64

	// Timeout applies per HTTP request. A timed-out batch takes the
	// skip-batch degradation path like any other batch failure.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.BatchSize < 1 {
		c.BatchSize = 500
	}
	if c.Concurrency < 1 {
		c.Concurrency = 3
	}
	if c.Timeout == 0 {
		c.Timeout = time.Minute
	}

	return c
}

type homologeneKey struct {
	symbol string
	from   Species
	to     Species
}

type homologeneResult struct {
	symbol    string
	targetIDs []int64
}

type ensemblKey struct {
	symbol  string
	species Species
}

// Client performs the batched lookups. It is safe for use by a single
// pipeline run; the internal caches deduplicate repeat lookups for symbols
// that appear in multiple source files.
type Client struct {
	cfg    Config
	client *http.Client

	mu              sync.Mutex
	homologeneCache map[homologeneKey]homologeneResult
	ensemblCache    map[ensemblKey]string
}

func New(cfg Config) *Client {
	cfg = cfg.withDefaults()

	return &Client{
		cfg:             cfg,
		client:          &http.Client{Timeout: cfg.Timeout},
		homologeneCache: make(map[homologeneKey]homologeneResult),
		ensemblCache:    make(map[ensemblKey]string),
	}
}

// runBatches slices n items into batches and dispatches up to
// cfg.Concurrency of them at once. Each batch is retried with exponential
// backoff; a batch whose retries are exhausted is logged and skipped. The
// number of skipped batches is returned.
func (c *Client) runBatches(n int, what string, fn func(lo, hi int) error) (skipped int) {
	sem := make(chan struct{}, c.cfg.Concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for lo := 0; lo < n; lo += c.cfg.BatchSize {
		hi := lo + c.cfg.BatchSize
		if hi > n {
			hi = n
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(lo, hi int) {
			defer wg.Done()
			defer func() { <-sem }()

			operation := func() error { return fn(lo, hi) }
			policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries)

			if err := backoff.Retry(operation, policy); err != nil {
				log.Printf("Warning: %s batch at offset %d (size %d) failed and was skipped: %v\n", what, lo, hi-lo, err)
				mu.Lock()
				skipped++
				mu.Unlock()
			}
		}(lo, hi)
	}

	wg.Wait()

	return skipped
}

// postForm issues one POST to the service and decodes the JSON array reply.
func (c *Client) postForm(path string, form url.Values, v interface{}) error {
	resp, err := c.client.PostForm(c.cfg.BaseURL+path, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// QueryHomologene looks up ortholog Entrez IDs in the target species for each
// input symbol. The returned map is keyed by the symbol the service reports
// (which may differ in case from the query); symbols with no ortholog cluster
// in the target species are absent from the result.
func (c *Client) QueryHomologene(symbols []string, from, to Species) map[string][]int64 {
	// Serve repeats from the cache so a symbol appearing in many source
	// files is looked up once.
	pending := make([]string, 0, len(symbols))
	out := make(map[string][]int64)

	c.mu.Lock()
	for _, symbol := range symbols {
		if cached, ok := c.homologeneCache[homologeneKey{symbol, from, to}]; ok {
			if len(cached.targetIDs) > 0 {
				out[cached.symbol] = cached.targetIDs
			}
			continue
		}
		pending = append(pending, symbol)
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return out
	}

	targetTaxon := int64(to.TaxonID())
	var mu sync.Mutex

	c.runBatches(len(pending), "homologene query", func(lo, hi int) error {
		batch := pending[lo:hi]

		form := url.Values{
			"q":       {strings.Join(batch, ",")},
			"scopes":  {"symbol"},
			"fields":  {"symbol,homologene"},
			"species": {strconv.Itoa(from.TaxonID())},
		}

		hits := []queryHit{}
		if err := c.postForm("/query", form, &hits); err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()

		resolved := make(map[string]homologeneResult, len(batch))
		for _, hit := range hits {
			if hit.NotFound {
				continue
			}

			symbol := hit.Symbol
			if symbol == "" {
				symbol = hit.Query
			}

			var targetIDs []int64
			if hit.Homologene != nil {
				for _, gene := range hit.Homologene.Genes {
					if len(gene) >= 2 && gene[0] == targetTaxon {
						targetIDs = append(targetIDs, gene[1])
					}
				}
			}

			resolved[hit.Query] = homologeneResult{symbol: symbol, targetIDs: targetIDs}
			if len(targetIDs) > 0 {
				out[symbol] = append(out[symbol], targetIDs...)
			}
		}

		c.mu.Lock()
		for _, query := range batch {
			// Negative results are cached too, so unresolvable symbols are
			// not re-queried by later stages.
			c.homologeneCache[homologeneKey{query, from, to}] = resolved[query]
		}
		c.mu.Unlock()

		return nil
	})

	return out
}

// ResolveEntrez converts numeric Entrez IDs to symbols. IDs the service
// cannot resolve are absent from the result; they are not an error.
func (c *Client) ResolveEntrez(ids []int64, species Species) map[int64]string {
	out := make(map[int64]string)
	if len(ids) == 0 {
		return out
	}

	var mu sync.Mutex

	c.runBatches(len(ids), "entrez resolution", func(lo, hi int) error {
		batch := ids[lo:hi]

		idStrings := make([]string, 0, len(batch))
		for _, id := range batch {
			idStrings = append(idStrings, strconv.FormatInt(id, 10))
		}

		form := url.Values{
			"ids":     {strings.Join(idStrings, ",")},
			"fields":  {"symbol"},
			"species": {strconv.Itoa(species.TaxonID())},
		}

		hits := []geneHit{}
		if err := c.postForm("/gene", form, &hits); err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()

		for _, hit := range hits {
			if hit.NotFound || hit.Symbol == "" {
				continue
			}

			idString := hit.Query
			if idString == "" {
				idString = hit.ID
			}

			id, err := strconv.ParseInt(idString, 10, 64)
			if err != nil {
				continue
			}

			out[id] = hit.Symbol
		}

		return nil
	})

	return out
}

// EnsemblIDs looks up the Ensembl gene ID for each symbol, keyed by the query
// symbol. Missing mappings are absent from the result.
func (c *Client) EnsemblIDs(symbols []string, species Species) map[string]string {
	pending := make([]string, 0, len(symbols))
	out := make(map[string]string)

	c.mu.Lock()
	for _, symbol := range symbols {
		if cached, ok := c.ensemblCache[ensemblKey{symbol, species}]; ok {
			if cached != "" {
				out[symbol] = cached
			}
			continue
		}
		pending = append(pending, symbol)
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return out
	}

	var mu sync.Mutex

	c.runBatches(len(pending), "ensembl lookup", func(lo, hi int) error {
		batch := pending[lo:hi]

		form := url.Values{
			"q":       {strings.Join(batch, ",")},
			"scopes":  {"symbol"},
			"fields":  {"ensembl.gene"},
			"species": {strconv.Itoa(species.TaxonID())},
		}

		hits := []queryHit{}
		if err := c.postForm("/query", form, &hits); err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()

		resolved := make(map[string]string, len(batch))
		for _, hit := range hits {
			if hit.NotFound || hit.Ensembl.Gene == "" {
				continue
			}

			resolved[hit.Query] = hit.Ensembl.Gene
			out[hit.Query] = hit.Ensembl.Gene
		}

		c.mu.Lock()
		for _, query := range batch {
			c.ensemblCache[ensemblKey{query, species}] = resolved[query]
		}
		c.mu.Unlock()

		return nil
	})

	return out
}
