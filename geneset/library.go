package geneset

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/cenkalti/backoff/v4"
)

// DefaultLibraryURLs are the Enrichr-style gene-set library endpoints, one
// per organism.
var DefaultLibraryURLs = map[Organism]string{
	Human: "https://maayanlab.cloud/Enrichr",
	Mouse: "https://maayanlab.cloud/ModEnrichr",
}

// LibraryClientConfig configures the gene-set retrieval collaborator.
type LibraryClientConfig struct {
	// BaseURLs maps each organism to its library endpoint. Defaults to
	// DefaultLibraryURLs when nil.
	BaseURLs map[Organism]string

	// MaxRetries bounds the exponential backoff retry on transient fetch
	// failure. 0 means fetch once.
	MaxRetries uint64

	// Timeout applies per fetch attempt.
	Timeout time.Duration
}

// LibraryClient retrieves named gene-set libraries ({set name: [genes]}) over
// HTTP in the GMT text format.
type LibraryClient struct {
	cfg    LibraryClientConfig
	client *http.Client
}

func NewLibraryClient(cfg LibraryClientConfig) *LibraryClient {
	if cfg.BaseURLs == nil {
		cfg.BaseURLs = DefaultLibraryURLs
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &LibraryClient{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// FetchLibrary downloads the named library for one organism and returns the
// mapping from gene-set name to member gene symbols.
func (c *LibraryClient) FetchLibrary(name string, organism Organism) (map[string][]string, error) {
	base, ok := c.cfg.BaseURLs[organism]
	if !ok {
		return nil, fmt.Errorf("no library endpoint configured for organism %s", organism)
	}

	fetchURL := fmt.Sprintf("%s/geneSetLibrary?mode=text&libraryName=%s", base, url.QueryEscape(name))

	var library map[string][]string
	operation := func() error {
		resp, err := c.client.Get(fetchURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("library fetch for %s returned status %d", name, resp.StatusCode)
		}

		library, err = ParseGMT(resp.Body)
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries)
	if err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		log.Printf("Warning: fetching %s (%s): %v; retrying in %s\n", name, organism, err, wait)
	}); err != nil {
		return nil, pfx.Err(err)
	}

	return library, nil
}

// ParseGMT reads the tab-delimited GMT gene-set format: one set per line, the
// set name and a description column followed by member symbols.
func ParseGMT(r io.Reader) (map[string][]string, error) {
	out := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}

		genes := make([]string, 0, len(fields)-2)
		for _, gene := range fields[2:] {
			// Enrichr GMT lines may carry trailing ",1.0" weights.
			gene = strings.TrimSpace(strings.SplitN(gene, ",", 2)[0])
			if gene != "" {
				genes = append(genes, gene)
			}
		}

		out[fields[0]] = genes
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// SetFilter selects gene sets from a library by substring rules over the
// upper-cased set name. All terms in Require must appear; a set matching any
// term in Exclude is dropped.
type SetFilter struct {
	Require []string
	Exclude []string
}

func (f SetFilter) Matches(setName string) bool {
	upper := strings.ToUpper(setName)

	for _, term := range f.Require {
		if !strings.Contains(upper, strings.ToUpper(term)) {
			return false
		}
	}
	for _, term := range f.Exclude {
		if strings.Contains(upper, strings.ToUpper(term)) {
			return false
		}
	}

	return true
}

// FilterSets applies the filter and returns the matching subset of a library.
func FilterSets(library map[string][]string, filter SetFilter) map[string][]string {
	out := make(map[string][]string)
	for name, genes := range library {
		if filter.Matches(name) {
			out[name] = genes
		}
	}

	return out
}

// RecordsFromSets flattens {set name: [genes]} into one Record per gene per
// set, in sorted set-name order so output files are deterministic.
func RecordsFromSets(sets map[string][]string, source string, polarity Polarity, organism Organism) []Record {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]Record, 0)
	for _, name := range names {
		for _, gene := range sets[name] {
			records = append(records, Record{
				Symbol:   gene,
				SetName:  name,
				Source:   source,
				Polarity: polarity,
				Organism: organism,
			})
		}
	}

	return records
}
