package mygene

import "encoding/json"

// Species selects the taxon used for lookups. Exactly two are supported.
type Species string

const (
	Human Species = "human"
	Mouse Species = "mouse"
)

// TaxonID returns the NCBI taxonomy ID the service expects.
func (s Species) TaxonID() int {
	if s == Mouse {
		return 10090
	}

	return 9606
}

// queryHit is one element of the /query response array.
type queryHit struct {
	Query      string       `json:"query"`
	NotFound   bool         `json:"notfound"`
	Symbol     string       `json:"symbol"`
	Homologene *homologene  `json:"homologene"`
	Ensembl    ensemblField `json:"ensembl"`
}

// homologene is the service's ortholog cluster: Genes entries are
// [taxonID, entrezID] pairs.
type homologene struct {
	ID    int64     `json:"id"`
	Genes [][]int64 `json:"genes"`
}

// ensemblField tolerates the service returning either a single object or an
// array of objects for the ensembl field; the first gene ID wins.
type ensemblField struct {
	Gene string
}

func (e *ensemblField) UnmarshalJSON(data []byte) error {
	var single struct {
		Gene string `json:"gene"`
	}
	if err := json.Unmarshal(data, &single); err == nil {
		e.Gene = single.Gene
		return nil
	}

	var many []struct {
		Gene string `json:"gene"`
	}
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if len(many) > 0 {
		e.Gene = many[0].Gene
	}

	return nil
}

// geneHit is one element of the /gene response array.
type geneHit struct {
	Query    string `json:"query"`
	ID       string `json:"_id"`
	NotFound bool   `json:"notfound"`
	Symbol   string `json:"symbol"`
}
