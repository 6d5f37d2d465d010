package geneset

import (
	"fmt"
	"strings"
)

// Organism identifies which of the two supported species a record belongs to.
type Organism string

const (
	Human Organism = "Human"
	Mouse Organism = "Mouse"
)

// Polarity is the functional direction a curated source assigns to a gene
// set. It is assigned upstream (by the source configuration) and treated as
// an opaque tag with exactly three legal values from here on.
type Polarity string

const (
	Pro     Polarity = "Pro"
	Anti    Polarity = "Anti"
	General Polarity = "General"
)

// Record is one gene-per-set membership row from a curated source. The same
// (symbol, source) combination may appear many times under different set
// names within one source.
type Record struct {
	Symbol   string   `csv:"gene_symbol"`
	SetName  string   `csv:"gene_set_name"`
	Source   string   `csv:"source"`
	Polarity Polarity `csv:"category"`
	Organism Organism `csv:"organism"`
}

// ParseOrganism accepts the organism column case-insensitively.
func ParseOrganism(s string) (Organism, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return Human, nil
	case "mouse":
		return Mouse, nil
	}

	return "", fmt.Errorf("unknown organism %q (expected Human or Mouse)", s)
}

// ParsePolarity accepts the category column case-insensitively.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pro":
		return Pro, nil
	case "anti":
		return Anti, nil
	case "general":
		return General, nil
	}

	return "", fmt.Errorf("unknown category %q (expected Pro, Anti, or General)", s)
}
