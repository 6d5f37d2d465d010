package ortholog

// Index is the bidirectional lookup derived once from a pair set.
//
// The human-to-mouse side is many-valued. The mouse-to-human side is
// collapsed to a single value per mouse symbol, last-write-wins in pair
// order: if several human symbols claim the same mouse ortholog, only the
// last one survives in the reverse lookup. This is a known lossy
// simplification of the many-to-many pair table.
type Index struct {
	humanToMouse map[string][]string
	mouseToHuman map[string]string
}

// BuildIndex constructs the bidirectional lookup from pairs, in order.
func BuildIndex(pairs []Pair) *Index {
	idx := &Index{
		humanToMouse: make(map[string][]string),
		mouseToHuman: make(map[string]string),
	}

	for _, pair := range pairs {
		idx.humanToMouse[pair.HumanSymbol] = append(idx.humanToMouse[pair.HumanSymbol], pair.MouseSymbol)
		idx.mouseToHuman[pair.MouseSymbol] = pair.HumanSymbol
	}

	return idx
}

// MouseOrthologs returns every mouse symbol paired with the human symbol.
func (idx *Index) MouseOrthologs(humanSymbol string) []string {
	return idx.humanToMouse[humanSymbol]
}

// HumanOrtholog returns the (single) human symbol for a mouse symbol.
func (idx *Index) HumanOrtholog(mouseSymbol string) (string, bool) {
	humanSymbol, ok := idx.mouseToHuman[mouseSymbol]
	return humanSymbol, ok
}

// HumanCount is the number of distinct human symbols with orthologs.
func (idx *Index) HumanCount() int { return len(idx.humanToMouse) }

// MouseCount is the number of distinct mouse symbols in the reverse lookup.
func (idx *Index) MouseCount() int { return len(idx.mouseToHuman) }
