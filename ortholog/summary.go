package ortholog

import (
	"fmt"
	"strings"
)

// Summary renders the mapping coverage report printed after every
// resolution, successful or degraded.
func (r *Result) Summary() string {
	var b strings.Builder

	perDirection := make(map[Direction]int)
	humanFanout := make(map[string]int)
	mouseFanout := make(map[string]int)
	for _, pair := range r.Pairs {
		perDirection[pair.Source]++
		humanFanout[pair.HumanSymbol]++
		mouseFanout[pair.MouseSymbol]++
	}

	var humanMulti, mouseMulti, humanMax, mouseMax int
	for _, n := range humanFanout {
		if n > 1 {
			humanMulti++
		}
		if n > humanMax {
			humanMax = n
		}
	}
	for _, n := range mouseFanout {
		if n > 1 {
			mouseMulti++
		}
		if n > mouseMax {
			mouseMax = n
		}
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "ORTHOLOGY MAPPING SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "\nTotal ortholog pairs: %d\n", len(r.Pairs))
	fmt.Fprintf(&b, "Duplicate pairs removed: %d\n", r.DuplicatesRemoved)

	fmt.Fprintf(&b, "\nCoverage:\n")
	fmt.Fprintf(&b, "  Human symbols queried: %d\n", r.HumanQueried)
	fmt.Fprintf(&b, "  Human symbols with ortholog clusters: %d (%s)\n", r.HumanWithTargets, percent(r.HumanWithTargets, r.HumanQueried))
	fmt.Fprintf(&b, "  Mouse symbols queried: %d\n", r.MouseQueried)
	fmt.Fprintf(&b, "  Mouse symbols with ortholog clusters: %d (%s)\n", r.MouseWithTargets, percent(r.MouseWithTargets, r.MouseQueried))
	fmt.Fprintf(&b, "  Distinct human symbols in pair table: %d\n", len(humanFanout))
	fmt.Fprintf(&b, "  Distinct mouse symbols in pair table: %d\n", len(mouseFanout))

	fmt.Fprintf(&b, "\nMapping sources:\n")
	for _, direction := range []Direction{HumanToMouse, MouseToHuman} {
		fmt.Fprintf(&b, "  %s: %d pairs\n", direction, perDirection[direction])
	}

	fmt.Fprintf(&b, "\nMapping cardinality:\n")
	fmt.Fprintf(&b, "  Human genes with multiple mouse orthologs: %d (max %d)\n", humanMulti, humanMax)
	fmt.Fprintf(&b, "  Mouse genes with multiple human orthologs: %d (max %d)\n", mouseMulti, mouseMax)

	return b.String()
}

func percent(n, total int) string {
	if total == 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
