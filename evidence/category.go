package evidence

import "fmt"

// Category is the single functional class assigned to each consolidated
// gene.
type Category string

const (
	ProApoptotic  Category = "Pro-apoptotic"
	AntiApoptotic Category = "Anti-apoptotic"
	Ambiguous     Category = "Ambiguous"
	Unspecified   Category = "Unspecified"
)

// CategoryOrder is the fixed display/sort order used by the per-source
// breakdown.
var CategoryOrder = []Category{ProApoptotic, AntiApoptotic, Ambiguous, Unspecified}

// CategoryRank returns a category's position in CategoryOrder, with unknown
// categories sorting last.
func CategoryRank(c Category) int {
	for i, candidate := range CategoryOrder {
		if candidate == c {
			return i
		}
	}

	return len(CategoryOrder)
}

// classificationRule is one row of the precedence table. The pro and anti
// fields must match the profile exactly; general participates only in the
// final rule.
type classificationRule struct {
	pro, anti       bool
	requiresGeneral bool
	category        Category
}

// classificationRules is the precedence table, evaluated in order with the
// first match winning:
//
//	pro+anti            -> Ambiguous
//	pro only            -> Pro-apoptotic
//	anti only           -> Anti-apoptotic
//	general only        -> Unspecified
var classificationRules = []classificationRule{
	{pro: true, anti: true, category: Ambiguous},
	{pro: true, anti: false, category: ProApoptotic},
	{pro: false, anti: true, category: AntiApoptotic},
	{pro: false, anti: false, requiresGeneral: true, category: Unspecified},
}

// Classify assigns exactly one category and the evidence score to a profile.
// It panics on an empty profile: aggregation never emits one, so reaching
// that state is a programming error rather than a data condition.
func Classify(p *Profile) (Category, int) {
	if p.Empty() {
		panic("evidence: Classify called with an empty profile; profiles must only be created when a record is filed")
	}

	hasPro := len(p.Pro) > 0
	hasAnti := len(p.Anti) > 0
	hasGeneral := len(p.General) > 0

	for _, rule := range classificationRules {
		if rule.pro != hasPro || rule.anti != hasAnti {
			continue
		}
		if rule.requiresGeneral && !hasGeneral {
			continue
		}

		return rule.category, p.Score()
	}

	// Unreachable: the table covers every non-empty combination.
	panic(fmt.Sprintf("evidence: no classification rule matched profile (pro=%v anti=%v general=%v)", hasPro, hasAnti, hasGeneral))
}
