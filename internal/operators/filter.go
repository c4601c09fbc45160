package operators

import "strings"

type FilterOptions struct {
	Rarities  []int  `json:"rarities"`
	FreeWords string `json:"q"`
}

// Filter returns matching operators sorted by name. Every free word must
// appear in the English or Chinese name.
func Filter(r Roster, opt FilterOptions) []Operator {
	words := strings.Fields(strings.ToLower(opt.FreeWords))

	var out []Operator
	for _, name := range r.Names() {
		op := r[name]
		if len(opt.Rarities) > 0 {
			matched := false
			for _, s := range opt.Rarities {
				if op.Rarity == s {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(words) > 0 {
			hay := strings.ToLower(op.Name + " " + op.NameCN)
			ok := true
			for _, w := range words {
				if !strings.Contains(hay, w) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}
