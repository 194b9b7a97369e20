package bootgen

import (
	"strconv"
	"strings"
)

// reservedAliases are bound by the fixed requires of the bootstrap file.
var reservedAliases = []string{"boot", "str", "path"}

// baseAlias turns a namespace into a symbol usable as a require alias by
// replacing '.', '-', '/' and any other character outside [A-Za-z0-9_]
// with '_'. Distinct namespaces can share a base alias ("a.b" and "a_b"),
// which aliasTable resolves.
func baseAlias(ns string) string {
	var b strings.Builder
	for _, r := range ns {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	alias := b.String()
	if alias == "" {
		return "plugin"
	}
	if alias[0] >= '0' && alias[0] <= '9' {
		alias = "p_" + alias
	}
	return alias
}

// aliasTable assigns aliases to namespaces in first-seen order. The same
// namespace always gets the same alias; a namespace whose base alias is
// already taken gets the first free numeric suffix, so no two namespaces
// in one table ever share an alias.
type aliasTable struct {
	byNS  map[string]string
	taken map[string]bool
}

func newAliasTable() *aliasTable {
	t := &aliasTable{
		byNS:  make(map[string]string),
		taken: make(map[string]bool),
	}
	for _, a := range reservedAliases {
		t.taken[a] = true
	}
	return t
}

// alias returns the alias for ns and whether ns was seen before.
func (t *aliasTable) alias(ns string) (string, bool) {
	if a, ok := t.byNS[ns]; ok {
		return a, true
	}
	base := baseAlias(ns)
	a := base
	for n := 2; t.taken[a]; n++ {
		a = base + "_" + strconv.Itoa(n)
	}
	t.taken[a] = true
	t.byNS[ns] = a
	return a, false
}
