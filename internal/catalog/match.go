package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mark3labs/mirrorbook/internal/locale"
)

// maxMatchDistance is the largest edit distance Match accepts for a fuzzy hit.
const maxMatchDistance = 3

// Match resolves free text to an option: exact id first, then a
// case-insensitive name in any language, then the closest name in lang.
func (c *Catalog) Match(cat Category, query string, lang locale.Language) (Option, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Option{}, false
	}
	if o, ok := c.Lookup(cat, q); ok {
		return o, true
	}

	opts := c.options[cat]
	for _, o := range opts {
		for _, name := range o.Name {
			if strings.EqualFold(name, q) {
				return o, true
			}
		}
	}

	best, bestDist := -1, maxMatchDistance+1
	lower := strings.ToLower(q)
	for i, o := range opts {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(o.Name.Get(lang)))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Option{}, false
	}
	return opts[best], true
}
