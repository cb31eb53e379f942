package dataprocessing

import (
	"sort"
	"strings"

	"mpulse/pkg/contracts/domain"
)

// MaxTopItems caps the ranked top-seller list per merchant.
const MaxTopItems = 3

// registryEntry binds a merchant-identity signature to the grammar that
// understands that merchant's report layout.
type registryEntry struct {
	signature string
	grammar   Grammar
}

// Registry is an ordered mapping from merchant identities to report
// grammars. Entries are checked in registration order; identities that
// match no entry are routed to a fallback grammar that yields no items.
type Registry struct {
	entries  []registryEntry
	fallback Grammar
}

// NewRegistry creates an empty registry with the no-items fallback.
func NewRegistry() *Registry {
	return &Registry{fallback: NoItems}
}

// Register appends a signature/grammar pair. Signatures are matched as
// case-sensitive substrings of the merchant identity, most specific
// entries first.
func (r *Registry) Register(signature string, grammar Grammar) *Registry {
	r.entries = append(r.entries, registryEntry{signature: signature, grammar: grammar})
	return r
}

// Lookup returns the grammar for a merchant identity, falling back to
// the no-items grammar for unknown merchants.
func (r *Registry) Lookup(merchant string) Grammar {
	for _, entry := range r.entries {
		if strings.Contains(merchant, entry.signature) {
			return entry.grammar
		}
	}
	return r.fallback
}

// TopItems parses the report lines with the merchant's grammar, then
// applies the shared ranking rule: stable sort descending by gross
// sales (ties keep extraction order) and truncation to MaxTopItems.
func (r *Registry) TopItems(merchant string, lines []string) []domain.TopItem {
	items := r.Lookup(merchant)(lines)
	return RankItems(items)
}

// RankItems sorts candidates descending by gross sales with a stable
// sort and truncates to MaxTopItems. Returns a non-nil slice so the
// serialized record always carries a list.
func RankItems(items []domain.TopItem) []domain.TopItem {
	ranked := make([]domain.TopItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GrossSales > ranked[j].GrossSales
	})

	if len(ranked) > MaxTopItems {
		ranked = ranked[:MaxTopItems]
	}
	return ranked
}

// DefaultRegistry wires the three known merchant report layouts. The
// pizza identity is the least specific signature and is registered
// last.
func DefaultRegistry() *Registry {
	return NewRegistry().
		Register("MARATHON LIQUORS", ParseItemizedLedger).
		Register("POKE HANA", ParseCategoryTotals).
		Register("Pizza", ParseKeywordRows("Pizza"))
}
