package reconcile

import (
	"sort"

	"github.com/google/uuid"

	"github.com/finboard/backend/internal/domain/finance"
)

// MatchCandidate is one scored transaction/invoice pairing. Reasons are
// ordered by rule evaluation and kept for human audit.
type MatchCandidate struct {
	Transaction finance.ChannelTransaction `json:"transaction"`
	Invoice     finance.InvoiceRecord      `json:"invoice"`
	Confidence  int                        `json:"confidence"`
	Reasons     []string                   `json:"reasons"`
}

// Matcher scores transaction/invoice pairs against an ordered rule list
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher with the given rules, defaulting to the
// standard rule list when none are supplied
func NewMatcher(rules ...Rule) *Matcher {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules}
}

// Score evaluates every rule against one pair and sums the points. The
// total is floored at zero; penalty rules demote, they never exclude.
func (m *Matcher) Score(txn finance.ChannelTransaction, invoice finance.InvoiceRecord) MatchCandidate {
	candidate := MatchCandidate{Transaction: txn, Invoice: invoice}
	for _, rule := range m.rules {
		points, reason, ok := rule.Score(txn, invoice)
		if !ok {
			continue
		}
		candidate.Confidence += points
		candidate.Reasons = append(candidate.Reasons, reason)
	}
	if candidate.Confidence < 0 {
		candidate.Confidence = 0
	}
	return candidate
}

// ScoreAll scores the full cross product of transactions and invoices,
// dropping candidates below minConfidence. The result is sorted by
// confidence descending, then by transaction ID for a stable order.
func (m *Matcher) ScoreAll(txns []finance.ChannelTransaction, invoices []finance.InvoiceRecord, minConfidence int) []MatchCandidate {
	var candidates []MatchCandidate
	for _, txn := range txns {
		for _, invoice := range invoices {
			candidate := m.Score(txn, invoice)
			if candidate.Confidence < minConfidence {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].Transaction.ID.String() < candidates[j].Transaction.ID.String()
	})
	return candidates
}

// GroupBestMatches keeps the single highest-confidence candidate per
// transaction. The input set stays available for review; this only picks
// each transaction's best suggestion.
func GroupBestMatches(candidates []MatchCandidate) []MatchCandidate {
	best := make(map[uuid.UUID]MatchCandidate)
	order := make([]uuid.UUID, 0, len(candidates))

	for _, candidate := range candidates {
		id := candidate.Transaction.ID
		current, seen := best[id]
		if !seen {
			order = append(order, id)
		}
		if !seen || candidate.Confidence > current.Confidence {
			best[id] = candidate
		}
	}

	out := make([]MatchCandidate, 0, len(best))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out
}
