package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/finance"
)

// Rule scores one aspect of a transaction/invoice pairing. It returns the
// points awarded, a human-readable reason for the audit trail, and whether
// the rule fired at all. Points may be negative for penalty rules.
type Rule struct {
	Name  string
	Score func(txn finance.ChannelTransaction, invoice finance.InvoiceRecord) (int, string, bool)
}

// DefaultRules returns the standard rule list in evaluation order. Order
// matters only for the reason list; the points are summed regardless.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "amount", Score: amountCloseness},
		{Name: "date", Score: dateProximity},
		{Name: "name", Score: nameSimilarity},
		{Name: "brand", Score: brandMismatchPenalty},
	}
}

// Relative-difference bands for the amount rule
var (
	amountBandTight = decimal.NewFromFloat(0.01)
	amountBandNear  = decimal.NewFromFloat(0.05)
	amountBandLoose = decimal.NewFromFloat(0.10)
)

// amountCloseness awards up to 60 points by relative difference between
// the two amounts, measured against the larger magnitude
func amountCloseness(txn finance.ChannelTransaction, invoice finance.InvoiceRecord) (int, string, bool) {
	if txn.Total.Equal(invoice.Amount) {
		return 60, fmt.Sprintf("amount exact match (%s)", txn.Total.StringFixed(2)), true
	}

	base := decimal.Max(txn.Total.Abs(), invoice.Amount.Abs())
	if base.IsZero() {
		return 0, "", false
	}
	diff := txn.Total.Sub(invoice.Amount).Abs().Div(base)

	switch {
	case diff.LessThanOrEqual(amountBandTight):
		return 50, fmt.Sprintf("amount within 1%% (%s vs %s)", txn.Total.StringFixed(2), invoice.Amount.StringFixed(2)), true
	case diff.LessThanOrEqual(amountBandNear):
		return 30, fmt.Sprintf("amount within 5%% (%s vs %s)", txn.Total.StringFixed(2), invoice.Amount.StringFixed(2)), true
	case diff.LessThanOrEqual(amountBandLoose):
		return 15, fmt.Sprintf("amount within 10%% (%s vs %s)", txn.Total.StringFixed(2), invoice.Amount.StringFixed(2)), true
	}
	return 0, "", false
}

// dateProximity awards up to 25 points by calendar-day distance between
// the transaction date and the invoice issue date
func dateProximity(txn finance.ChannelTransaction, invoice finance.InvoiceRecord) (int, string, bool) {
	txnDay := finance.DayOf(txn.OccurredAt)
	invoiceDay := finance.DayOf(invoice.IssuedAt)

	days := int(txnDay.Sub(invoiceDay).Hours() / 24)
	if days < 0 {
		days = -days
	}

	switch {
	case days == 0:
		return 25, "same day", true
	case days <= 3:
		return 20, fmt.Sprintf("%d days apart", days), true
	case days <= 7:
		return 15, fmt.Sprintf("%d days apart", days), true
	case days <= 14:
		return 10, fmt.Sprintf("%d days apart", days), true
	case days <= 30:
		return 5, fmt.Sprintf("%d days apart", days), true
	}
	return 0, "", false
}

// nameSimilarity awards up to 15 points for counterparty name agreement:
// exact match, substring containment either direction, or a shared token
// longer than two characters
func nameSimilarity(txn finance.ChannelTransaction, invoice finance.InvoiceRecord) (int, string, bool) {
	left := normalizeName(txn.CounterpartyName)
	right := normalizeName(invoice.CounterpartyName)
	if left == "" || right == "" {
		return 0, "", false
	}

	if left == right {
		return 15, fmt.Sprintf("counterparty exact match (%q)", invoice.CounterpartyName), true
	}
	if strings.Contains(left, right) || strings.Contains(right, left) {
		return 10, fmt.Sprintf("counterparty containment (%q / %q)", txn.CounterpartyName, invoice.CounterpartyName), true
	}
	if token, ok := sharedToken(left, right); ok {
		return 5, fmt.Sprintf("counterparty shares token %q", token), true
	}
	return 0, "", false
}

// brandMismatchPenalty subtracts 40 points when the two records carry
// different brand tags. Brand tagging is itself fallible, so a mismatch
// demotes the pair instead of excluding it.
func brandMismatchPenalty(txn finance.ChannelTransaction, invoice finance.InvoiceRecord) (int, string, bool) {
	if txn.Brand.Normalize() == invoice.Brand.Normalize() {
		return 0, "", false
	}
	return -40, fmt.Sprintf("warning: brand mismatch (%s vs %s)", txn.Brand, invoice.Brand), true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// sharedToken reports the first token longer than two characters that
// appears in both normalized names
func sharedToken(left, right string) (string, bool) {
	for _, token := range strings.FieldsFunc(left, isNameSeparator) {
		if len(token) <= 2 {
			continue
		}
		if strings.Contains(right, token) {
			return token, true
		}
	}
	return "", false
}

func isNameSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '.', ',', '-', '_', '/', '&', '(', ')':
		return true
	}
	return false
}
