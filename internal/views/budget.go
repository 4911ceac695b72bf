package views

import (
	"sort"

	"tripwise/internal/domain"
)

// TypeTotal accumulates the paid activities of one type within a currency.
type TypeTotal struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CurrencyBudget is the breakdown for a single currency. Totals in
// different currencies are never combined — there is no conversion.
type CurrencyBudget struct {
	Total  float64                              `json:"total"`
	ByType map[domain.ActivityType]*TypeTotal `json:"byType"`
}

// Budget maps currency code to its breakdown. An empty budget (no paid
// activities) is a valid zero state, not an error.
type Budget map[string]*CurrencyBudget

// BuildBudget derives the budget view from the itinerary: paid activities
// carrying a price and currency, grouped by currency then by type.
func BuildBudget(days []domain.Day) Budget {
	b := Budget{}
	for _, d := range days {
		for _, a := range d.Activities {
			if !a.Paid() {
				continue
			}
			cb, ok := b[a.Currency]
			if !ok {
				cb = &CurrencyBudget{ByType: map[domain.ActivityType]*TypeTotal{}}
				b[a.Currency] = cb
			}
			tt, ok := cb.ByType[a.Type]
			if !ok {
				tt = &TypeTotal{}
				cb.ByType[a.Type] = tt
			}
			tt.Total += *a.Price
			tt.Count++
			cb.Total += *a.Price
		}
	}
	return b
}

// Currencies returns the currency codes in lexicographic order, matching
// the display order of the balance view.
func (b Budget) Currencies() []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
