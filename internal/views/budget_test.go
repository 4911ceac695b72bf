package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/domain"
	"tripwise/internal/views"
)

func paidActivity(typ domain.ActivityType, price float64, currency string) domain.Activity {
	return domain.Activity{
		ID:       domain.NewActivityID(),
		Type:     typ,
		Name:     "x",
		Budget:   domain.BudgetPaid,
		Price:    &price,
		Currency: currency,
	}
}

func TestBuildBudget_GroupsByCurrencyAndExcludesFree(t *testing.T) {
	d := domain.NewDay(1, "", "", nil, "")
	d.Activities = []domain.Activity{
		paidActivity(domain.TypeActivity, 100, "USD"),
		paidActivity(domain.TypeHotel, 50, "USD"),
		paidActivity(domain.TypeFood, 20, "EUR"),
		{ID: "free", Name: "walk", Type: domain.TypeActivity, Budget: domain.BudgetFree},
	}

	b := views.BuildBudget([]domain.Day{d})

	require.Len(t, b, 2)
	assert.Equal(t, 150.0, b["USD"].Total)
	assert.Equal(t, 20.0, b["EUR"].Total)
	assert.Equal(t, []string{"EUR", "USD"}, b.Currencies())
}

func TestBuildBudget_TypeBreakdown(t *testing.T) {
	d := domain.NewDay(1, "Paris", "", nil, "")
	d.Activities = []domain.Activity{paidActivity(domain.TypeActivity, 50, "EUR")}

	b := views.BuildBudget([]domain.Day{d})

	require.Contains(t, b, "EUR")
	require.Contains(t, b["EUR"].ByType, domain.TypeActivity)
	assert.Equal(t, 50.0, b["EUR"].ByType[domain.TypeActivity].Total)
	assert.Equal(t, 1, b["EUR"].ByType[domain.TypeActivity].Count)
}

func TestBuildBudget_SumsWithinType(t *testing.T) {
	d := domain.NewDay(1, "", "", nil, "")
	d.Activities = []domain.Activity{
		paidActivity(domain.TypeFood, 12.5, "JPY"),
		paidActivity(domain.TypeFood, 30, "JPY"),
	}

	b := views.BuildBudget([]domain.Day{d})

	assert.Equal(t, 42.5, b["JPY"].ByType[domain.TypeFood].Total)
	assert.Equal(t, 2, b["JPY"].ByType[domain.TypeFood].Count)
}

func TestBuildBudget_EmptyZeroState(t *testing.T) {
	b := views.BuildBudget(nil)
	assert.Empty(t, b)
	assert.Empty(t, b.Currencies())
}

func TestBuildBudget_PaidWithoutCurrencyIgnored(t *testing.T) {
	price := 10.0
	d := domain.NewDay(1, "", "", nil, "")
	d.Activities = []domain.Activity{{
		ID:     "a",
		Type:   domain.TypeActivity,
		Budget: domain.BudgetPaid,
		Price:  &price,
	}}

	b := views.BuildBudget([]domain.Day{d})
	assert.Empty(t, b)
}
