package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMode(t *testing.T) {
	t.Run("known mode", func(t *testing.T) {
		cfg, ok := LookupMode("japan")
		assert.True(t, ok)
		assert.Equal(t, "JPY", cfg.Currency)
		assert.Len(t, cfg.Template, 7)
	})

	t.Run("case insensitive", func(t *testing.T) {
		cfg, ok := LookupMode("Paris")
		assert.True(t, ok)
		assert.Equal(t, "EUR", cfg.Currency)
	})

	t.Run("unknown falls back to blank", func(t *testing.T) {
		cfg, ok := LookupMode("mars")
		assert.False(t, ok)
		assert.Equal(t, "blank", cfg.Mode)
		assert.Equal(t, "USD", cfg.Currency)
	})
}

func TestTemplateDays(t *testing.T) {
	t.Run("materializes numbered days with coordinates", func(t *testing.T) {
		cfg, _ := LookupMode("malaysia")

		days := cfg.TemplateDays("", "")
		require.Len(t, days, 7)
		assert.Equal(t, 1, days[0].Number)
		assert.Equal(t, "Kuala Lumpur", days[0].City)
		require.NotNil(t, days[0].Coords)
		assert.Equal(t, 7, days[6].Number)
	})

	t.Run("assigns sequential dates", func(t *testing.T) {
		cfg, _ := LookupMode("paris")

		days := cfg.TemplateDays("2026-06-01", "2026-06-05")
		require.Len(t, days, 5)
		assert.Equal(t, "2026-06-01", days[0].Date)
		assert.Equal(t, "2026-06-05", days[4].Date)
	})

	t.Run("blank yields single empty day", func(t *testing.T) {
		cfg, _ := LookupMode("blank")

		days := cfg.TemplateDays("", "")
		require.Len(t, days, 1)
		assert.Equal(t, "Day 1", days[0].Title)
		assert.Nil(t, days[0].Coords)
	})
}

func TestRouteParams(t *testing.T) {
	t.Run("normalize trims and lowercases", func(t *testing.T) {
		p := RouteParams{Mode: " Japan ", TripID: " abc "}.Normalize()
		assert.Equal(t, "japan", p.Mode)
		assert.Equal(t, "abc", p.TripID)
	})

	t.Run("label fallbacks", func(t *testing.T) {
		assert.Equal(t, "Iceland 🇮🇸", RouteParams{Country: "iceland", CountryLabel: "Iceland 🇮🇸"}.Label())
		assert.Equal(t, "iceland", RouteParams{Country: "iceland"}.Label())
		assert.Equal(t, "Custom Trip", RouteParams{}.Label())
	})
}
