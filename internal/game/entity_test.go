// AngelaMos | 2026
// entity_test.go

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casinoremedial/backend/internal/core"
)

func validGame() *Game {
	return &Game{
		Name:        "Ruleta Europea",
		Description: "Ruleta de un solo cero",
		Category:    CategoryMesa,
		MinBet:      5,
		MaxBet:      500,
		Active:      true,
	}
}

func TestGameValidateAccepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *Game)
	}{
		{"valid game", func(g *Game) {}},
		{"minimum bet floor", func(g *Game) { g.MinBet = 1; g.MaxBet = 2 }},
		{"accented category", func(g *Game) { g.Category = CategoryElectronico }},
		{"fallback category", func(g *Game) { g.Category = CategoryOtros }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGame()
			tt.mutate(g)
			assert.NoError(t, g.Validate())
		})
	}
}

func TestGameValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *Game)
		field  string
	}{
		{"empty name", func(g *Game) { g.Name = " " }, "name"},
		{"unknown category", func(g *Game) { g.Category = "Slots" }, "category"},
		{"zero min bet", func(g *Game) { g.MinBet = 0 }, "minBet"},
		{"max equals min", func(g *Game) { g.MaxBet = g.MinBet }, "maxBet"},
		{"max below min", func(g *Game) { g.MaxBet = g.MinBet - 1 }, "maxBet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGame()
			tt.mutate(g)

			err := g.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrValidation)

			var fieldErrs core.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)

			found := false
			for _, fe := range fieldErrs {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a failure on field %q", tt.field)
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("mesa"))
	assert.False(t, ValidCategory(""))
}
