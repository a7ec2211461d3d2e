// AngelaMos | 2026
// entity.go

package game

import (
	"strings"
	"time"

	"github.com/casinoremedial/backend/internal/core"
)

// Categories the catalog recognizes. The labels are user-facing and match
// what the frontend renders.
const (
	CategoryMesa        = "Mesa"
	CategoryElectronico = "Electrónico"
	CategoryLoteria     = "Lotería"
	CategoryCartas      = "Cartas"
	CategoryDados       = "Dados"
	CategoryOtros       = "Otros"
)

var Categories = []string{
	CategoryMesa,
	CategoryElectronico,
	CategoryLoteria,
	CategoryCartas,
	CategoryDados,
	CategoryOtros,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Game is one catalog entry. Name is unique across the catalog.
type Game struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	MinBet      float64   `db:"min_bet" json:"minBet"`
	MaxBet      float64   `db:"max_bet" json:"maxBet"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate checks the catalog invariants before any store mutation.
func (g *Game) Validate() error {
	var errs core.FieldErrors

	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, core.FieldError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !ValidCategory(g.Category) {
		errs = append(errs, core.FieldError{
			Field: "category",
			Message: "category must be one of: " +
				strings.Join(Categories, ", "),
		})
	}

	if g.MinBet < 1 {
		errs = append(errs, core.FieldError{
			Field:   "minBet",
			Message: "minBet must be at least 1",
		})
	}

	if g.MaxBet <= g.MinBet {
		errs = append(errs, core.FieldError{
			Field:   "maxBet",
			Message: "maxBet must be greater than minBet",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
