// AngelaMos | 2026
// dto.go

package game

type CreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"max=2000"`
	Category    string  `json:"category" validate:"required"`
	MinBet      float64 `json:"minBet" validate:"required,gte=1"`
	MaxBet      float64 `json:"maxBet" validate:"required,gtfield=MinBet"`
	Active      *bool   `json:"active"`
}

type UpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Category    *string  `json:"category"`
	MinBet      *float64 `json:"minBet" validate:"omitempty,gte=1"`
	MaxBet      *float64 `json:"maxBet"`
	Active      *bool    `json:"active"`
}

// ListFilter narrows the public catalog listing.
type ListFilter struct {
	Category string
	Active   *bool
}
