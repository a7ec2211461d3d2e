// AngelaMos | 2026
// accounts.go

package auth

import (
	"context"

	"github.com/casinoremedial/backend/internal/client"
	"github.com/casinoremedial/backend/internal/middleware"
)

// AccountSource adapts the client store to the authenticator, which only
// needs the fields that drive authorization decisions.
type AccountSource struct {
	repo client.Repository
}

func NewAccountSource(repo client.Repository) *AccountSource {
	return &AccountSource{repo: repo}
}

func (s *AccountSource) AccountByID(
	ctx context.Context,
	id string,
) (*middleware.Account, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.Account{
		ID:         c.ID,
		Email:      c.Email,
		Role:       c.Role,
		IsVerified: c.IsVerified,
	}, nil
}
