// AngelaMos | 2026
// service.go

package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/casinoremedial/backend/internal/core"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Game, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	g := &Game{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		MinBet:      req.MinBet,
		MaxBet:      req.MaxBet,
		Active:      active,
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, core.ErrDuplicateName) {
			return nil, core.DuplicateNameError()
		}
		return nil, fmt.Errorf("create game: %w", err)
	}

	s.logger.Info("game created", "game_id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("game")
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Game, error) {
	if filter.Category != "" && !ValidCategory(filter.Category) {
		return nil, core.ValidationError("unknown category")
	}

	games, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Game, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.MinBet != nil {
		g.MinBet = *req.MinBet
	}
	if req.MaxBet != nil {
		g.MaxBet = *req.MaxBet
	}
	if req.Active != nil {
		g.Active = *req.Active
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, g); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateName):
			return nil, core.DuplicateNameError()
		case errors.Is(err, core.ErrNotFound):
			return nil, core.NotFoundError("game")
		}
		return nil, fmt.Errorf("update game: %w", err)
	}

	return g, nil
}

// ToggleActive flips the availability flag and returns the updated game.
func (s *Service) ToggleActive(ctx context.Context, id string) (*Game, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetActive(ctx, id, !g.Active)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("game")
		}
		return nil, fmt.Errorf("toggle game: %w", err)
	}

	s.logger.Info("game toggled",
		"game_id", updated.ID,
		"active", updated.Active,
	)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("game")
		}
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
