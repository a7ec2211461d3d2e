// AngelaMos | 2026
// repository.go

package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/casinoremedial/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, g *Game) error
	GetByID(ctx context.Context, id string) (*Game, error)
	List(ctx context.Context, filter ListFilter) ([]Game, error)
	Update(ctx context.Context, g *Game) error
	SetActive(ctx context.Context, id string, active bool) (*Game, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *repository) Create(ctx context.Context, g *Game) error {
	query := `
		INSERT INTO games (name, description, category, min_bet, max_bet, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		g.Name,
		g.Description,
		g.Category,
		g.MinBet,
		g.MaxBet,
		g.Active,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return core.ErrDuplicateName
		}
		return fmt.Errorf("create game: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Game, error) {
	var g Game
	query := `SELECT * FROM games WHERE id = $1`

	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get game by id: %w", err)
	}

	return &g, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Game, error) {
	query := `SELECT * FROM games`
	args := []any{}
	where := ""

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = " WHERE category = $" + strconv.Itoa(len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		if where == "" {
			where = " WHERE"
		} else {
			where += " AND"
		}
		where += " active = $" + strconv.Itoa(len(args))
	}

	query += where + ` ORDER BY name ASC`

	games := []Game{}
	if err := r.db.SelectContext(ctx, &games, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return games, nil
}

func (r *repository) Update(ctx context.Context, g *Game) error {
	query := `
		UPDATE games
		SET name = $1, description = $2, category = $3,
		    min_bet = $4, max_bet = $5, active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		g.Name,
		g.Description,
		g.Category,
		g.MinBet,
		g.MaxBet,
		g.Active,
		g.ID,
	).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		if isDuplicate(err) {
			return core.ErrDuplicateName
		}
		return fmt.Errorf("update game: %w", err)
	}

	return nil
}

// SetActive flips the flag and returns the updated row in one round trip.
func (r *repository) SetActive(ctx context.Context, id string, active bool) (*Game, error) {
	var g Game
	query := `
		UPDATE games
		SET active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *`

	err := r.db.QueryRowxContext(ctx, query, active, id).StructScan(&g)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("set game active: %w", err)
	}

	return &g, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM games`); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}
