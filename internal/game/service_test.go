// AngelaMos | 2026
// service_test.go

package game

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casinoremedial/backend/internal/core"
)

type memoryRepository struct {
	mu    sync.Mutex
	games map[string]*Game
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{games: make(map[string]*Game)}
}

func (r *memoryRepository) Create(_ context.Context, g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.games {
		if existing.Name == g.Name {
			return core.ErrDuplicateName
		}
	}

	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	clone := *g
	r.games[g.ID] = &clone
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	out := *g
	return &out, nil
}

func (r *memoryRepository) List(_ context.Context, filter ListFilter) ([]Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Game{}
	for _, g := range r.games {
		if filter.Category != "" && g.Category != filter.Category {
			continue
		}
		if filter.Active != nil && g.Active != *filter.Active {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.games[g.ID]
	if !ok {
		return core.ErrNotFound
	}
	for id, other := range r.games {
		if id != g.ID && other.Name == g.Name {
			return core.ErrDuplicateName
		}
	}

	*stored = *g
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryRepository) SetActive(_ context.Context, id string, active bool) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	g.Active = active
	g.UpdatedAt = time.Now().UTC()
	out := *g
	return &out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games), nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func createRequest() CreateRequest {
	return CreateRequest{
		Name:        "Ruleta Europea",
		Description: "Ruleta de un solo cero",
		Category:    CategoryMesa,
		MinBet:      5,
		MaxBet:      500,
	}
}

func TestCreateDefaultsActive(t *testing.T) {
	svc, _ := newTestService()

	g, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.True(t, g.Active)
	assert.NotEmpty(t, g.ID)
}

func TestCreateDuplicateName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateName)
}

func TestCreateRejectsInvalidBets(t *testing.T) {
	svc, _ := newTestService()

	req := createRequest()
	req.MinBet = 100
	req.MaxBet = 50

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService()

	mesa := createRequest()
	_, err := svc.Create(context.Background(), mesa)
	require.NoError(t, err)

	inactive := false
	dados := CreateRequest{
		Name:     "Craps",
		Category: CategoryDados,
		MinBet:   10,
		MaxBet:   1000,
		Active:   &inactive,
	}
	_, err = svc.Create(context.Background(), dados)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mesaOnly, err := svc.List(context.Background(), ListFilter{Category: CategoryMesa})
	require.NoError(t, err)
	require.Len(t, mesaOnly, 1)
	assert.Equal(t, "Ruleta Europea", mesaOnly[0].Name)

	active := true
	activeOnly, err := svc.List(context.Background(), ListFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, "Ruleta Europea", activeOnly[0].Name)

	_, err = svc.List(context.Background(), ListFilter{Category: "Slots"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestUpdateRevalidates(t *testing.T) {
	svc, _ := newTestService()

	g, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	badMax := 2.0
	_, err = svc.Update(context.Background(), g.ID, UpdateRequest{MaxBet: &badMax})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)

	newName := "Ruleta Americana"
	updated, err := svc.Update(context.Background(), g.ID, UpdateRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ruleta Americana", updated.Name)
}

func TestToggleActiveFlips(t *testing.T) {
	svc, repo := newTestService()

	g, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	toggled, err := svc.ToggleActive(context.Background(), g.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = svc.ToggleActive(context.Background(), g.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	stored, err := repo.GetByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
}

func TestDeleteMissingGame(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
