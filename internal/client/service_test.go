// AngelaMos | 2026
// service_test.go

package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casinoremedial/backend/internal/core"
)

// memoryRepository is an in-memory Repository for service tests.
type memoryRepository struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{clients: make(map[string]*Client)}
}

func (r *memoryRepository) Create(_ context.Context, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.clients {
		if existing.Email == c.Email {
			return core.ErrDuplicateEmail
		}
	}

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.clients[c.ID] = cloneClient(c)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneClient(c), nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Email == NormalizeEmail(email) {
			return cloneClient(c), nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *memoryRepository) List(_ context.Context) ([]Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *cloneClient(c))
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.clients[c.ID]
	if !ok {
		return core.ErrNotFound
	}
	for id, other := range r.clients {
		if id != c.ID && other.Email == c.Email {
			return core.ErrDuplicateEmail
		}
	}

	stored.FullName = c.FullName
	stored.Email = c.Email
	stored.Age = c.Age
	stored.Country = c.Country
	stored.Role = c.Role
	stored.IsVerified = c.IsVerified
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryRepository) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return core.ErrNotFound
	}
	c.PasswordHash = hash
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *memoryRepository) SetVerificationCode(
	_ context.Context,
	email, code string,
	expires time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Email == NormalizeEmail(email) {
			c.VerificationCode = &code
			c.VerificationExpires = &expires
			return nil
		}
	}
	return core.ErrNotFound
}

func (r *memoryRepository) ConsumeVerificationCode(_ context.Context, email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Email != NormalizeEmail(email) {
			continue
		}
		if c.VerificationCode == nil ||
			*c.VerificationCode != code ||
			c.VerificationExpires == nil ||
			!c.VerificationExpires.After(time.Now().UTC()) {
			return core.ErrCodeInvalidOrExpired
		}
		c.IsVerified = true
		c.VerificationCode = nil
		c.VerificationExpires = nil
		return nil
	}
	return core.ErrCodeInvalidOrExpired
}

func (r *memoryRepository) SetRecoveryCode(
	_ context.Context,
	email, code string,
	expires time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Email == NormalizeEmail(email) {
			c.ResetPasswordCode = &code
			c.ResetPasswordExpires = &expires
			return nil
		}
	}
	return core.ErrNotFound
}

func (r *memoryRepository) CheckRecoveryCode(_ context.Context, email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Email == NormalizeEmail(email) &&
			c.ResetPasswordCode != nil &&
			*c.ResetPasswordCode == code &&
			c.ResetPasswordExpires != nil &&
			c.ResetPasswordExpires.After(time.Now().UTC()) {
			return nil
		}
	}
	return core.ErrCodeInvalidOrExpired
}

func (r *memoryRepository) ResetPasswordWithCode(
	_ context.Context,
	email, code, hash string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Email != NormalizeEmail(email) {
			continue
		}
		if c.ResetPasswordCode == nil ||
			*c.ResetPasswordCode != code ||
			c.ResetPasswordExpires == nil ||
			!c.ResetPasswordExpires.After(time.Now().UTC()) {
			return core.ErrCodeInvalidOrExpired
		}
		c.PasswordHash = hash
		c.ResetPasswordCode = nil
		c.ResetPasswordExpires = nil
		return nil
	}
	return core.ErrCodeInvalidOrExpired
}

func (r *memoryRepository) SetVerified(_ context.Context, id string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return core.ErrNotFound
	}
	c.IsVerified = verified
	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients), nil
}

func cloneClient(c *Client) *Client {
	out := *c
	return &out
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	codes []string
	fail  bool
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, to, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	m.codes = append(m.codes, code)
	return nil
}

func newTestService(repo Repository, mailer Mailer) *Service {
	return NewService(repo, mailer, 30*time.Minute, slog.New(slog.DiscardHandler))
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		FullName: "María González",
		Email:    "Maria@Example.com",
		Password: "supersecret1",
		Age:      25,
		Country:  "México",
	}
}

func TestRegisterCreatesUnverifiedWithCode(t *testing.T) {
	repo := newMemoryRepository()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	c, mailed, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.True(t, mailed)

	assert.Equal(t, "maria@example.com", c.Email)
	assert.False(t, c.IsVerified)
	assert.Equal(t, RoleClient, c.Role)
	assert.NotEqual(t, "supersecret1", c.PasswordHash)

	require.NotNil(t, c.VerificationCode)
	assert.Len(t, *c.VerificationCode, 6)

	require.NotNil(t, c.VerificationExpires)
	remaining := time.Until(*c.VerificationExpires)
	assert.InDelta(t, (30 * time.Minute).Seconds(), remaining.Seconds(), 60)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "maria@example.com", mailer.sent[0])
	assert.Equal(t, *c.VerificationCode, mailer.codes[0])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo, &fakeMailer{})

	_, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateEmail)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	repo := newMemoryRepository()
	mailer := &fakeMailer{fail: true}
	svc := newTestService(repo, mailer)

	c, mailed, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.False(t, mailed)

	stored, err := repo.GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, stored.ID)
}

func TestRegisterRejectsUnderage(t *testing.T) {
	svc := newTestService(newMemoryRepository(), &fakeMailer{})

	req := registerRequest()
	req.Age = 17

	_, _, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestUpdatePassword(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo, &fakeMailer{})

	c, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), c.ID, "wrong-password", "newpassword1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)

	err = svc.UpdatePassword(context.Background(), c.ID, "supersecret1", "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrWeakPassword)

	err = svc.UpdatePassword(context.Background(), c.ID, "supersecret1", "newpassword1")
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, core.VerifyPassword(stored.PasswordHash, "newpassword1"))
}

func TestUpdateChangesEmailAndRejectsCollision(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo, &fakeMailer{})

	first, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	second := registerRequest()
	second.Email = "other@example.com"
	_, _, err = svc.Register(context.Background(), second)
	require.NoError(t, err)

	newEmail := "Other@Example.com"
	_, err = svc.Update(context.Background(), first.ID, UpdateRequest{Email: &newEmail})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateEmail)

	freshEmail := "Fresh@Example.com"
	updated, err := svc.Update(context.Background(), first.ID, UpdateRequest{Email: &freshEmail})
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", updated.Email)
}

func TestDeleteMissingClient(t *testing.T) {
	svc := newTestService(newMemoryRepository(), &fakeMailer{})

	err := svc.Delete(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEnsureAdminCreatesAndPromotes(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo, &fakeMailer{})

	err := svc.EnsureAdmin(context.Background(), "Admin@Example.com", "adminpassword")
	require.NoError(t, err)

	admin, err := repo.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.IsVerified)

	// Running again against the existing admin is a no-op.
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "adminpassword"))

	// A plain client with the same email gets promoted.
	c, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, svc.EnsureAdmin(context.Background(), c.Email, "irrelevant"))

	promoted, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, promoted.Role)
	assert.True(t, promoted.IsVerified)
}
