package controllers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/adamanr/workflow_portal/internal/config"
	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/adamanr/workflow_portal/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedis represents a mock Redis client.
type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)

	if statusCmd, ok := args.Get(0).(*redis.StatusCmd); ok {
		return statusCmd
	}

	cmd := redis.NewStatusCmd(ctx)
	if err, ok := args.Get(0).(error); ok && err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal("OK")
	}

	return cmd
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)

	if stringCmd, ok := args.Get(0).(*redis.StringCmd); ok {
		return stringCmd
	}

	cmd := redis.NewStringCmd(ctx)
	if err, ok := args.Get(0).(error); ok && err != nil {
		cmd.SetErr(err)
	}

	return cmd
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)

	if intCmd, ok := args.Get(0).(*redis.IntCmd); ok {
		return intCmd
	}

	cmd := redis.NewIntCmd(ctx)
	if err, ok := args.Get(0).(error); ok && err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal(1)
	}

	return cmd
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualScheduler runs registered jobs only when Fire is called.
type manualScheduler struct {
	mu   sync.Mutex
	next int
	jobs map[int]func()
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{jobs: make(map[int]func())}
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.jobs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.jobs, id)
	}
}

func (s *manualScheduler) Fire() {
	s.mu.Lock()
	jobs := make([]func(), 0, len(s.jobs))
	for _, fn := range s.jobs {
		jobs = append(jobs, fn)
	}
	s.mu.Unlock()

	for _, fn := range jobs {
		fn()
	}
}

func (s *manualScheduler) active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

type testEnv struct {
	deps      *Dependens
	ctrl      *Controllers
	clock     *fakeClock
	scheduler *manualScheduler
}

// Test helper functions.
func CreateTestDependencies(t *testing.T, tokens TokenStore) *Dependens {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := &config.Config{}
	cfg.Server.JWTSecret = "test-secret-key"
	cfg.Session.StoreMode = database.ModeSession
	cfg.Session.Granularity = "hms"
	cfg.Session.TokenTTL = time.Hour

	seed, err := database.DefaultSeed()
	require.NoError(t, err)

	validator, err := NewValidator()
	require.NoError(t, err)

	return &Dependens{
		Tokens:     tokens,
		Workspaces: database.NewWorkspaces(cfg.Session.StoreMode, seed),
		Clock:      newFakeClock(),
		Scheduler:  newManualScheduler(),
		Validator:  validator,
		Metrics:    metrics.New(prometheus.NewRegistry()),
		Logger:     logger,
		Config:     cfg,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	deps := CreateTestDependencies(t, database.NewMemoryTokens())

	return &testEnv{
		deps:      deps,
		ctrl:      NewControllers(deps),
		clock:     deps.Clock.(*fakeClock),
		scheduler: deps.Scheduler.(*manualScheduler),
	}
}

func (e *testEnv) login(t *testing.T, email string) *Session {
	t.Helper()

	session, err := e.ctrl.AuthController.Login(context.Background(), &entity.LoginRequest{
		Email:    email,
		Password: mockPassword,
	})
	require.NoError(t, err)

	return session
}

const (
	employeeEmail = "john@company.com"
	hrEmail       = "sarah@company.com"
	adminEmail    = "michael@company.com"
)
