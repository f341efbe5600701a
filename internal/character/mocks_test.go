package character

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/armory/internal/domain"
)

// MockRepository implements repository.Character for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context, name string) (*domain.Character, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, c *domain.Character) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// fakeSaver records scheduled snapshots instead of writing them
type fakeSaver struct {
	mu        sync.Mutex
	scheduled map[string]*domain.Character
	count     int
	cancelled []string
}

func newFakeSaver() *fakeSaver {
	return &fakeSaver{scheduled: make(map[string]*domain.Character)}
}

func (f *fakeSaver) Schedule(c *domain.Character) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled[c.Name] = c.Clone()
	f.count++
}

func (f *fakeSaver) Cancel(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, name)
	f.cancelled = append(f.cancelled, name)
}

func (f *fakeSaver) Peek(name string) (*domain.Character, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.scheduled[name]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

func (f *fakeSaver) scheduleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// queueGenerator hands out prepared weapons and records the requested level
type queueGenerator struct {
	mu      sync.Mutex
	weapons []*domain.Weapon
	levels  []int
	err     error
}

func (g *queueGenerator) Generate(_ context.Context, level int) (*domain.Weapon, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels = append(g.levels, level)
	if g.err != nil {
		return nil, g.err
	}
	w := g.weapons[0]
	g.weapons = g.weapons[1:]
	cp := *w
	return &cp, nil
}
