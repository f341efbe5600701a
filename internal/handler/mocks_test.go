package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/armory/internal/character"
	"github.com/osse101/armory/internal/domain"
)

// MockCharacterService mocks character.Service
type MockCharacterService struct {
	mock.Mock
}

var _ character.Service = (*MockCharacterService)(nil)

func (m *MockCharacterService) character(args mock.Arguments) (*domain.Character, error) {
	c, _ := args.Get(0).(*domain.Character)
	return c, args.Error(1)
}

func (m *MockCharacterService) weapon(args mock.Arguments) (*domain.Weapon, error) {
	w, _ := args.Get(0).(*domain.Weapon)
	return w, args.Error(1)
}

func (m *MockCharacterService) shareResult(args mock.Arguments) (*character.ShareResult, error) {
	res, _ := args.Get(0).(*character.ShareResult)
	return res, args.Error(1)
}

func (m *MockCharacterService) Create(ctx context.Context, name string) (*domain.Character, error) {
	return m.character(m.Called(ctx, name))
}

func (m *MockCharacterService) Get(ctx context.Context, name string) (*domain.Character, error) {
	return m.character(m.Called(ctx, name))
}

func (m *MockCharacterService) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockCharacterService) Patch(ctx context.Context, name string, mergePatch []byte) (*domain.Character, error) {
	return m.character(m.Called(ctx, name, mergePatch))
}

func (m *MockCharacterService) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockCharacterService) TakeDamage(ctx context.Context, name string, amount int) (*domain.Character, error) {
	return m.character(m.Called(ctx, name, amount))
}

func (m *MockCharacterService) Heal(ctx context.Context, name string, amount int) (*domain.Character, error) {
	return m.character(m.Called(ctx, name, amount))
}

func (m *MockCharacterService) RecordKill(ctx context.Context, name string) (*character.KillResult, error) {
	args := m.Called(ctx, name)
	res, _ := args.Get(0).(*character.KillResult)
	return res, args.Error(1)
}

func (m *MockCharacterService) GenerateLoot(ctx context.Context, name string) (*domain.Weapon, error) {
	return m.weapon(m.Called(ctx, name))
}

func (m *MockCharacterService) PeekLoot(ctx context.Context, name string) (*domain.Weapon, error) {
	return m.weapon(m.Called(ctx, name))
}

func (m *MockCharacterService) AcceptLoot(ctx context.Context, name string) (*domain.Character, error) {
	return m.character(m.Called(ctx, name))
}

func (m *MockCharacterService) DiscardLoot(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockCharacterService) Equip(ctx context.Context, name, weaponID string) (*domain.Character, error) {
	return m.character(m.Called(ctx, name, weaponID))
}

func (m *MockCharacterService) Unequip(ctx context.Context, name, weaponID string) (*domain.Character, error) {
	return m.character(m.Called(ctx, name, weaponID))
}

func (m *MockCharacterService) RemoveWeapon(ctx context.Context, name, weaponID string) (*domain.Character, error) {
	return m.character(m.Called(ctx, name, weaponID))
}

func (m *MockCharacterService) ShareLoot(ctx context.Context, name string) (*character.ShareResult, error) {
	return m.shareResult(m.Called(ctx, name))
}

func (m *MockCharacterService) ShareWeapon(ctx context.Context, name, weaponID string) (*character.ShareResult, error) {
	return m.shareResult(m.Called(ctx, name, weaponID))
}

func (m *MockCharacterService) ReceiveShared(ctx context.Context, name, payload string) (*domain.Weapon, error) {
	return m.weapon(m.Called(ctx, name, payload))
}

func (m *MockCharacterService) ReceiveImage(ctx context.Context, name string, image []byte) (*domain.Weapon, error) {
	return m.weapon(m.Called(ctx, name, image))
}

func (m *MockCharacterService) AcceptScanned(ctx context.Context, name string, w *domain.Weapon) error {
	return m.Called(ctx, name, w).Error(0)
}

// MockPinger mocks repository.Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockPayloadValidator mocks PayloadValidator
type MockPayloadValidator struct {
	mock.Mock
}

func (m *MockPayloadValidator) Validate(payload string) error {
	return m.Called(payload).Error(0)
}
