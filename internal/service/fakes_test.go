package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memUserRepo is an in-memory credential store that mirrors the SQL repository semantics
type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	owners map[string]*domain.BrandOwner // keyed by user id
	clock  time.Time
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:  make(map[string]*domain.User),
		owners: make(map[string]*domain.BrandOwner),
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

var (
	_ repository.UserRepository       = (*memUserRepo)(nil)
	_ repository.BrandOwnerRepository = (*memUserRepo)(nil)
)

func (r *memUserRepo) find(match func(*domain.User) bool) *domain.User {
	for _, u := range r.users {
		if !u.IsDeleted && match(u) {
			return u
		}
	}
	return nil
}

func (r *memUserRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *domain.User) bool { return u.Email == email }) != nil, nil
}

func (r *memUserRepo) PhoneExists(_ context.Context, phone, excludeUserID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *domain.User) bool { return u.Phone == phone && u.ID != excludeUserID }) != nil, nil
}

func (r *memUserRepo) CreateWithBrandOwner(_ context.Context, user *domain.User, owner *domain.BrandOwner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(func(u *domain.User) bool { return u.Email == user.Email }) != nil {
		return fmt.Errorf("failed to create user: %w", repository.ErrDuplicateEmail)
	}
	if r.find(func(u *domain.User) bool { return u.Phone == user.Phone }) != nil {
		return fmt.Errorf("failed to create user: %w", repository.ErrDuplicatePhone)
	}

	user.ID = uuid.NewString()
	owner.ID = uuid.NewString()
	owner.UserID = user.ID
	now := r.tick()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	r.users[user.ID] = &stored
	storedOwner := *owner
	r.owners[user.ID] = &storedOwner
	return nil
}

// addUser stores a user of any role, bypassing registration
func (r *memUserRepo) addUser(role domain.Role, email, phone string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()
	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Phone:     phone,
		Role:      role,
		FirstName: "Test",
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[user.ID] = user
	copied := *user
	return &copied
}

func (r *memUserRepo) get(id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, fmt.Errorf("user with id %s not found: %w", id, repository.ErrNotFound)
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.find(func(u *domain.User) bool { return u.Email == email })
	if u == nil {
		return nil, fmt.Errorf("user with email %s not found: %w", email, repository.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(id)
	if err != nil {
		return nil, err
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) SetRefreshTokenHash(_ context.Context, userID string, hash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(userID)
	if err != nil {
		return err
	}
	if hash == nil {
		u.RefreshTokenHash = nil
		return nil
	}
	h := *hash
	u.RefreshTokenHash = &h
	return nil
}

func (r *memUserRepo) RotateRefreshToken(_ context.Context, userID, oldHash, newHash string, tokenVersion int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(userID)
	if err != nil {
		return false, nil
	}
	if u.RefreshTokenHash == nil || *u.RefreshTokenHash != oldHash || u.TokenVersion != tokenVersion {
		return false, nil
	}
	u.RefreshTokenHash = &newHash
	return true, nil
}

func (r *memUserRepo) RevokeAllSessions(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(userID)
	if err != nil {
		return err
	}
	u.TokenVersion++
	u.RefreshTokenHash = nil
	return nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, userID string, update domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(userID)
	if err != nil {
		return err
	}
	owner, hasOwner := r.owners[userID]
	if update.BusinessName != nil && !hasOwner {
		return fmt.Errorf("user %s: %w", userID, repository.ErrNoBrandOwnerProfile)
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		last := *update.LastName
		u.LastName = &last
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.BusinessName != nil {
		owner.BusinessName = *update.BusinessName
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, offset, limit int) ([]*domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var live []*domain.User
	for _, u := range r.users {
		if !u.IsDeleted && u.Role != domain.RoleSuperAdmin {
			copied := *u
			live = append(live, &copied)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].CreatedAt.After(live[j].CreatedAt) })

	total := len(live)
	if offset >= total {
		return []*domain.User{}, total, nil
	}
	end := min(offset+limit, total)
	return live[offset:end], total, nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(userID)
	if err != nil {
		return err
	}
	now := r.tick()
	u.IsDeleted = true
	u.DeletedAt = &now
	u.RefreshTokenHash = nil
	u.TokenVersion++
	return nil
}

func (r *memUserRepo) GetByUserID(_ context.Context, userID string) (*domain.BrandOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[userID]
	if !ok {
		return nil, fmt.Errorf("brand owner for user %s not found: %w", userID, repository.ErrNotFound)
	}
	copied := *owner
	return &copied, nil
}

type mockBrandOwnerRepo struct {
	mock.Mock
}

func (m *mockBrandOwnerRepo) GetByUserID(ctx context.Context, userID string) (*domain.BrandOwner, error) {
	args := m.Called(ctx, userID)
	owner, _ := args.Get(0).(*domain.BrandOwner)
	return owner, args.Error(1)
}

type mockShopLinkRepo struct {
	mock.Mock
}

func (m *mockShopLinkRepo) HasActiveLink(ctx context.Context, shopOwnerUserID, brandOwnerID string) (bool, error) {
	args := m.Called(ctx, shopOwnerUserID, brandOwnerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockShopLinkRepo) LinkedBrandOwnerIDs(ctx context.Context, shopOwnerUserID string) ([]string, error) {
	args := m.Called(ctx, shopOwnerUserID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockBrandRepo struct {
	mock.Mock
}

func (m *mockBrandRepo) Create(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	brand, _ := args.Get(0).(*domain.Brand)
	return brand, args.Error(1)
}

func (m *mockBrandRepo) List(ctx context.Context, scope domain.OwnerScope) ([]*domain.Brand, error) {
	args := m.Called(ctx, scope)
	brands, _ := args.Get(0).([]*domain.Brand)
	return brands, args.Error(1)
}

func (m *mockBrandRepo) Update(ctx context.Context, id string, update domain.BrandUpdate) (*domain.Brand, error) {
	args := m.Called(ctx, id, update)
	brand, _ := args.Get(0).(*domain.Brand)
	return brand, args.Error(1)
}

func (m *mockBrandRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
