package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stacklens/internal/domain"
	"stacklens/pkg/errors"
	"stacklens/pkg/logger"
)

const testAddr = "ST23JSMGR5933QJ329PKPNNQJV6QG8Z9D33QBYDNX"

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRepository) FindByAddress(ctx context.Context, address string) (*domain.Profile, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func TestCreateProfile(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByAddress", mock.Anything, testAddr).Return(nil, errors.ErrProfileNotFound)
	repo.On("FindByUsername", mock.Anything, "satoshi").Return(nil, errors.ErrProfileNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	svc := NewService(repo, logger.NewNop())
	created, err := svc.Create(context.Background(), CreateInput{
		Address:  testAddr,
		Username: "satoshi",
		Bio:      "just watching the chain",
	})
	require.NoError(t, err)

	assert.Equal(t, testAddr, created.Address)
	assert.Equal(t, "satoshi", created.Username)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreateProfileInvalidAddress(t *testing.T) {
	svc := NewService(new(MockRepository), logger.NewNop())

	_, err := svc.Create(context.Background(), CreateInput{Address: "bogus"})
	assert.ErrorIs(t, err, errors.ErrInvalidAddress)
}

func TestCreateProfileAlreadyExists(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByAddress", mock.Anything, testAddr).Return(&domain.Profile{Address: testAddr}, nil)

	svc := NewService(repo, logger.NewNop())
	_, err := svc.Create(context.Background(), CreateInput{Address: testAddr})
	assert.ErrorIs(t, err, errors.ErrProfileAlreadyExists)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateProfileUsernameTaken(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByAddress", mock.Anything, testAddr).Return(nil, errors.ErrProfileNotFound)
	repo.On("FindByUsername", mock.Anything, "satoshi").Return(&domain.Profile{Username: "satoshi"}, nil)

	svc := NewService(repo, logger.NewNop())
	_, err := svc.Create(context.Background(), CreateInput{Address: testAddr, Username: "satoshi"})
	assert.ErrorIs(t, err, errors.ErrUsernameTaken)
}

func TestGetProfileNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByAddress", mock.Anything, testAddr).Return(nil, errors.ErrProfileNotFound)

	svc := NewService(repo, logger.NewNop())
	_, err := svc.Get(context.Background(), testAddr)
	assert.ErrorIs(t, err, errors.ErrProfileNotFound)
}

func TestUpdateProfile(t *testing.T) {
	existing := &domain.Profile{Address: testAddr, Username: "satoshi", Bio: "old bio"}
	repo := new(MockRepository)
	repo.On("FindByAddress", mock.Anything, testAddr).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	newBio := "new bio"
	svc := NewService(repo, logger.NewNop())
	updated, err := svc.Update(context.Background(), testAddr, UpdateInput{Bio: &newBio})
	require.NoError(t, err)

	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "satoshi", updated.Username)
	repo.AssertExpectations(t)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	existing := &domain.Profile{Address: testAddr, Username: "satoshi"}
	repo := new(MockRepository)
	repo.On("FindByAddress", mock.Anything, testAddr).Return(existing, nil)
	repo.On("FindByUsername", mock.Anything, "vitalik").Return(&domain.Profile{Username: "vitalik"}, nil)

	name := "vitalik"
	svc := NewService(repo, logger.NewNop())
	_, err := svc.Update(context.Background(), testAddr, UpdateInput{Username: &name})
	assert.ErrorIs(t, err, errors.ErrUsernameTaken)
	repo.AssertNotCalled(t, "Update")
}
