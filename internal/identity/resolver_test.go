package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestResolver_Anonymous(t *testing.T) {
	users := &MockUserLookup{}
	r := NewResolver(users)

	caller, err := r.Resolve(context.Background(), "")

	require.NoError(t, err)
	assert.False(t, caller.Authenticated())
	users.AssertNotCalled(t, "GetByUsername")
}

func TestResolver_RoleFromRecord(t *testing.T) {
	ctx := context.Background()
	users := &MockUserLookup{}
	users.On("GetByUsername", ctx, "user1").Return(&domain.User{ID: 1, Username: "user1", Email: "gp@gmail.com", Role: domain.RoleUser}, nil)
	// any username can be an admin, the stored role decides
	users.On("GetByUsername", ctx, "ops").Return(&domain.User{ID: 9, Username: "ops", Email: "ops@air.gr", Role: domain.RoleAdmin}, nil)

	r := NewResolver(users)

	caller, err := r.Resolve(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{UserID: 1, Username: "user1", Email: "gp@gmail.com", Role: domain.RoleUser}, caller)

	caller, err = r.Resolve(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, caller.Role)
}

func TestResolver_UnknownUserIsAnonymous(t *testing.T) {
	ctx := context.Background()
	users := &MockUserLookup{}
	users.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound)

	caller, err := NewResolver(users).Resolve(ctx, "ghost")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAnonymous, caller.Role)
}

func TestResolver_StoreFailure(t *testing.T) {
	ctx := context.Background()
	users := &MockUserLookup{}
	users.On("GetByUsername", ctx, "user1").Return(nil, domain.ErrStoreUnavailable)

	_, err := NewResolver(users).Resolve(ctx, "user1")

	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestResolver_UnknownRoleIsAnonymous(t *testing.T) {
	ctx := context.Background()
	users := &MockUserLookup{}
	users.On("GetByUsername", ctx, "odd").Return(&domain.User{ID: 3, Username: "odd", Role: "Pilot"}, nil)

	caller, err := NewResolver(users).Resolve(ctx, "odd")

	require.NoError(t, err)
	assert.False(t, caller.Authenticated())
}
