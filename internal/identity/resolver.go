package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/digitalairlines/internal/domain"
)

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Resolver turns a session identity (a username) into a Caller with its stored role.
type Resolver struct {
	users UserLookup
}

func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

func (r *Resolver) Resolve(ctx context.Context, username string) (domain.Caller, error) {
	if username == "" {
		return domain.Caller{}, nil
	}
	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		// the account was deleted while its session was still alive
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Caller{}, nil
		}
		return domain.Caller{}, fmt.Errorf("resolve %q: %w", username, err)
	}
	if !user.Role.Valid() {
		return domain.Caller{}, nil
	}
	return domain.Caller{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
