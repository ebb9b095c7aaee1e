package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/auth"
	"github.com/Domenick1991/digitalairlines/internal/cache"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/policy"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	log "github.com/sirupsen/logrus"
)

type AccountUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) (bool, error)
	DeleteAccount(ctx context.Context, caller domain.Caller, sessionID string) error
}

type SessionStore interface {
	Create(ctx context.Context, username string) (*cache.Session, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TokenIssuer interface {
	Issue(username string) (string, error)
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	BirthDate  string
	Country    string
	PassportNo string
}

type LoginResult struct {
	User      *domain.User
	SessionID string
	Token     string
}

type AccountService struct {
	users    repository.UserRepository
	sessions SessionStore
	tokens   TokenIssuer
	now      func() time.Time
}

// NewAccountService builds the service. sessions may be nil, in which case
// Login hands out bearer tokens only.
func NewAccountService(users repository.UserRepository, sessions SessionStore, tokens TokenIssuer) *AccountService {
	return &AccountService{users: users, sessions: sessions, tokens: tokens, now: time.Now}
}

func (s *AccountService) parseUser(in RegisterInput) (*domain.User, error) {
	var (
		u   = &domain.User{Role: domain.RoleUser}
		err error
	)
	if u.Username, err = domain.RequireText("username", in.Username); err != nil {
		return nil, err
	}
	if u.Email, err = domain.ParseEmail("email", in.Email); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}
	if u.FullName, err = domain.RequireText("fullName", in.FullName); err != nil {
		return nil, err
	}
	if u.BirthDate, err = domain.ParseBirthDate("birthDate", in.BirthDate, s.now()); err != nil {
		return nil, err
	}
	if u.Country, err = domain.RequireText("country", in.Country); err != nil {
		return nil, err
	}
	if u.PassportNo, err = domain.ParsePassport("passportNo", in.PassportNo); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates a User-role account. Admin accounts are only created by seeding.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := s.parseUser(input)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash, err = auth.HashPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.WithField("username", user.Username).Warn("registration refused: duplicate user")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username}).Info("account registered")
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "information incomplete")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
		}
		return nil, err
	}
	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		log.WithField("username", user.Username).Warn("login refused: bad password")
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	result := &LoginResult{User: user}
	if s.sessions != nil {
		session, err := s.sessions.Create(ctx, user.Username)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		result.SessionID = session.ID
	}
	if result.Token, err = s.tokens.Issue(user.Username); err != nil {
		return nil, err
	}

	log.WithField("username", user.Username).Info("logged in")
	return result, nil
}

// Logout reports whether a session was active. It never fails on an unknown session.
func (s *AccountService) Logout(ctx context.Context, sessionID string) (bool, error) {
	if s.sessions == nil {
		return false, nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// DeleteAccount removes the caller's account and ends the session. Bookings
// made under the account's email stay in place.
func (s *AccountService) DeleteAccount(ctx context.Context, caller domain.Caller, sessionID string) error {
	if err := policy.Authorize(caller, policy.DeleteAccount); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, caller.UserID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if _, err := s.Logout(ctx, sessionID); err != nil {
		log.WithError(err).Warn("session cleanup failed")
	}

	log.WithFields(log.Fields{"user_id": caller.UserID, "username": caller.Username}).Info("account deleted")
	return nil
}

var _ AccountUseCase = (*AccountService)(nil)
