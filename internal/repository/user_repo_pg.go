package repository

import (
	"context"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type PGUserRepository struct {
	pgStore
}

func NewUserRepository(db *pgxpool.Pool, retry RetryPolicy) UserRepository {
	return &PGUserRepository{pgStore{db: db, retry: retry}}
}

const userColumns = `id, username, email, password_hash, role, full_name, birth_date, country, passport_no, created_at`

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.BirthDate, &u.Country, &u.PassportNo, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.conn(ctx).QueryRow(ctx, `INSERT INTO users (username, email, password_hash, role, full_name, birth_date, country, passport_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.Role, user.FullName, dateOnly(user.BirthDate), user.Country, user.PassportNo).
		Scan(&user.ID, &user.CreatedAt)
	if isConstraint(err, pgUniqueViolation) {
		return domain.ErrDuplicateUser
	}
	return translate(err)
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user *domain.User
	err := r.read(ctx, func(q querier) (err error) {
		user, err = scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
		return err
	})
	return user, err
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := r.read(ctx, func(q querier) (err error) {
		user, err = scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
		return err
	})
	return user, err
}

// Delete removes a regular user. Admin accounts are never matched.
func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.conn(ctx).Exec(ctx, `DELETE FROM users WHERE id=$1 AND role=$2`, id, domain.RoleUser)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ UserRepository = (*PGUserRepository)(nil)
