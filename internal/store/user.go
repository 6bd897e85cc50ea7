package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) CreateUser(ctx context.Context, u User) (User, error) {
	if _, err := r.UserByEmail(ctx, u.Email); err == nil {
		return User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	u.CreatedAt = time.Now()
	q, args := builder().Insert(tableUsers).
		Columns("created_at", "name", "number", "email", "password_hash", "address", "ward_no").
		Values(u.CreatedAt.UnixMilli(), u.Name, u.Number, u.Email, u.PasswordHash, u.Address, u.WardNo).
		Query()

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return User{}, ErrUserExists
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return User{}, fmt.Errorf("user id: %w", err)
	}
	return u, nil
}

func (r *userRepo) UserByEmail(ctx context.Context, email string) (User, error) {
	q, args := builder().
		Select("id", "created_at", "name", "number", "email", "password_hash", "address", "ward_no").
		From(entsql.Table(tableUsers)).
		Where(entsql.EQ("email", email)).
		Limit(1).
		Query()

	var (
		u       User
		created int64
	)
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&u.ID, &created, &u.Name, &u.Number, &u.Email, &u.PasswordHash, &u.Address, &u.WardNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created)
	return u, nil
}
