// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lotmarket/internal/platform/database/schema"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// PostgresRepository stores users in the "users" table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.Users.ID, schema.Users.Email, schema.Users.Password,
	schema.Users.IsRememberMe, schema.Users.CreatedAt, schema.Users.UpdatedAt,
)

func (repository *PostgresRepository) Create(context context.Context, u *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Users.Table, schema.Users.ID, schema.Users.Email, schema.Users.Password,
		schema.Users.IsRememberMe, schema.Users.CreatedAt, schema.Users.UpdatedAt,
		schema.Users.CreatedAt, schema.Users.UpdatedAt,
	)

	id := uuid.New()
	err := repository.db.QueryRow(context, query, id, u.Email, u.Password, u.IsRememberMe).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	u.ID = id
	return nil
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.Users.Table, schema.Users.Email)
	return repository.scanOne(context, query, email, "find_user_by_email")
}

func (repository *PostgresRepository) UpdateRememberMe(context context.Context, id string, isRememberMe bool) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.Users.Table, schema.Users.IsRememberMe, schema.Users.UpdatedAt, schema.Users.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, isRememberMe)
	if err != nil {
		return dberr.Wrap(err, "update_user_remember_me")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) UpdatePassword(context context.Context, id, expectedHash, newHash string) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		schema.Users.Table, schema.Users.Password, schema.Users.UpdatedAt,
		schema.Users.ID, schema.Users.Password,
	)

	cmd, err := repository.db.Exec(context, query, id, expectedHash, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Users.Table, schema.Users.ID)
	if err := repository.db.QueryRow(context, existsQuery, id).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_user_exists")
	}
	if !exists {
		return dberr.ErrNotFound
	}
	return ErrStalePassword
}

func (repository *PostgresRepository) scanOne(context context.Context, query string, arg any, action string) (*User, error) {
	u := &User{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&u.ID, &u.Email, &u.Password, &u.IsRememberMe, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return u, nil
}
