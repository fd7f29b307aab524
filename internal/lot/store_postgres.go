// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lotmarket/internal/platform/database/schema"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// PostgresRepository stores lots in the "lots" table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// lotColumns selects a full row; image is nullable in the table.
var lotColumns = strings.Join([]string{
	schema.Lots.ID, schema.Lots.Title, fmt.Sprintf("COALESCE(%s, '')", schema.Lots.Image),
	schema.Lots.Status, schema.Lots.CurrentPrice, schema.Lots.EstimatedPrice,
	schema.Lots.LotStartTime, schema.Lots.LotEndTime, schema.Lots.UserID,
	schema.Lots.CreatedAt, schema.Lots.UpdatedAt,
}, ", ")

func (repository *PostgresRepository) Create(context context.Context, l *Lot) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.Lots.Table,
		schema.Lots.ID, schema.Lots.Title, schema.Lots.Image, schema.Lots.Status,
		schema.Lots.CurrentPrice, schema.Lots.EstimatedPrice, schema.Lots.LotStartTime,
		schema.Lots.LotEndTime, schema.Lots.UserID, schema.Lots.CreatedAt, schema.Lots.UpdatedAt,
		schema.Lots.CreatedAt, schema.Lots.UpdatedAt,
	)

	id := uuid.New()
	err := repository.db.QueryRow(context, query,
		id, l.Title, l.Image, string(l.Status), l.CurrentPrice, l.EstimatedPrice,
		l.LotStartTime, l.LotEndTime, l.UserID,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_lot")
	}

	l.ID = id
	return nil
}

func (repository *PostgresRepository) FindAll(context context.Context, filter Filter) ([]*Lot, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, lotColumns, schema.Lots.Table)
	var args []any
	if filter.Own {
		query += fmt.Sprintf(` WHERE %s = $1`, schema.Lots.UserID)
		args = append(args, filter.UserID)
	}
	query += fmt.Sprintf(` ORDER BY %s`, schema.Lots.CreatedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_lots")
	}

	lots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Lot, error) {
		return scanLot(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_lots")
	}
	return lots, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Lot, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, lotColumns, schema.Lots.Table, schema.Lots.ID)
	l, err := scanLot(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_lot")
	}
	return l, nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch, cond Condition) (*Lot, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	// Every column falls back to its current value when the patch leaves it nil.
	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = COALESCE($2::text, %[2]s),
			%[3]s = COALESCE($3::text, %[3]s),
			%[4]s = COALESCE($4::text, %[4]s),
			%[5]s = COALESCE($5::double precision, %[5]s),
			%[6]s = COALESCE($6::double precision, %[6]s),
			%[7]s = COALESCE($7::timestamptz, %[7]s),
			%[8]s = COALESCE($8::timestamptz, %[8]s),
			%[9]s = NOW()
		WHERE %[10]s = $1
		  AND ($9::text = '' OR %[11]s = $9)
		  AND (cardinality($10::text[]) = 0 OR %[4]s = ANY($10))
		  AND ($11::timestamptz IS NULL OR %[7]s <= $11)
		  AND ($12::timestamptz IS NULL OR %[8]s >= $12)
		RETURNING %[12]s
	`,
		schema.Lots.Table, schema.Lots.Title, schema.Lots.Image, schema.Lots.Status,
		schema.Lots.CurrentPrice, schema.Lots.EstimatedPrice, schema.Lots.LotStartTime,
		schema.Lots.LotEndTime, schema.Lots.UpdatedAt, schema.Lots.ID, schema.Lots.UserID,
		lotColumns,
	)

	var status *string
	if patch.Status != nil {
		value := string(*patch.Status)
		status = &value
	}

	l, err := scanLot(repository.db.QueryRow(context, query,
		id, patch.Title, patch.Image, status, patch.CurrentPrice, patch.EstimatedPrice,
		patch.LotStartTime, patch.LotEndTime, cond.OwnerID, statusStrings(cond.StatusIn),
		cond.StartNotAfter, cond.EndNotBefore,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "update_lot")
	}
	return l, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string, cond Condition) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1
		  AND ($2::text = '' OR %s = $2)
		  AND (cardinality($3::text[]) = 0 OR %s = ANY($3))
	`, schema.Lots.Table, schema.Lots.ID, schema.Lots.UserID, schema.Lots.Status)

	cmd, err := repository.db.Exec(context, query, id, cond.OwnerID, statusStrings(cond.StatusIn))
	if err != nil {
		return dberr.Wrap(err, "delete_lot")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanLot(row pgx.Row) (*Lot, error) {
	l := &Lot{}
	var status string
	err := row.Scan(
		&l.ID, &l.Title, &l.Image, &status, &l.CurrentPrice, &l.EstimatedPrice,
		&l.LotStartTime, &l.LotEndTime, &l.UserID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = Status(status)
	return l, nil
}
