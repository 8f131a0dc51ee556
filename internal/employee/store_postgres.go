// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndquang/staffdesk/internal/platform/database/schema"
	"github.com/ndquang/staffdesk/internal/platform/dberr"
	"github.com/ndquang/staffdesk/pkg/textfold"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of [Store].
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// employeeColumns is the SELECT list in scan order.
var employeeColumns = strings.Join(schema.RefEmployee.Columns(), ", ")

func (store *PostgresStore) FindByID(ctx context.Context, id int64) (*Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, employeeColumns, schema.RefEmployee.Table)

	e := &Employee{}
	err := store.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Level, &e.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_employee_by_id")
	}

	return e, nil
}

func (store *PostgresStore) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, employeeColumns, schema.RefEmployee.Table)

	e := &Employee{}
	err := store.db.QueryRow(ctx, query, email).Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Level, &e.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_employee_by_email")
	}

	return e, nil
}

func (store *PostgresStore) Create(ctx context.Context, e *Employee) error {
	const query = `
		INSERT INTO employee (name, email, password_hash, level, name_search, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := store.db.QueryRow(ctx, query,
		e.Name, e.Email, e.PasswordHash, e.Level, textfold.Fold(e.Name),
	).Scan(&e.ID, &e.CreatedAt)

	return dberr.Wrap(err, "create_employee")
}

func (store *PostgresStore) Update(ctx context.Context, e *Employee) error {
	// created_at is deliberately absent: a full replace never rewrites it.
	const query = `
		UPDATE employee
		SET name = $2, email = $3, password_hash = $4, level = $5, name_search = $6
		WHERE id = $1`

	cmd, err := store.db.Exec(ctx, query,
		e.ID, e.Name, e.Email, e.PasswordHash, e.Level, textfold.Fold(e.Name),
	)
	if err != nil {
		return dberr.Wrap(err, "update_employee")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (store *PostgresStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM employee WHERE id = $1`

	cmd, err := store.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_employee")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (store *PostgresStore) List(ctx context.Context, f Filter, limit, offset int) ([]*Employee, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, employeeColumns, schema.RefEmployee.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefEmployee.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		// name_search holds the folded name, so both sides of the LIKE are
		// case- and accent-insensitive.
		searchTerm := "%" + textfold.Fold(f.Query) + "%"
		query += ` WHERE name_search LIKE $1`
		countQuery += ` WHERE name_search LIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(` ORDER BY id ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := store.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_employees")
	}

	rows, err := store.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_employees")
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e := &Employee{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Level, &e.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_employee")
		}
		employees = append(employees, e)
	}

	return employees, total, nil
}
