package db

import (
	"context"
	"database/sql"
)

// ExecAffecting runs a write and returns notFound when it touched no rows.
func ExecAffecting(ctx context.Context, conn *sql.DB, query string, args []any, notFound error) error {
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// Count returns SELECT COUNT(*) for table.
func Count(ctx context.Context, conn *sql.DB, table string) (int, error) {
	var n int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
