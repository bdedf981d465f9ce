package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with '?' placeholders, understood by both the
// MySQL and SQLite drivers.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// WithTx runs fn inside a transaction.  The transaction is committed when fn
// returns nil and rolled back otherwise; either way the connection goes back
// to the pool before WithTx returns.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit: %w", cerr)
		}
	}()
	return fn(tx)
}

// likePattern turns a free-text term into a substring pattern.
// LIKE wildcards in the term match literally; '!' is the escape character
// because a backslash is itself an escape in MySQL string literals.
func likePattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}

// nameLike matches column against likePattern(term) without regard to case.
// Both sides go through the database's LOWER so they fold identically.
func nameLike(column, term string) sq.Sqlizer {
	return sq.Expr("LOWER("+column+") LIKE LOWER(?) ESCAPE '!'", likePattern(term))
}

// exists reports whether table has a row with the given id.
func exists(ctx context.Context, tx *sql.Tx, table string, id uint64) (bool, error) {
	query, args, err := psql.Select("1").From(table).Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	switch err := tx.QueryRowContext(ctx, query, args...).Scan(&one); err {
	case nil:
		return true, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, err
	}
}
