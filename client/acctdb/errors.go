package acctdb

import (
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateKey is returned when an insert or update collides with a
	// unique key: a bank name, a (user, bank) pair or a queue name.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrParentNotFound is returned by AddBank when the named parent bank does
	// not exist.
	ErrParentNotFound = errors.New("parent bank not found in bank table")

	// ErrNotFound is returned by the view operations when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned when a supplied value is rejected before
	// it reaches the database.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidField is returned when an edit names a column outside the
	// editable allow-list.
	ErrInvalidField = errors.New("field not found in association table")
)

const (
	mysqlDuplicateEntry = 1062
	pgUniqueViolation   = "23505"
)

// classify maps driver specific constraint failures onto ErrDuplicateKey,
// keeping the driver message that names the key, and returns every other
// error unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func isDuplicate(err error) bool {
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	// sqlite reports constraint failures only through the message text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
