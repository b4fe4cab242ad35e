package vartable

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

// WhichSQLiteDriver names the database/sql driver used for SQLite export,
// which depends on whether the package was built with cgo.
func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

// OpenSQLite opens (creating if needed) the SQLite database at path with the
// driver this build uses.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return db, nil
}

// URI filenames have to begin with 'file:'; see
// https://www.sqlite.org/c3ref/open.html . It seems that sqlite3 permitted
// URI filenames without the file: prefix, but that is not standard.
func sqliteURI(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path
}

func sqliteType(c ColumnType) string {
	switch c {
	case ColumnInteger, ColumnBool:
		return "INTEGER"
	case ColumnFloat:
		return "REAL"
	}
	return "TEXT"
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteSQLite stores the table as the SQLite table name in the database at
// path, replacing any table of that name. All rows go in one transaction.
func (t *Table) WriteSQLite(path, name string) error {
	db, err := OpenSQLite(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer db.Close()

	if err := t.writeSQLite(db, name); err != nil {
		return pfx.Err(err)
	}
	return nil
}

func (t *Table) writeSQLite(db *sqlx.DB, name string) error {
	cols := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))
	for i, c := range t.columns {
		cols[i] = quoteIdentifier(c.Name) + " " + sqliteType(c.Type)
		marks[i] = "?"
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + quoteIdentifier(name)); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(name), strings.Join(cols, ", "))); err != nil {
		return err
	}

	stmt, err := tx.Preparex(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdentifier(name), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]interface{}, len(t.columns))
	for r := 0; r < t.nRows; r++ {
		for i, c := range t.columns {
			args[i] = c.Values[r]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
	}

	return tx.Commit()
}
