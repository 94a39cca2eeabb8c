package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
)

// TableName is the table ExportIVS writes.
const TableName = "ivs_svs_base"

const schema = `
CREATE TABLE IF NOT EXISTS ivs_svs_base (
	id       INTEGER PRIMARY KEY,
	ivs      TEXT NOT NULL UNIQUE,
	svs      TEXT,
	base90   TEXT,
	base2004 TEXT
);
CREATE INDEX IF NOT EXISTS ivs_svs_base_svs ON ivs_svs_base (svs);
CREATE INDEX IF NOT EXISTS ivs_svs_base_base90 ON ivs_svs_base (base90);
CREATE INDEX IF NOT EXISTS ivs_svs_base_base2004 ON ivs_svs_base (base2004);
`

// CreateSchema creates the variant table and its indexes if missing.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "create ivs schema")
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ExportIVS replaces the contents of the variant table with records in a
// single transaction and returns the number of rows written.
func ExportIVS(ctx context.Context, db *sql.DB, records []ivssvs.Record) (int, error) {
	if err := CreateSchema(ctx, db); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin export")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM ivs_svs_base`); err != nil {
		return 0, errors.Wrap(err, "clear ivs table")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ivs_svs_base (id, ivs, svs, base90, base2004) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for i, r := range records {
		if r.IVS == "" {
			return 0, errors.NewValidation("ivs", fmt.Sprintf("record %d has no IVS", i))
		}
		if _, err := stmt.ExecContext(ctx, i+1, r.IVS, nullable(r.SVS), nullable(r.Base90), nullable(r.Base2004)); err != nil {
			return 0, errors.Wrapf(err, "insert record %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit export")
	}
	return len(records), nil
}

const selectColumns = `SELECT ivs, svs, base90, base2004 FROM ivs_svs_base`

func scanRecords(rows *sql.Rows) ([]ivssvs.Record, error) {
	defer rows.Close()

	var out []ivssvs.Record
	for rows.Next() {
		var (
			r                     ivssvs.Record
			svs, base90, base2004 sql.NullString
		)
		if err := rows.Scan(&r.IVS, &svs, &base90, &base2004); err != nil {
			return nil, errors.Wrap(err, "scan ivs record")
		}
		r.SVS = svs.String
		r.Base90 = base90.String
		r.Base2004 = base2004.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read ivs records")
	}
	return out, nil
}

// LookupIVS returns every record whose IVS, SVS or base character equals
// s. It returns a NotFoundError when nothing matches.
func LookupIVS(ctx context.Context, db *sql.DB, s string) ([]ivssvs.Record, error) {
	rows, err := db.QueryContext(ctx,
		selectColumns+` WHERE ivs = ?1 OR svs = ?1 OR base90 = ?1 OR base2004 = ?1 ORDER BY id`, s)
	if err != nil {
		return nil, errors.Wrap(err, "query ivs records")
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewNotFound("ivs record", s)
	}
	return records, nil
}

// ImportIVS reads the whole variant table back into an indexed table.
func ImportIVS(ctx context.Context, db *sql.DB) (*ivssvs.Table, error) {
	rows, err := db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query ivs records")
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return ivssvs.NewTable(records)
}
