// Package sqlite stores the IVS/SVS variant table in SQLite.
//
// The driver is chosen at build time: modernc.org/sqlite by default, or
// mattn/go-sqlite3 through contrib/sqlite-external when built with
// -tags cgo_sqlite (CGO_ENABLED=1).
package sqlite

import (
	"context"
	"database/sql"

	"github.com/FocuswithJustin/yosina/core/errors"
)

// Driver describes the SQLite driver compiled into the binary.
type Driver struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Package string `json:"package"`
}

// CurrentDriver returns the driver variant databases are opened with.
func CurrentDriver() Driver {
	return Driver{Name: driverName, Type: driverType, Package: driverPackage}
}

// DriverType is "purego" or "cgo".
func DriverType() string {
	return driverType
}

// Open opens the variant database at path, creating the file and the
// variant table if they do not exist yet.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, "file:"+path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewIO("open", path, err)
	}
	return db, nil
}

// OpenReadOnly opens an existing variant database for lookups. A database
// without the variant table is reported as a NotFoundError.
func OpenReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	var name string
	err = db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, TableName).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		db.Close()
		return nil, errors.NewNotFound("table", TableName)
	case err != nil:
		db.Close()
		return nil, errors.NewIO("open", path, err)
	}
	return db, nil
}
