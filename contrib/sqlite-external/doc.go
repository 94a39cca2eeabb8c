// Package sqliteexternal registers the CGO SQLite driver
// (github.com/mattn/go-sqlite3) for builds that opt in to it.
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/yosina
//
// With the tag set, core/sqlite opens every database through this driver.
// Without it the pure Go modernc.org/sqlite driver is used and this package
// compiles to nothing.
package sqliteexternal
