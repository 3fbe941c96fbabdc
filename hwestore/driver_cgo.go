//go:build cgo

package hwestore

// With cgo, the mattn sqlite3 driver is used. It is faster than the modernc
// driver.

import _ "github.com/mattn/go-sqlite3"

const whichSQLiteDriver = "sqlite3"
