//go:build !cgo

package hwestore

import _ "modernc.org/sqlite"

const whichSQLiteDriver = "sqlite"
