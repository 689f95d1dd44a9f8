// Package testsupport holds helpers shared by storage-backed tests.
package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var dbSeq atomic.Int64

// NewSQLiteMemoryDB opens a fresh in-memory sqlite database. Each call gets
// its own named database so parallel tests never share state.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:pagebuilder_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	return sql.Open("sqlite3", dsn)
}
