package repositories

import "database/sql"

// Execer is satisfied by both *sql.DB and *sql.Tx so services can run
// repository calls inside their own transaction.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
