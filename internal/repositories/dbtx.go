package repositories

import "database/sql"

// DBTX lets repository writes run either on the shared pool or inside a
// caller-owned transaction. Booking mutations and their slot side effects
// must share one transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
