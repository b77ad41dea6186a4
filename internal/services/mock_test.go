package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockDB wraps the mocked handle so service constructors in tests read
// naturally.
type sqlmockDB struct {
	DB *sql.DB
}

func newSQLMock(t *testing.T) (sqlmockDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return sqlmockDB{DB: db}, mock
}
