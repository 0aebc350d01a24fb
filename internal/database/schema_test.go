package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRunsEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range schema {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(schema[0]).WillReturnError(errors.New("boom"))

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema statement 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaDeclaresBothShowForeignKeys(t *testing.T) {
	shows := schema[len(schema)-1]
	assert.Contains(t, shows, "REFERENCES artists (id)")
	assert.Contains(t, shows, "REFERENCES venues (id)")
	assert.Contains(t, shows, "start_time DATETIME")
}

func TestDSN(t *testing.T) {
	o := Options{User: "fyyur", Pass: "secret", Host: "db", Port: "3306", Name: "fyyur", ConnMaxLifetime: time.Minute}
	dsn := o.DSN()
	assert.Contains(t, dsn, "fyyur:secret@tcp(db:3306)/fyyur")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Equal(t, "db:3306", o.Addr())
}
