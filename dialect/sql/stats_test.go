package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/enumgen/dialect"
)

func newStatsDriver(t *testing.T, opts ...StatsOption) (*StatsDriver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStatsDriver(OpenDB(dialect.MySQL, db), opts...), mock
}

func TestStatsDriverCountsQueries(t *testing.T) {
	drv, mock := newStatsDriver(t)
	mock.ExpectQuery("SELECT CategoryID").
		WillReturnRows(sqlmock.NewRows([]string{"CategoryID"}).AddRow(1))
	mock.ExpectQuery("SELECT Broken").
		WillReturnError(errors.New("table gone"))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT CategoryID FROM Categories", []any{}, rows))
	require.NoError(t, rows.Close())

	err := drv.Query(context.Background(), "SELECT Broken FROM Nowhere", []any{}, &Rows{})
	require.Error(t, err)

	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(2), s.TotalQueries)
	assert.Equal(t, int64(1), s.Errors)
	assert.Greater(t, s.TotalDuration, time.Duration(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriverSlowHook(t *testing.T) {
	var (
		gotQuery    string
		gotDuration time.Duration
	)
	drv, mock := newStatsDriver(t,
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, duration time.Duration) {
			gotQuery = query
			gotDuration = duration
		}),
	)
	mock.ExpectQuery("SELECT LookupVal").
		WillReturnRows(sqlmock.NewRows([]string{"LookupVal"}).AddRow("F"))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT LookupVal FROM muck_lookup", []any{}, rows))
	require.NoError(t, rows.Close())

	assert.Equal(t, "SELECT LookupVal FROM muck_lookup", gotQuery)
	assert.Greater(t, gotDuration, time.Duration(0))
	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)
}

func TestStatsDriverThreshold(t *testing.T) {
	drv, _ := newStatsDriver(t)
	assert.Equal(t, 100*time.Millisecond, drv.SlowThreshold())

	drv.SetSlowThreshold(time.Second)
	assert.Equal(t, time.Second, drv.SlowThreshold())
}

func TestStatsDriverKeepsDriverContract(t *testing.T) {
	drv, _ := newStatsDriver(t)
	assert.Equal(t, dialect.MySQL, drv.Dialect())
}

func TestQueryStatsReset(t *testing.T) {
	drv, mock := newStatsDriver(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"c"}).AddRow(1))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT c FROM t", []any{}, rows))
	require.NoError(t, rows.Close())
	require.Equal(t, int64(1), drv.QueryStats().Stats().TotalQueries)

	drv.QueryStats().Reset()
	s := drv.QueryStats().Stats()
	assert.Zero(t, s.TotalQueries)
	assert.Zero(t, s.TotalDuration)
	assert.Zero(t, s.SlowQueries)
	assert.Zero(t, s.Errors)
}

func TestStatsSnapshot(t *testing.T) {
	s := StatsSnapshot{
		TotalQueries:  2,
		TotalDuration: 10 * time.Millisecond,
		SlowQueries:   1,
		Errors:        0,
	}
	assert.Equal(t, 5*time.Millisecond, s.AvgQueryDuration())
	assert.Equal(t, "queries=2 duration=10ms avg=5ms slow=1 errors=0", s.String())

	assert.Zero(t, StatsSnapshot{}.AvgQueryDuration())
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var logged []string
	drv := NewDebugDriver(OpenDB(dialect.MySQL, db), DebugWithLog(func(_ context.Context, v ...any) {
		for _, x := range v {
			logged = append(logged, x.(string))
		}
	}))
	mock.ExpectQuery("SELECT CategoryID").
		WillReturnRows(sqlmock.NewRows([]string{"CategoryID"}).AddRow(1))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT CategoryID FROM Categories", []any{}, rows))
	require.NoError(t, rows.Close())

	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "SELECT CategoryID FROM Categories")
	assert.NoError(t, mock.ExpectationsWereMet())
}
