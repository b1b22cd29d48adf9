package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/retail-ops-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestStoreRepositoryListActiveByPriority(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStoreRepository(db)

	now := time.Now().UTC()
	sup := "emp-9"
	rows := sqlmock.NewRows([]string{"id", "code", "name", "region", "supervisor_id", "priority", "active", "created_at", "updated_at"}).
		AddRow("st-1", "JKT-01", "Central", "Jakarta", sup, 1, true, now, now).
		AddRow("st-2", "JKT-02", "Harbour", "Jakarta", nil, 2, true, now, now)

	mock.ExpectQuery(`SELECT .+ FROM stores WHERE active = true\s+ORDER BY priority ASC, id ASC`).
		WillReturnRows(rows)

	stores, err := repo.ListActiveByPriority(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "st-1", stores[0].ID)
	assert.Equal(t, "emp-9", *stores[0].SupervisorID)
	assert.Nil(t, stores[1].SupervisorID)
	assert.Equal(t, models.UnassignedSupervisor, stores[1].SupervisorKey())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepositoryUpsertSetting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStoreRepository(db)

	mock.ExpectExec(`INSERT INTO activity_settings .+ ON CONFLICT \(store_id\) DO UPDATE`).
		WithArgs("st-1", pq.Int64Array{3, 6}, pq.Int64Array{7}, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertSetting(context.Background(), &models.ActivitySetting{
		StoreID:       "st-1",
		AllowedDays:   pq.Int64Array{3, 6},
		ForbiddenDays: pq.Int64Array{7},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepositoryUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStoreRepository(db)

	mock.ExpectExec(`UPDATE stores`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Store{ID: "missing", Code: "X", Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepositoryListBuildsFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStoreRepository(db)

	active := true
	filter := models.StoreFilter{
		Search:   "Central",
		Active:   &active,
		Page:     1,
		PageSize: 20,
		SortBy:   "name",
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM stores s WHERE`).
		WithArgs("%Central%", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM stores s\s+LEFT JOIN employees e`).
		WithArgs("%Central%", true, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "region", "supervisor_id", "priority", "active", "created_at", "updated_at", "supervisor_name"}).
			AddRow("st-1", "JKT-01", "Central", "Jakarta", nil, 1, true, now, now, nil))

	stores, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, stores, 1)
	assert.Equal(t, "Central", stores[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
