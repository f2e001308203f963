package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"resort/infras/otel/mocks"
	"resort/infras/postgres"
	"resort/shared/dto"
	"resort/shared/model"
	"resort/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amenity struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Note     string `db:"-"`
	model.Metadata
}

func newRepository(t *testing.T) (repository.Repository[amenity], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[amenity]("amenity", "amenities", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "amenities"}}}
}

func TestRepository_Columns(t *testing.T) {
	repo, _ := newRepository(t)

	assert.Equal(t, []string{"id", "name", "capacity", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)

	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO amenities (id, name, capacity, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6, $7)")).
		WithArgs("a-1", "Karaoke room", 12, now, now, "system", "system").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), amenity{
		ID: "a-1", Name: "Karaoke room", Capacity: 12,
		Metadata: model.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: "system", ModifiedBy: "system"},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("ORDER BY amenities.name ASC LIMIT $1 OFFSET $2")).
		ExpectQuery().
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("a-1", "Pool").AddRow("a-2", "Karaoke room"))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}, dto.FilterGroup{}, "id", "name")
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, "Karaoke room", got[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllEmpty(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT (.+) FROM amenities").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{}, dto.FilterGroup{})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_Exist(t *testing.T) {
	repo, mock := newRepository(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM amenities")).
		ExpectQuery().
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), byID("a-1"))
	require.NoError(t, err)

	assert.True(t, exist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(amenities.id) FROM amenities")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)

	assert.Equal(t, 3, count)
}

func TestRepository_UpdateCount(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.FilterGroup
		setupMock func(mock sqlmock.Sqlmock)
		want      int64
		wantErr   bool
	}{
		{
			name:   "columns are assigned in sorted order",
			filter: byID("a-1"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE amenities SET capacity = $1, name = $2  WHERE (amenities.id = $3)")).
					WithArgs(20, "Function hall", "a-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: 1,
		},
		{
			name:   "no matching row",
			filter: byID("gone"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE amenities").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: 0,
		},
		{
			name:   "database error",
			filter: byID("a-1"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE amenities").WillReturnError(errors.New("deadlock detected"))
			},
			wantErr: true,
		},
		{
			name:      "missing filter",
			filter:    dto.FilterGroup{},
			setupMock: func(sqlmock.Sqlmock) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			got, err := repo.UpdateCount(context.Background(), map[string]any{"name": "Function hall", "capacity": 20}, tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepository(t)

	assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM amenities")).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), byID("a-1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
