package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"resort/infras/otel/mocks"
	"resort/infras/postgres"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/repository"
	"resort/shared"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestRepository_UpdateStatus(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE bookings SET modified_at = $1, modified_by = $2, status = $3  WHERE (bookings.id = $4 AND bookings.status = $5)")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      bool
		wantErr   bool
	}{
		{
			name: "status still matches",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(sqlmock.AnyArg(), "admin-1", "confirmed", "b-1", "pending").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "status changed concurrently",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(sqlmock.AnyArg(), "admin-1", "confirmed", "b-1", "pending").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			got, err := repo.UpdateStatus(context.Background(), "b-1", model.StatusPending, model.StatusConfirmed, "admin-1")

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

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepository(t)

	columns := []string{
		"id", "code", "guest_name", "email", "phone", "check_in", "check_out", "accommodation",
		"guests", "add_ons", "total_amount", "special_requests", "status",
		"created_at", "modified_at", "created_by", "modified_by",
	}

	checkIn := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare("SELECT (.+) FROM bookings").
		ExpectQuery().
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"b-1", "RST-20260610-ABCDEF", "Maria Santos", "maria@mail.test", "0917", checkIn, nil, "overnight",
			4, []byte(`{karaoke}`), 1900, "", "pending",
			checkIn, checkIn, "maria@mail.test", "maria@mail.test",
		))

	booking, err := repo.Get(context.Background(), shared.FilterByID("b-1", model.FieldID, model.TableName))
	require.NoError(t, err)

	assert.Equal(t, "RST-20260610-ABCDEF", booking.Code)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, []string{"karaoke"}, []string(booking.AddOns))
	assert.Nil(t, booking.CheckOut)
	assert.Equal(t, int64(1900), booking.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT (.+) FROM bookings").
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	booking, err := repo.Get(context.Background(), shared.FilterByID("missing", model.FieldID, model.TableName))
	require.NoError(t, err)

	assert.Empty(t, booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
