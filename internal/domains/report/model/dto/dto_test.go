package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "resort/internal/domains/booking/model"
	"resort/internal/domains/report/model"
	"resort/internal/domains/report/model/dto"
	"resort/shared/validator"
)

func TestReportRequest_Range(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.ReportRequest
		wantFrom *time.Time
		wantTo   *time.Time
		wantErr  bool
	}{
		{
			name: "unbounded",
			req:  dto.ReportRequest{},
		},
		{
			name:     "both ends",
			req:      dto.ReportRequest{From: "2026-06-01", To: "2026-06-30"},
			wantFrom: ptr(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)),
			wantTo:   ptr(time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "same day",
			req:      dto.ReportRequest{From: "2026-06-01", To: "2026-06-01"},
			wantFrom: ptr(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)),
			wantTo:   ptr(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:    "reversed",
			req:     dto.ReportRequest{From: "2026-06-30", To: "2026-06-01"},
			wantErr: true,
		},
		{
			name:    "malformed",
			req:     dto.ReportRequest{From: "06/01/2026"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := tt.req.Range()

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestReportRequest_Validation(t *testing.T) {
	req := dto.ReportRequest{From: "yesterday"}

	assert.Equal(t, []string{"from must be a date in the format 2006-01-02"}, validator.Messages(&req))
}

func TestDashboardResponse_FromModels(t *testing.T) {
	res := dto.DashboardResponse{}
	res.FromModels(model.Summary{TotalRevenue: 700}, 3, []bookingModel.Booking{{ID: "b-1", Code: "RST-20260601-ABC123"}})

	assert.Equal(t, int64(700), res.TotalRevenue)
	assert.Equal(t, 3, res.PendingTestimonials)
	require.Len(t, res.RecentBookings, 1)
	assert.Equal(t, "RST-20260601-ABC123", res.RecentBookings[0].Code)
	assert.NotEmpty(t, res.GeneratedAt)
}

func ptr[T any](v T) *T {
	return &v
}
