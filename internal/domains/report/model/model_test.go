package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "resort/internal/domains/booking/model"
	contactModel "resort/internal/domains/contact/model"
	"resort/internal/domains/report/model"
)

func booking(status bookingModel.Status, accommodation string, guests int, total int64, checkIn time.Time) bookingModel.Booking {
	return bookingModel.Booking{
		Status:        status,
		Accommodation: accommodation,
		Guests:        guests,
		TotalAmount:   total,
		CheckIn:       checkIn,
	}
}

func TestAggregate(t *testing.T) {
	june := time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)
	may := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)

	bookings := []bookingModel.Booking{
		booking(bookingModel.StatusConfirmed, bookingModel.AccommodationOvernight, 4, 1900, june),
		booking(bookingModel.StatusCompleted, bookingModel.AccommodationDay, 2, 700, may),
		booking(bookingModel.StatusPending, bookingModel.AccommodationDay, 3, 800, june),
		booking(bookingModel.StatusCancelled, bookingModel.AccommodationDay, 1, 600, may),
	}

	contacts := []contactModel.ContactMessage{
		{Status: contactModel.StatusNew},
		{Status: contactModel.StatusNew},
		{Status: contactModel.StatusReplied},
	}

	summary := model.Aggregate(bookings, contacts)

	assert.Equal(t, int64(2600), summary.TotalRevenue)
	assert.Equal(t, 4, summary.TotalBookings)
	assert.Equal(t, 10, summary.TotalGuests)
	assert.Equal(t, map[string]int{"pending": 1, "confirmed": 1, "completed": 1, "cancelled": 1}, summary.BookingsByStatus)
	assert.Equal(t, map[string]int{"day": 3, "overnight": 1}, summary.Accommodation)
	assert.Equal(t, []model.MonthlyRevenue{
		{Month: "2026-05", Revenue: 700, Bookings: 2},
		{Month: "2026-06", Revenue: 1900, Bookings: 2},
	}, summary.MonthlyRevenue)
	assert.Equal(t, 3, summary.TotalContacts)
	assert.Equal(t, map[string]int{"new": 2, "read": 0, "replied": 1}, summary.ContactsByStatus)

	assert.Equal(t, summary, model.Aggregate(bookings, contacts))
}

func TestAggregate_Empty(t *testing.T) {
	summary := model.Aggregate(nil, nil)

	assert.Zero(t, summary.TotalRevenue)
	assert.Empty(t, summary.MonthlyRevenue)
	assert.NotNil(t, summary.MonthlyRevenue)
	assert.Equal(t, 0, summary.BookingsByStatus["pending"])
	assert.Len(t, summary.BookingsByStatus, 4)
	assert.Len(t, summary.ContactsByStatus, 3)
}
