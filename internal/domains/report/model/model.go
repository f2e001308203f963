package model

import (
	bookingModel "resort/internal/domains/booking/model"
	contactModel "resort/internal/domains/contact/model"
	"slices"
	"strings"
)

const monthLayout = "2006-01"

type MonthlyRevenue struct {
	Month    string `json:"month"`
	Revenue  int64  `json:"revenue"`
	Bookings int    `json:"bookings"`
}

// Summary is the read-side fold over bookings and contact messages.
type Summary struct {
	TotalRevenue     int64            `json:"total_revenue"`
	TotalBookings    int              `json:"total_bookings"`
	TotalGuests      int              `json:"total_guests"`
	BookingsByStatus map[string]int   `json:"bookings_by_status"`
	Accommodation    map[string]int   `json:"accommodation"`
	MonthlyRevenue   []MonthlyRevenue `json:"monthly_revenue"`
	TotalContacts    int              `json:"total_contacts"`
	ContactsByStatus map[string]int   `json:"contacts_by_status"`
}

// Aggregate has no side effects; the same input always yields the same Summary.
// Every known status and accommodation key is present, zero when unused.
func Aggregate(bookings []bookingModel.Booking, contacts []contactModel.ContactMessage) Summary {
	summary := Summary{
		TotalBookings:    len(bookings),
		BookingsByStatus: make(map[string]int, len(bookingModel.Statuses)),
		Accommodation: map[string]int{
			bookingModel.AccommodationDay:       0,
			bookingModel.AccommodationOvernight: 0,
		},
		MonthlyRevenue:   []MonthlyRevenue{},
		TotalContacts:    len(contacts),
		ContactsByStatus: make(map[string]int, len(contactModel.Statuses)),
	}

	for _, status := range bookingModel.Statuses {
		summary.BookingsByStatus[status.String()] = 0
	}

	for _, status := range contactModel.Statuses {
		summary.ContactsByStatus[status.String()] = 0
	}

	months := map[string]*MonthlyRevenue{}

	for _, booking := range bookings {
		revenue := booking.Revenue()

		summary.TotalRevenue += revenue
		summary.TotalGuests += booking.Guests
		summary.BookingsByStatus[booking.Status.String()]++
		summary.Accommodation[booking.Accommodation]++

		key := booking.CheckIn.Format(monthLayout)

		bucket, ok := months[key]
		if !ok {
			bucket = &MonthlyRevenue{Month: key}
			months[key] = bucket
		}

		bucket.Revenue += revenue
		bucket.Bookings++
	}

	for _, contact := range contacts {
		summary.ContactsByStatus[contact.Status.String()]++
	}

	for _, bucket := range months {
		summary.MonthlyRevenue = append(summary.MonthlyRevenue, *bucket)
	}

	slices.SortFunc(summary.MonthlyRevenue, func(a, b MonthlyRevenue) int {
		return strings.Compare(a.Month, b.Month)
	})

	return summary
}
