package model

import (
	"strings"
)

// FilterBookings keeps bookings whose status contains status and whose guest name,
// email, phone or accommodation contains search. Matching is case-insensitive and
// empty criteria match everything. The input slice is not modified.
func FilterBookings(bookings []Booking, status, search string) []Booking {
	status = strings.ToLower(strings.TrimSpace(status))
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]Booking, 0, len(bookings))

	for _, booking := range bookings {
		if status != "" && !strings.Contains(strings.ToLower(string(booking.Status)), status) {
			continue
		}

		if search != "" && !matchesSearch(booking, search) {
			continue
		}

		filtered = append(filtered, booking)
	}

	return filtered
}

func matchesSearch(booking Booking, search string) bool {
	for _, field := range []string{booking.GuestName, booking.Email, booking.Phone, booking.Accommodation} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}

	return false
}
