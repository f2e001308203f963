package model

import (
	"resort/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldCode      = "code"
	FieldStatus    = "status"
	FieldCheckIn   = "check_in"
	FieldCreatedAt = "created_at"
)

const (
	AccommodationDay       = "day"
	AccommodationOvernight = "overnight"

	AddOnKaraoke = "karaoke"
)

type Booking struct {
	ID              string         `db:"id"`
	Code            string         `db:"code"`
	GuestName       string         `db:"guest_name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	CheckIn         time.Time      `db:"check_in"`
	CheckOut        *time.Time     `db:"check_out"`
	Accommodation   string         `db:"accommodation"`
	Guests          int            `db:"guests"`
	AddOns          pq.StringArray `db:"add_ons"`
	TotalAmount     int64          `db:"total_amount"`
	SpecialRequests string         `db:"special_requests"`
	Status          Status         `db:"status"`
	model.Metadata
}

// Revenue counts only bookings that were confirmed or already completed.
func (b Booking) Revenue() int64 {
	if b.Status == StatusConfirmed || b.Status == StatusCompleted {
		return b.TotalAmount
	}

	return 0
}

// DateOf returns the calendar date of t as UTC midnight, the form check-in dates are stored in.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
