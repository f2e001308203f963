package dto

import (
	"fmt"
	bookingModel "resort/internal/domains/booking/model"
	bookingDto "resort/internal/domains/booking/model/dto"
	"resort/internal/domains/report/model"
	"resort/shared/timezone"
	"time"
)

// ReportRequest bounds the report by check-in date. Both ends are inclusive and optional.
type ReportRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to"   validate:"omitempty,datetime=2006-01-02"`
}

// Range returns the parsed bounds. Call it after struct validation.
func (r ReportRequest) Range() (from, to *time.Time, err error) {
	if r.From != "" {
		parsed, err := time.Parse(time.DateOnly, r.From)
		if err != nil {
			return nil, nil, fmt.Errorf("from: %w", err)
		}

		from = &parsed
	}

	if r.To != "" {
		parsed, err := time.Parse(time.DateOnly, r.To)
		if err != nil {
			return nil, nil, fmt.Errorf("to: %w", err)
		}

		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("to must not be before from")
	}

	return from, to, nil
}

type DashboardResponse struct {
	model.Summary
	PendingTestimonials int                          `json:"pending_testimonials"`
	RecentBookings      []bookingDto.BookingResponse `json:"recent_bookings"`
	GeneratedAt         string                       `json:"generated_at"`
}

func (d *DashboardResponse) FromModels(summary model.Summary, pending int, recent []bookingModel.Booking) {
	d.Summary = summary
	d.PendingTestimonials = pending
	d.RecentBookings = make([]bookingDto.BookingResponse, len(recent))

	for i, booking := range recent {
		d.RecentBookings[i].FromModel(booking)
	}

	d.GeneratedAt = timezone.Now().Format(time.RFC3339)
}

type ReportResponse struct {
	model.Summary
	From        *string `json:"from"`
	To          *string `json:"to"`
	GeneratedAt string  `json:"generated_at"`
}

func (r *ReportResponse) FromModel(summary model.Summary, req ReportRequest) {
	r.Summary = summary

	if req.From != "" {
		r.From = &req.From
	}

	if req.To != "" {
		r.To = &req.To
	}

	r.GeneratedAt = timezone.Now().Format(time.RFC3339)
}
