package dto

import (
	"fmt"
	"resort/internal/domains/booking/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/validator"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	GuestName       string   `json:"guest_name"       validate:"notblank,max=100"`
	Email           string   `json:"email"            validate:"notblank,email,max=100"`
	Phone           string   `json:"phone"            validate:"notblank,max=20"`
	CheckIn         string   `json:"check_in"         validate:"notblank,datetime=2006-01-02"`
	CheckOut        string   `json:"check_out"        validate:"omitempty,datetime=2006-01-02"`
	Accommodation   string   `json:"accommodation"    validate:"notblank,oneof=day overnight"`
	Guests          int      `json:"guests"           validate:"gte=1"`
	AddOns          []string `json:"add_ons"`
	SpecialRequests string   `json:"special_requests" validate:"omitempty,max=1000"`
}

// Validate returns one message per violated field. Field rules come first, then the
// date rules against today, then the guest limit.
func (c *CreateBookingRequest) Validate(today time.Time, maxGuests int) []string {
	msgs := validator.Messages(c)

	checkIn, checkInErr := time.Parse(time.DateOnly, c.CheckIn)
	if checkInErr == nil && checkIn.Before(model.DateOf(today)) {
		msgs = append(msgs, "check_in must not be earlier than today")
	}

	if c.CheckOut != "" && checkInErr == nil {
		checkOut, err := time.Parse(time.DateOnly, c.CheckOut)
		if err == nil && !checkOut.After(checkIn) {
			msgs = append(msgs, "check_out must be later than check_in")
		}
	}

	if c.Guests > maxGuests {
		msgs = append(msgs, fmt.Sprintf("guests must be less than or equal to %d", maxGuests))
	}

	return msgs
}

// ToModel assumes Validate reported no messages.
func (c *CreateBookingRequest) ToModel(code string, quote model.Quote, now time.Time) model.Booking {
	checkIn, _ := time.Parse(time.DateOnly, c.CheckIn)

	var checkOut *time.Time

	if c.CheckOut != "" {
		parsed, _ := time.Parse(time.DateOnly, c.CheckOut)
		checkOut = &parsed
	}

	return model.Booking{
		ID:              uuid.NewString(),
		Code:            code,
		GuestName:       c.GuestName,
		Email:           c.Email,
		Phone:           c.Phone,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Accommodation:   quote.Accommodation,
		Guests:          quote.Guests,
		AddOns:          quote.AddOns,
		TotalAmount:     quote.Total,
		SpecialRequests: c.SpecialRequests,
		Status:          model.StatusPending,
		Metadata:        gModel.NewMetadata(c.Email, now),
	}
}

type QuoteRequest struct {
	Accommodation string   `json:"accommodation" validate:"notblank,oneof=day overnight"`
	Guests        int      `json:"guests"        validate:"gte=1"`
	AddOns        []string `json:"add_ons"`
}

// QuoteResponse is the price breakdown returned before submitting.
type QuoteResponse = model.Quote

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

type BookingResponse struct {
	ID              string   `json:"id"`
	Code            string   `json:"code"`
	GuestName       string   `json:"guest_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	CheckIn         string   `json:"check_in"`
	CheckOut        *string  `json:"check_out"`
	Accommodation   string   `json:"accommodation"`
	Guests          int      `json:"guests"`
	AddOns          []string `json:"add_ons"`
	TotalAmount     int64    `json:"total_amount"`
	SpecialRequests string   `json:"special_requests"`
	Status          string   `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.GuestName = model.GuestName
	r.Email = model.Email
	r.Phone = model.Phone
	r.CheckIn = model.CheckIn.Format(time.DateOnly)
	r.CheckOut = nil

	if model.CheckOut != nil {
		checkOut := model.CheckOut.Format(time.DateOnly)
		r.CheckOut = &checkOut
	}

	r.Accommodation = model.Accommodation
	r.Guests = model.Guests
	r.AddOns = append([]string{}, model.AddOns...)
	r.TotalAmount = model.TotalAmount
	r.SpecialRequests = model.SpecialRequests
	r.Status = model.Status.String()
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
