// Package template renders the plain text bodies of notification mails.
package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"resort/internal/domains/report/model/dto"
	"resort/shared/event"
)

const (
	bookingCreated = `New booking {{.Code}}

Guest:         {{.GuestName}} <{{.Email}}> {{.Phone}}
Accommodation: {{.Accommodation}}
Check-in:      {{.CheckIn}}{{if .CheckOut}}
Check-out:     {{.CheckOut}}{{end}}
Guests:        {{.Guests}}
Total:         {{.TotalAmount}}
`

	bookingConfirmed = `Hello {{.GuestName}},

Your booking {{.Code}} for {{.CheckIn}} is confirmed. We look forward to welcoming you.
`

	bookingCancelled = `Hello {{.GuestName}},

Your booking {{.Code}} for {{.CheckIn}} has been cancelled. Reply to this mail if you think this is a mistake.
`

	contactReceived = `New message from {{.Name}} <{{.Email}}>

Subject: {{.Subject}}

{{.Message}}
`

	testimonialSubmitted = `A testimonial from {{.Name}} is waiting for moderation.

Rating:     {{stars .Rating}}
Visit type: {{.VisitType}}

{{.Message}}
`

	digest = `Daily digest generated at {{.GeneratedAt}}

Revenue:              {{.TotalRevenue}}
Bookings:             {{.TotalBookings}}
Guests:               {{.TotalGuests}}
Pending testimonials: {{.PendingTestimonials}}

Bookings by status{{range $status, $count := .BookingsByStatus}}
  {{$status}}: {{$count}}{{end}}

Contacts by status{{range $status, $count := .ContactsByStatus}}
  {{$status}}: {{$count}}{{end}}
{{if .RecentBookings}}
Latest bookings{{range .RecentBookings}}
  {{.Code}} {{.GuestName}} {{.CheckIn}} {{.Status}}{{end}}
{{end}}`
)

var funcs = template.FuncMap{
	"stars": func(rating int) string { return strings.Repeat("*", max(0, rating)) },
}

var templates = template.Must(template.New("mail").Funcs(funcs).Parse(``))

func init() {
	for name, text := range map[string]string{
		"booking_created":       bookingCreated,
		"booking_confirmed":     bookingConfirmed,
		"booking_cancelled":     bookingCancelled,
		"contact_received":      contactReceived,
		"testimonial_submitted": testimonialSubmitted,
		"digest":                digest,
	} {
		template.Must(templates.New(name).Parse(text))
	}
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.String(), nil
}

func BookingCreated(e event.BookingCreated) (string, error) {
	return render("booking_created", e)
}

func BookingConfirmed(e event.BookingStatusChanged) (string, error) {
	return render("booking_confirmed", e)
}

func BookingCancelled(e event.BookingStatusChanged) (string, error) {
	return render("booking_cancelled", e)
}

func ContactReceived(e event.ContactReceived) (string, error) {
	return render("contact_received", e)
}

func TestimonialSubmitted(e event.TestimonialSubmitted) (string, error) {
	return render("testimonial_submitted", e)
}

func Digest(d dto.DashboardResponse) (string, error) {
	return render("digest", d)
}
