package event

// Topics consumed by the notification worker.
var Topics = []string{
	TopicBookingCreated,
	TopicBookingStatusChanged,
	TopicContactReceived,
	TopicTestimonialSubmitted,
}

const (
	TopicBookingCreated       = "booking.created"
	TopicBookingStatusChanged = "booking.status_changed"
	TopicContactReceived      = "contact.received"
	TopicTestimonialSubmitted = "testimonial.submitted"
)

type BookingCreated struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	GuestName     string `json:"guest_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out,omitempty"`
	Accommodation string `json:"accommodation"`
	Guests        int    `json:"guests"`
	TotalAmount   int64  `json:"total_amount"`
}

type BookingStatusChanged struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	GuestName string `json:"guest_name"`
	Email     string `json:"email"`
	CheckIn   string `json:"check_in"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changed_by"`
}

type ContactReceived struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type TestimonialSubmitted struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	VisitType string `json:"visit_type"`
	Message   string `json:"message"`
}
