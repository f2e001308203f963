package model

import (
	"resort/shared/model"
	"time"
)

const (
	TableName  = "testimonials"
	EntityName = "testimonial"

	FieldID         = "id"
	FieldStatus     = "status"
	FieldApprovedAt = "approved_at"
	FieldCreatedAt  = "created_at"

	VisitTypeDay       = "day"
	VisitTypeOvernight = "overnight"

	MinRating = 1
	MaxRating = 5
)

type Testimonial struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	Email      string     `db:"email"`
	Rating     int        `db:"rating"`
	Message    string     `db:"message"`
	VisitType  string     `db:"visit_type"`
	Status     Status     `db:"status"`
	ApprovedAt *time.Time `db:"approved_at"`
	model.Metadata
}

// Published reports whether the testimonial may be shown on the public site.
func (t Testimonial) Published() bool {
	return t.Status == StatusApproved
}
