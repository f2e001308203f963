package dto

import (
	"resort/internal/domains/testimonial/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateTestimonialRequest struct {
	Name      string `json:"name"       validate:"notblank,max=100"`
	Email     string `json:"email"      validate:"notblank,email,max=100"`
	Rating    int    `json:"rating"     validate:"gte=1,lte=5"`
	Message   string `json:"message"    validate:"notblank,max=2000"`
	VisitType string `json:"visit_type" validate:"notblank,oneof=day overnight"`
}

func (c *CreateTestimonialRequest) ToModel(now time.Time) model.Testimonial {
	return model.Testimonial{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(c.Name),
		Email:     strings.TrimSpace(c.Email),
		Rating:    c.Rating,
		Message:   c.Message,
		VisitType: c.VisitType,
		Status:    model.StatusPending,
		Metadata:  gModel.NewMetadata(c.Email, now),
	}
}

type TestimonialResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Rating     int     `json:"rating"`
	Message    string  `json:"message"`
	VisitType  string  `json:"visit_type"`
	Status     string  `json:"status"`
	ApprovedAt *string `json:"approved_at"`
	gDto.Metadata
}

func (r *TestimonialResponse) FromModel(model model.Testimonial) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Rating = model.Rating
	r.Message = model.Message
	r.VisitType = model.VisitType
	r.Status = model.Status.String()
	r.ApprovedAt = nil

	if model.ApprovedAt != nil {
		approvedAt := timezone.Format(*model.ApprovedAt, constant.DateFormat)
		r.ApprovedAt = &approvedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

// PublicTestimonialResponse leaves out the guest's email and moderation details.
type PublicTestimonialResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
	VisitType string `json:"visit_type"`
	CreatedAt string `json:"created_at"`
}

func (r *PublicTestimonialResponse) FromModel(model model.Testimonial) {
	r.ID = model.ID
	r.Name = model.Name
	r.Rating = model.Rating
	r.Message = model.Message
	r.VisitType = model.VisitType
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetTestimonialsResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTestimonialsResponse) FromModels(models []model.Testimonial, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Testimonials = make([]TestimonialResponse, len(models))
	for i, mod := range models {
		r.Testimonials[i].FromModel(mod)
	}
}

type GetPublicTestimonialsResponse struct {
	Testimonials []PublicTestimonialResponse `json:"testimonials"`
	TotalPage    int                         `json:"total_page"`
	TotalData    int                         `json:"total_data"`
}

func (r *GetPublicTestimonialsResponse) FromModels(models []model.Testimonial, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Testimonials = make([]PublicTestimonialResponse, len(models))
	for i, mod := range models {
		r.Testimonials[i].FromModel(mod)
	}
}
