package dto

import (
	"resort/internal/domains/contact/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"notblank,max=100"`
	Email   string `json:"email"   validate:"notblank,email,max=100"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"notblank,max=200"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

func (c *CreateContactRequest) ToModel(now time.Time) model.ContactMessage {
	var phone *string

	if trimmed := strings.TrimSpace(c.Phone); trimmed != "" {
		phone = &trimmed
	}

	return model.ContactMessage{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Phone:    phone,
		Subject:  strings.TrimSpace(c.Subject),
		Message:  c.Message,
		Status:   model.StatusNew,
		Metadata: gModel.NewMetadata(c.Email, now),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

type ContactResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.ContactMessage) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = ""

	if model.Phone != nil {
		r.Phone = *model.Phone
	}

	r.Subject = model.Subject
	r.Message = model.Message
	r.Status = model.Status.String()
	r.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.ContactMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, m := range models {
		r.Contacts[i].FromModel(m)
	}
}
