package dto_test

import (
	"testing"
	"time"

	"resort/internal/domains/contact/model"
	"resort/internal/domains/contact/model/dto"
	"resort/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	req := dto.CreateContactRequest{Name: " Maria ", Email: "maria@mail.test", Subject: "Wedding", Message: "Do you host weddings?"}
	msg := req.ToModel(now)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Maria", msg.Name)
	assert.Nil(t, msg.Phone)
	assert.Equal(t, model.StatusNew, msg.Status)
	assert.Equal(t, now, msg.CreatedAt)

	req.Phone = "0917"
	msg = req.ToModel(now)

	require.NotNil(t, msg.Phone)
	assert.Equal(t, "0917", *msg.Phone)
}

func TestCreateContactRequest_Validation(t *testing.T) {
	req := dto.CreateContactRequest{Email: "bad"}

	assert.Equal(t, []string{
		"name is required",
		"email must be a valid email address",
		"subject is required",
		"message is required",
	}, validator.Messages(&req))
}

func TestContactResponse_FromModel(t *testing.T) {
	phone := "0917"

	var res dto.ContactResponse
	res.FromModel(model.ContactMessage{ID: "c-1", Phone: &phone, Status: model.StatusRead})

	assert.Equal(t, "c-1", res.ID)
	assert.Equal(t, "0917", res.Phone)
	assert.Equal(t, "read", res.Status)
}
