package model

import "resort/shared/model"

const (
	TableName  = "contact_messages"
	EntityName = "contact message"

	FieldID        = "id"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

type ContactMessage struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   *string `db:"phone"`
	Subject string  `db:"subject"`
	Message string  `db:"message"`
	Status  Status  `db:"status"`
	model.Metadata
}
