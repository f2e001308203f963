package dto

import (
	"resort/internal/domains/user/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"notblank,max=100"`
	Email    string `json:"email"    validate:"notblank,email,max=100"`
	Password string `json:"password" validate:"notblank,min=8,max=72"`
	Role     string `json:"role"     validate:"notblank,oneof=admin super_admin"`
}

func (r *CreateUserRequest) ToModel(actor, hashedPassword string, now time.Time) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     r.Role,
		Active:   true,
		Metadata: gModel.NewMetadata(actor, now),
	}
}

// NormalizeEmail is applied on every write and lookup so logins are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UpdateUserRequest changes only the fields that are present. The password is
// hashed by the service, so it carries no db tag.
type UpdateUserRequest struct {
	Name     *string `db:"name"   json:"name,omitempty"     validate:"omitempty,notblank,max=100"`
	Role     *string `db:"role"   json:"role,omitempty"     validate:"omitempty,oneof=admin super_admin"`
	Active   *bool   `db:"active" json:"active,omitempty"`
	Password *string `json:"password,omitempty"             validate:"omitempty,min=8,max=72"`
}

func (r *UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Role == nil && r.Active == nil && r.Password == nil
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
	LastLogin *string `json:"last_login"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.Active = model.Active
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
