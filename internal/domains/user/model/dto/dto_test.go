package dto_test

import (
	"encoding/json"
	"resort/internal/domains/user/model"
	"resort/internal/domains/user/model/dto"
	"resort/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateUserRequest
		wantErr bool
	}{
		{
			name: "admin",
			req:  dto.CreateUserRequest{Name: "Jose", Email: "jose@resort.test", Password: "s3cret-pass", Role: "admin"},
		},
		{
			name: "super admin",
			req:  dto.CreateUserRequest{Name: "Jose", Email: "jose@resort.test", Password: "s3cret-pass", Role: "super_admin"},
		},
		{
			name:    "unknown role",
			req:     dto.CreateUserRequest{Name: "Jose", Email: "jose@resort.test", Password: "s3cret-pass", Role: "guest"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     dto.CreateUserRequest{Name: "Jose", Email: "jose@resort.test", Password: "short", Role: "admin"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCreateUserRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	req := dto.CreateUserRequest{Name: " Jose ", Email: " Jose@Resort.Test ", Password: "ignored", Role: "admin"}

	user := req.ToModel("root-1", "hashed", now)

	assert.Equal(t, "Jose", user.Name)
	assert.Equal(t, "jose@resort.test", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.True(t, user.Active)
	assert.Equal(t, "root-1", user.CreatedBy)
}

func TestUserResponse_NeverCarriesPassword(t *testing.T) {
	var res dto.UserResponse
	res.FromModel(model.User{ID: "u-1", Email: "a@b.test", Password: "$2a$10$hash", Role: "admin"})

	body, err := json.Marshal(res)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "$2a$10$hash")
}

func TestUpdateUserRequest_Empty(t *testing.T) {
	assert.True(t, (&dto.UpdateUserRequest{}).Empty())

	active := false
	assert.False(t, (&dto.UpdateUserRequest{Active: &active}).Empty())
}
