package validator_test

import (
	"net/http"
	"resort/shared/failure"
	"resort/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inquiry struct {
	Name     string   `json:"name"      validate:"notblank,max=20"`
	Email    string   `json:"email"     validate:"required,email"`
	Guests   int      `json:"guests"    validate:"gte=1,lte=20"`
	Visit    string   `json:"visit"     validate:"oneof=day overnight"`
	CheckIn  string   `json:"check_in"  validate:"omitempty,datetime=2006-01-02"`
	AddOns   []string `json:"add_ons"   validate:"omitempty,dive,oneof=karaoke"`
	Internal string   `json:"-"`
	Source   string   `form:"source"    validate:"omitempty,max=3"`
}

func validInquiry() inquiry {
	return inquiry{
		Name:    "Maria Santos",
		Email:   "maria@example.com",
		Guests:  4,
		Visit:   "day",
		CheckIn: "2026-05-01",
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*inquiry)
		want   []string
	}{
		{
			name:   "valid",
			mutate: func(*inquiry) {},
		},
		{
			name:   "blank name",
			mutate: func(i *inquiry) { i.Name = "   " },
			want:   []string{"name is required"},
		},
		{
			name:   "bad email",
			mutate: func(i *inquiry) { i.Email = "maria" },
			want:   []string{"email must be a valid email address"},
		},
		{
			name:   "too many guests",
			mutate: func(i *inquiry) { i.Guests = 21 },
			want:   []string{"guests must be less than or equal to 20"},
		},
		{
			name:   "unknown visit type",
			mutate: func(i *inquiry) { i.Visit = "weekly" },
			want:   []string{"visit must be one of day overnight"},
		},
		{
			name:   "bad date",
			mutate: func(i *inquiry) { i.CheckIn = "05/01/2026" },
			want:   []string{"check_in must be a date in the format 2006-01-02"},
		},
		{
			name:   "unknown add-on reported once",
			mutate: func(i *inquiry) { i.AddOns = []string{"karaoke", "jacuzzi"} },
			want:   []string{"add_ons[1] must be one of karaoke"},
		},
		{
			name:   "form tag used when json tag is missing",
			mutate: func(i *inquiry) { i.Source = "billboard" },
			want:   []string{"source must be less than or equal to 3"},
		},
		{
			name: "every violated field in struct order",
			mutate: func(i *inquiry) {
				i.Name = ""
				i.Email = ""
				i.Guests = 0
			},
			want: []string{
				"name is required",
				"email is required",
				"guests must be greater than or equal to 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validInquiry()
			tt.mutate(&data)

			assert.Equal(t, tt.want, validator.Messages(&data))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	data := validInquiry()
	assert.NoError(t, validator.ValidateStruct(&data))

	data.Email = ""
	data.Guests = 0

	err := validator.ValidateStruct(&data)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, []string{"email is required", "guests must be greater than or equal to 1"}, failure.GetErrors(err))
	assert.Equal(t, "email is required; guests must be greater than or equal to 1", err.Error())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErrs []string
		wantCode int
	}{
		{
			name: "valid body",
			body: `{"name":"Maria Santos","email":"maria@example.com","guests":2,"visit":"overnight"}`,
		},
		{
			name:     "rule violation",
			body:     `{"name":"Maria Santos","email":"maria@example.com","guests":0,"visit":"overnight"}`,
			wantErrs: []string{"guests must be greater than or equal to 1"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			body:     `{"name":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong type",
			body:     `{"guests":"four"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data inquiry

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErrs != nil {
				assert.Equal(t, tt.wantErrs, failure.GetErrors(err))
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("maria@example.com", "email"))
	assert.NoError(t, validator.ValidateVar("overnight", "oneof=day overnight"))

	err := validator.ValidateVar("not-a-uuid", "uuid")
	require.Error(t, err)
	assert.Equal(t, []string{"value must be a valid uuid"}, failure.GetErrors(err))
}
