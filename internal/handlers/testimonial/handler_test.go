package testimonial_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resort/infras/otel/mocks"
	testimonialMocks "resort/internal/domains/testimonial/mocks"
	"resort/internal/domains/testimonial/model/dto"
	"resort/internal/handlers/testimonial"
	"resort/shared/failure"
)

func TestHandler_Testimonials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := testimonialMocks.NewMockTestimonialService(ctrl)

	handler := testimonial.New(mockService, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func()
		wantStatus int
	}{
		{
			name:   "submit",
			method: http.MethodPost,
			path:   "/testimonials/",
			body:   `{"name":"Ana","email":"ana@mail.test","rating":5,"message":"Lovely","visit_type":"day"}`,
			setupMock: func() {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.TestimonialResponse{ID: "t-1", Status: "pending"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "rating out of range",
			method:     http.MethodPost,
			path:       "/testimonials/",
			body:       `{"name":"Ana","email":"ana@mail.test","rating":9,"message":"Lovely","visit_type":"day"}`,
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "public listing",
			method: http.MethodGet,
			path:   "/testimonials/public",
			setupMock: func() {
				mockService.EXPECT().GetPublic(gomock.Any(), gomock.Any()).Return(dto.GetPublicTestimonialsResponse{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "admin listing by status",
			method: http.MethodGet,
			path:   "/testimonials/?status=pending",
			setupMock: func() {
				mockService.EXPECT().GetAll(gomock.Any(), gomock.Any(), "pending").Return(dto.GetTestimonialsResponse{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "approve",
			method: http.MethodPut,
			path:   "/testimonials/t-1/approve",
			setupMock: func() {
				mockService.EXPECT().Approve(gomock.Any(), "t-1").Return(dto.TestimonialResponse{ID: "t-1", Status: "approved"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "reject twice",
			method: http.MethodPut,
			path:   "/testimonials/t-1/reject",
			setupMock: func() {
				mockService.EXPECT().Reject(gomock.Any(), "t-1").
					Return(dto.TestimonialResponse{}, failure.InvalidTransition("testimonial", "rejected", "rejected"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "delete forbidden",
			method: http.MethodDelete,
			path:   "/testimonials/t-1",
			setupMock: func() {
				mockService.EXPECT().Delete(gomock.Any(), "t-1").Return(failure.ForbiddenError)
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
