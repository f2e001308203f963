package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	"resort/infras/otel/mocks"
	testimonialMocks "resort/internal/domains/testimonial/mocks"
	"resort/internal/domains/testimonial/model"
	"resort/internal/domains/testimonial/model/dto"
	"resort/internal/domains/testimonial/service"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/event"
	eventMocks "resort/shared/event/mocks"
	"resort/shared/failure"
)

const (
	testimonialID       = "7a2e4b6c-1d3f-4a5b-8c7d-9e0f1a2b3c41"
	secondTestimonialID = "7a2e4b6c-1d3f-4a5b-8c7d-9e0f1a2b3c42"
	absentID            = "00000000-0000-4000-8000-000000000000"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Cache.TTL = 3600

	return cfg
}

func asRole(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func quietCache(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func statusOf(filter gDto.FilterGroup) string {
	for _, f := range filter.Filters {
		if field, ok := f.(gDto.Filter); ok && field.Field == model.FieldStatus {
			value, _ := field.Value.(string)

			return value
		}
	}

	return ""
}

func TestTestimonialService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := testimonialMocks.NewMockTestimonial(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, testimonial model.Testimonial) error {
		assert.Equal(t, model.StatusPending, testimonial.Status)
		assert.Nil(t, testimonial.ApprovedAt)

		return nil
	})
	mockPublisher.EXPECT().Publish(gomock.Any(), event.TopicTestimonialSubmitted, gomock.Any(), gomock.Any())

	res, err := svc.Create(context.Background(), dto.CreateTestimonialRequest{
		Name: "Ana", Email: "ana@mail.test", Rating: 5, Message: "Great stay", VisitType: model.VisitTypeOvernight,
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", res.Status)

	time.Sleep(10 * time.Millisecond)
}

func TestTestimonialService_GetPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := testimonialMocks.NewMockTestimonial(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		assert.Equal(t, "approved", statusOf(filter))

		return 1, nil
	})
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Testimonial, error) {
			assert.Equal(t, "approved", statusOf(filter))
			assert.Equal(t, model.FieldCreatedAt, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Testimonial{{ID: testimonialID, Name: "Ana", Email: "ana@mail.test", Status: model.StatusApproved}}, nil
		})

	// no principal needed
	res, err := svc.GetPublic(context.Background(), gDto.QueryParams{})

	require.NoError(t, err)
	require.Len(t, res.Testimonials, 1)
	assert.Equal(t, "Ana", res.Testimonials[0].Name)

	time.Sleep(10 * time.Millisecond)
}

func TestTestimonialService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := testimonialMocks.NewMockTestimonial(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	t.Run("filtered by status", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Testimonial, error) {
				assert.Equal(t, "pending", statusOf(filter))

				return []model.Testimonial{{ID: testimonialID, Status: model.StatusPending}, {ID: secondTestimonialID, Status: model.StatusPending}}, nil
			})

		res, err := svc.GetAll(asRole(constant.RoleAdmin), gDto.QueryParams{}, "pending")

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.GetAll(asRole(constant.RoleAdmin), gDto.QueryParams{}, "hidden")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.GetAll(context.Background(), gDto.QueryParams{}, "")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	time.Sleep(10 * time.Millisecond)
}

func TestTestimonialService_Moderate(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		current   model.Status
		approve   bool
		setupMock func(repo *testimonialMocks.MockTestimonial)
		want      string
		wantCode  int
		wantKind  failure.Kind
	}{
		{
			name:    "approve pending stamps approved_at",
			ctx:     asRole(constant.RoleAdmin),
			current: model.StatusPending,
			approve: true,
			setupMock: func(repo *testimonialMocks.MockTestimonial) {
				repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])
						assert.Contains(t, fields, model.FieldApprovedAt)

						return 1, nil
					})
			},
			want: "approved",
		},
		{
			name:    "reject pending",
			ctx:     asRole(constant.RoleSuperAdmin),
			current: model.StatusPending,
			setupMock: func(repo *testimonialMocks.MockTestimonial) {
				repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.NotContains(t, fields, model.FieldApprovedAt)

						return 1, nil
					})
			},
			want: "rejected",
		},
		{
			name:      "approve rejected",
			ctx:       asRole(constant.RoleAdmin),
			current:   model.StatusRejected,
			approve:   true,
			setupMock: func(*testimonialMocks.MockTestimonial) {},
			wantCode:  http.StatusBadRequest,
			wantKind:  failure.KindInvalidTransition,
		},
		{
			name:      "reject approved",
			ctx:       asRole(constant.RoleAdmin),
			current:   model.StatusApproved,
			setupMock: func(*testimonialMocks.MockTestimonial) {},
			wantCode:  http.StatusBadRequest,
			wantKind:  failure.KindInvalidTransition,
		},
		{
			name:    "concurrent moderation",
			ctx:     asRole(constant.RoleAdmin),
			current: model.StatusPending,
			approve: true,
			setupMock: func(repo *testimonialMocks.MockTestimonial) {
				repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: http.StatusBadRequest,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name:      "anonymous",
			ctx:       context.Background(),
			approve:   true,
			setupMock: func(*testimonialMocks.MockTestimonial) {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := testimonialMocks.NewMockTestimonial(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockPublisher := eventMocks.NewMockPublisher(ctrl)

			quietCache(mockCache)

			svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

			if tt.current != "" {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Testimonial{ID: testimonialID, Status: tt.current}, nil)
			}

			tt.setupMock(mockRepo)

			var (
				res dto.TestimonialResponse
				err error
			)

			if tt.approve {
				res, err = svc.Approve(tt.ctx, testimonialID)
			} else {
				res, err = svc.Reject(tt.ctx, testimonialID)
			}

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, tt.approve, res.ApprovedAt != nil)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestTestimonialService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := testimonialMocks.NewMockTestimonial(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Delete(asRole(constant.RoleAdmin), absentID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.Delete(asRole(constant.RoleAdmin), testimonialID))

	time.Sleep(10 * time.Millisecond)
}

func TestTestimonialService_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := testimonialMocks.NewMockTestimonial(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)
	admin := asRole(constant.RoleAdmin)

	calls := map[string]func(id string) error{
		"approve": func(id string) error {
			_, err := svc.Approve(admin, id)

			return err
		},
		"reject": func(id string) error {
			_, err := svc.Reject(admin, id)

			return err
		},
		"delete": func(id string) error {
			return svc.Delete(admin, id)
		},
	}

	for name, call := range calls {
		for _, id := range []string{"123", "t-1"} {
			t.Run(name+" "+id, func(t *testing.T) {
				err := call(id)

				require.Error(t, err)
				assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
			})
		}
	}
}
