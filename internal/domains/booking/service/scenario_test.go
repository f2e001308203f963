package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/infras/otel/mocks"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	"resort/internal/domains/booking/service"
	"resort/shared/cache"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	eventMocks "resort/shared/event/mocks"
	"resort/shared/failure"
)

// memoryBookings keeps bookings in a map and honours the optimistic status check.
type memoryBookings struct {
	mu       sync.Mutex
	bookings map[string]model.Booking
	order    []string
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{bookings: map[string]model.Booking{}}
}

func idOf(filter gDto.FilterGroup) string {
	for _, f := range filter.Filters {
		if field, ok := f.(gDto.Filter); ok && field.Field == model.FieldID {
			id, _ := field.Value.(string)

			return id
		}
	}

	return ""
}

func (m *memoryBookings) Insert(_ context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookings[booking.ID] = booking
	m.order = append([]string{booking.ID}, m.order...)

	return nil
}

func (m *memoryBookings) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.bookings[idOf(filter)], nil
}

func (m *memoryBookings) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Booking, 0, len(m.order))
	for _, id := range m.order {
		if booking, ok := m.bookings[id]; ok {
			out = append(out, booking)
		}
	}

	return out, nil
}

func (m *memoryBookings) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.bookings[idOf(filter)]

	return ok, nil
}

func (m *memoryBookings) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bookings), nil
}

func (m *memoryBookings) Update(_ context.Context, _ map[string]any, _ gDto.FilterGroup) error {
	return nil
}

func (m *memoryBookings) Delete(_ context.Context, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.bookings, idOf(filter))

	return nil
}

func (m *memoryBookings) UpdateStatus(_ context.Context, id string, from, to model.Status, user string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}

	booking.Status = to
	booking.ModifiedBy = user
	m.bookings[id] = booking

	return true, nil
}

func (m *memoryBookings) status(id string) model.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.bookings[id].Status
}

func TestBookingLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newMemoryBookings()
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)
	mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	svc := service.New(repo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)
	admin := asRole(constant.RoleAdmin)

	// guest books a day trip for two
	created, err := svc.Create(context.Background(), dayTripRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(700), created.TotalAmount)
	assert.Equal(t, "pending", created.Status)

	// the admin sees it in the list
	list, err := svc.GetAll(admin, gDto.QueryParams{}, "", "")
	require.NoError(t, err)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, created.ID, list.Bookings[0].ID)

	updated, err := svc.UpdateStatus(admin, dto.UpdateStatusRequest{Status: "confirmed"}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	_, err = svc.UpdateStatus(admin, dto.UpdateStatusRequest{Status: "pending"}, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, failure.KindInvalidTransition, failure.GetKind(err))
	assert.Equal(t, model.StatusConfirmed, repo.status(created.ID))

	updated, err = svc.UpdateStatus(admin, dto.UpdateStatusRequest{Status: "completed"}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	for _, next := range model.Statuses {
		_, err = svc.UpdateStatus(admin, dto.UpdateStatusRequest{Status: next.String()}, created.ID)
		require.Error(t, err, "completed -> %s", next)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, failure.KindInvalidTransition, failure.GetKind(err))
	}

	assert.Equal(t, model.StatusCompleted, repo.status(created.ID))

	time.Sleep(10 * time.Millisecond)
}

func TestBookingLifecycle_ListingIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newMemoryBookings()
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	quietCache(mockCache)
	mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	svc := service.New(repo, newConfig(), mockCache, mocks.NewOtel(), mockPublisher)

	for _, name := range []string{"Maria Santos", "Jose Rizal", "Ana Cruz"} {
		req := dayTripRequest()
		req.GuestName = name

		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	admin := asRole(constant.RoleSuperAdmin)

	first, err := svc.GetAll(admin, gDto.QueryParams{}, "pend", "riz")
	require.NoError(t, err)

	second, err := svc.GetAll(admin, gDto.QueryParams{}, "pend", "riz")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.TotalData)

	time.Sleep(10 * time.Millisecond)
}

// memoryCache stores values the way the redis cache does: strings raw,
// everything else as JSON.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

var _ cache.RedisCache = (*memoryCache)(nil)

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Save(_ context.Context, key string, value any, _ int) error {
	payload, ok := value.(string)
	if !ok {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}

		payload = string(raw)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = []byte(payload)

	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	raw, ok := m.values[key]
	m.mu.Unlock()

	if !ok {
		return cache.Nil
	}

	if v, ok := value.(*string); ok {
		*v = string(raw)

		return nil
	}

	return json.Unmarshal(raw, value)
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

func (m *memoryCache) Clear(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.values {
		if strings.HasPrefix(key, strings.TrimSuffix(prefix, constant.Asterix)) {
			delete(m.values, key)
		}
	}

	return nil
}

func (m *memoryCache) Increment(_ context.Context, _ string, _ int) (int64, error) {
	return 0, errors.New("not supported")
}

func TestBookingLifecycle_ReadAfterStatusChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newMemoryBookings()
	mockPublisher := eventMocks.NewMockPublisher(ctrl)

	mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	svc := service.New(repo, newConfig(), newMemoryCache(), mocks.NewOtel(), mockPublisher)
	admin := asRole(constant.RoleAdmin)

	created, err := svc.Create(context.Background(), dayTripRequest())
	require.NoError(t, err)

	// the first read saves the pending booking in the background and may
	// land after the status change below
	before, err := svc.Get(admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", before.Status)

	listed, err := svc.GetAll(admin, gDto.QueryParams{}, "", "")
	require.NoError(t, err)
	require.Len(t, listed.Bookings, 1)

	_, err = svc.UpdateStatus(admin, dto.UpdateStatusRequest{Status: "confirmed"}, created.ID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	for range 2 {
		after, err := svc.Get(admin, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", after.Status)

		listed, err = svc.GetAll(admin, gDto.QueryParams{}, "confirmed", "")
		require.NoError(t, err)
		assert.Equal(t, 1, listed.TotalData)

		time.Sleep(20 * time.Millisecond)
	}

	require.NoError(t, svc.Delete(admin, created.ID))

	_, err = svc.Get(admin, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
