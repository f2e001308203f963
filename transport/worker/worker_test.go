package worker_test

import (
	"context"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	kafkaMocks "resort/infras/kafka/mocks"
	notificationMocks "resort/internal/domains/notification/mocks"
	"resort/shared/event"
	"resort/transport/worker"
)

func newWorker(t *testing.T, cron string) (*worker.Worker, *notificationMocks.MockNotificationService) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Scheduler.DigestCron = cron

	notification := notificationMocks.NewMockNotificationService(ctrl)

	return worker.New(cfg, kafkaMocks.NewMockClient(ctrl), notification), notification
}

func TestWorker_Handle(t *testing.T) {
	w, notification := newWorker(t, "0 7 * * *")

	tests := []struct {
		name      string
		message   kafkaGo.Message
		setupMock func()
		wantErr   bool
	}{
		{
			name:    "booking created",
			message: kafkaGo.Message{Topic: event.TopicBookingCreated, Value: []byte(`{"id":"b-1","code":"RB-1","guests":2}`)},
			setupMock: func() {
				notification.EXPECT().BookingCreated(gomock.Any(), event.BookingCreated{ID: "b-1", Code: "RB-1", Guests: 2}).Return(nil)
			},
		},
		{
			name:    "status changed",
			message: kafkaGo.Message{Topic: event.TopicBookingStatusChanged, Value: []byte(`{"code":"RB-1","from":"pending","to":"confirmed"}`)},
			setupMock: func() {
				notification.EXPECT().BookingStatusChanged(gomock.Any(), event.BookingStatusChanged{Code: "RB-1", From: "pending", To: "confirmed"}).Return(nil)
			},
		},
		{
			name:    "contact received",
			message: kafkaGo.Message{Topic: event.TopicContactReceived, Value: []byte(`{"name":"Ana"}`)},
			setupMock: func() {
				notification.EXPECT().ContactReceived(gomock.Any(), event.ContactReceived{Name: "Ana"}).Return(nil)
			},
		},
		{
			name:    "testimonial submitted",
			message: kafkaGo.Message{Topic: event.TopicTestimonialSubmitted, Value: []byte(`{"name":"Ana","rating":5}`)},
			setupMock: func() {
				notification.EXPECT().TestimonialSubmitted(gomock.Any(), event.TestimonialSubmitted{Name: "Ana", Rating: 5}).Return(nil)
			},
		},
		{
			name:    "mail failure is returned",
			message: kafkaGo.Message{Topic: event.TopicContactReceived, Value: []byte(`{"name":"Ana"}`)},
			setupMock: func() {
				notification.EXPECT().ContactReceived(gomock.Any(), gomock.Any()).Return(errors.New("smtp: connection refused"))
			},
			wantErr: true,
		},
		{
			name:      "undecodable payload is skipped",
			message:   kafkaGo.Message{Topic: event.TopicBookingCreated, Value: []byte(`not json`)},
			setupMock: func() {},
		},
		{
			name:      "unknown topic",
			message:   kafkaGo.Message{Topic: "room.created", Value: []byte(`{}`)},
			setupMock: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := w.Handle(context.Background(), tt.message)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorker_Schedule(t *testing.T) {
	t.Run("registers the digest", func(t *testing.T) {
		w, _ := newWorker(t, "0 7 * * *")

		scheduler, err := w.Schedule()
		require.NoError(t, err)

		defer func() { _ = scheduler.Shutdown() }()

		jobs := scheduler.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, "daily-digest", jobs[0].Name())
	})

	t.Run("rejects a broken cron expression", func(t *testing.T) {
		w, _ := newWorker(t, "every morning")

		_, err := w.Schedule()
		assert.Error(t, err)
	})
}

func TestWorker_Digest(t *testing.T) {
	w, notification := newWorker(t, "0 7 * * *")

	notification.EXPECT().Digest(gomock.Any()).Return(nil)

	w.Digest()
}
