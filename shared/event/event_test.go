package event_test

import (
	"context"
	"errors"
	"resort/config"
	"resort/infras/kafka"
	"resort/infras/kafka/mocks"
	otelMocks "resort/infras/otel/mocks"
	"resort/shared/event"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestPublish(t *testing.T) {
	payload := event.ContactReceived{ID: "c-1", Name: "Ana", Subject: "Pool hours"}

	tests := []struct {
		name      string
		enable    bool
		setupMock func(client *mocks.MockClient)
	}{
		{
			name:   "kafka enabled sends message",
			enable: true,
			setupMock: func(client *mocks.MockClient) {
				client.EXPECT().
					SendMessages(gomock.Any(), event.TopicContactReceived, kafka.Message{Key: "c-1", Value: payload}).
					Return(nil)
			},
		},
		{
			name:   "send failure is swallowed",
			enable: true,
			setupMock: func(client *mocks.MockClient) {
				client.EXPECT().
					SendMessages(gomock.Any(), event.TopicContactReceived, gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
		},
		{
			name:      "kafka disabled never touches the client",
			enable:    false,
			setupMock: func(_ *mocks.MockClient) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setupMock(client)

			cfg := &config.Config{}
			cfg.Kafka.Enable = tt.enable

			publisher := event.New(cfg, client, otelMocks.NewOtel())
			publisher.Publish(context.Background(), event.TopicContactReceived, "c-1", payload)
		})
	}
}
