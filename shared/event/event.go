package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"resort/config"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/shared/constant"

	"github.com/rs/zerolog/log"
)

// Publisher emits domain events. Publishing never fails the caller; errors are only logged.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any)
}

type kafkaPublisher struct {
	client kafka.Client
	otel   otel.Otel
}

type logPublisher struct{}

func New(cfg *config.Config, client kafka.Client, ot otel.Otel) Publisher {
	if !cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, domain events are only logged")

		return &logPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		otel:   ot,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.topic": topic,
		"event.key":   key,
	})

	err := p.client.SendMessages(ctx, topic, kafka.Message{Key: key, Value: payload})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to publish event")

		return
	}

	scope.AddEvent("event published")
}

func (p *logPublisher) Publish(_ context.Context, topic, key string, _ any) {
	log.Debug().Str("topic", topic).Str("key", key).Msg("event not published, kafka disabled")
}
