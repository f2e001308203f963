package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"resort/config"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout = 10 * time.Second
	batchTimeout = 10 * time.Millisecond

	handleAttempts = 5
	retryBackoff   = 500 * time.Millisecond
	fetchBackoff   = time.Second
)

// Message is an outgoing event. Value is encoded as JSON and Key selects the
// partition, so events about one entity stay ordered.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{Key: []byte(m.Key), Value: value}, nil
}

// DecodeKafkaMessage decodes the JSON value of msg into T.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal message from %s: %w", msg.Topic, err)
	}

	return value, nil
}

// Handler processes one consumed message. A returned error has the message
// handed to it again, up to handleAttempts times with a growing pause.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler)
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func New(config *config.Config) Client {
	mechanism := saslMechanism(config)

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
		Transport:              &kafkaGo.Transport{SASL: mechanism},
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Bool("sasl", mechanism != nil).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: &kafkaGo.Dialer{DualStack: true, Timeout: writeTimeout, SASLMechanism: mechanism},
		writer: writer,
	}
}

// saslMechanism returns nil for brokers without authentication.
func saslMechanism(config *config.Config) sasl.Mechanism {
	if config.Kafka.SASL.Username == "" {
		return nil
	}

	return plain.Mechanism{
		Username: config.Kafka.SASL.Username,
		Password: config.Kafka.SASL.Password,
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to encode Kafka message.")

			return err
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent messages.")

	return nil
}

// Consume reads topic until ctx is cancelled. A message is committed once
// handler succeeds or has failed handleAttempts times, the latter is logged and
// skipped. Cancelling ctx while a message is being retried leaves it
// uncommitted, so it is delivered again after a restart.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) {
	groupID := consumerGroup
	if groupID == "" {
		groupID = k.config.Kafka.ConsumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader.")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info().Str("topic", topic).Msg("Consumer stopped.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to read message from Kafka.")

			if !wait(ctx, fetchBackoff) {
				log.Info().Str("topic", topic).Msg("Consumer stopped.")

				return
			}

			continue
		}

		log.Debug().Str("topic", topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("Received message.")

		if err := handleWithRetry(ctx, msg, handler, handleAttempts, retryBackoff); err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Int64("offset", msg.Offset).Msg("Consumer stopped while retrying, offset left uncommitted.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).
				Int("attempts", handleAttempts).Msg("Giving up on message.")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to commit offset.")
		}
	}
}

// handleWithRetry runs handler until it succeeds or attempts run out, doubling
// the pause after every failure. It returns ctx.Err() when ctx ends during a pause.
func handleWithRetry(ctx context.Context, msg kafkaGo.Message, handler Handler, attempts int, backoff time.Duration) error {
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = handler(context.WithoutCancel(ctx), msg); err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		log.Warn().Err(err).Str("topic", msg.Topic).Str("key", string(msg.Key)).Int("attempt", attempt).Msg("Failed to handle message, retrying.")

		if !wait(ctx, backoff) {
			return ctx.Err()
		}

		backoff *= 2
	}

	return err
}

// wait pauses for d and reports false when ctx ends first.
func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
