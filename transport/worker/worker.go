package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"resort/config"
	"resort/infras/kafka"
	notificationService "resort/internal/domains/notification/service"
	"resort/shared/constant"
	"resort/shared/event"
	"resort/shared/timezone"
	"sync"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	consumerGroup = "resort-notifier"
	digestJobName = "daily-digest"
)

// Worker consumes domain events into notification mail and runs the daily
// digest on a cron schedule.
type Worker struct {
	Config       *config.Config
	kafka        kafka.Client
	notification notificationService.Notification
}

func New(cfg *config.Config, client kafka.Client, notification notificationService.Notification) *Worker {
	return &Worker{
		Config:       cfg,
		kafka:        client,
		notification: notification,
	}
}

// Run blocks until SIGINT or SIGTERM.
func (w *Worker) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := w.Schedule()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule jobs")
	}

	scheduler.Start()

	var consumers sync.WaitGroup

	if w.Config.Kafka.Enable {
		for _, topic := range event.Topics {
			consumers.Add(1)

			go func() {
				defer consumers.Done()

				w.kafka.Consume(ctx, w.group(), topic, w.Handle)
			}()
		}

		log.Info().Strs("topics", event.Topics).Msg("Consuming domain events")
	} else {
		log.Warn().Msg("Kafka disabled, only scheduled jobs will run")
	}

	<-ctx.Done()

	log.Info().Msg("Received shutdown signal, stopping worker")

	if err := scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Failed to stop scheduler")
	}

	consumers.Wait()

	log.Info().Msg("Worker stopped")
}

func (w *Worker) group() string {
	if w.Config.Kafka.ConsumerGroup != constant.Empty {
		return w.Config.Kafka.ConsumerGroup
	}

	return consumerGroup
}

// Schedule registers the digest job on a scheduler that has not been started.
func (w *Worker) Schedule() (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(timezone.GetLocation()))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	job, err := scheduler.NewJob(
		gocron.CronJob(w.Config.Scheduler.DigestCron, false),
		gocron.NewTask(w.Digest),
		gocron.WithName(digestJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule %s: %w", digestJobName, err)
	}

	log.Info().Str("job", job.Name()).Str("cron", w.Config.Scheduler.DigestCron).Msg("Job scheduled")

	return scheduler, nil
}

func (w *Worker) Digest() {
	if err := w.notification.Digest(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to send digest")

		return
	}

	log.Info().Msg("Digest sent")
}

// Handle routes one message to its notification. Payloads that cannot be
// decoded and unknown topics are logged and skipped. A failed notification is
// returned so its offset is not committed.
func (w *Worker) Handle(ctx context.Context, message kafkaGo.Message) error {
	var err error

	switch message.Topic {
	case event.TopicBookingCreated:
		err = dispatch(ctx, message, w.notification.BookingCreated)
	case event.TopicBookingStatusChanged:
		err = dispatch(ctx, message, w.notification.BookingStatusChanged)
	case event.TopicContactReceived:
		err = dispatch(ctx, message, w.notification.ContactReceived)
	case event.TopicTestimonialSubmitted:
		err = dispatch(ctx, message, w.notification.TestimonialSubmitted)
	default:
		log.Warn().Str("topic", message.Topic).Msg("No handler for topic")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to handle %s: %w", message.Topic, err)
	}

	return nil
}

func dispatch[T any](ctx context.Context, message kafkaGo.Message, handle func(context.Context, T) error) error {
	payload, err := kafka.DecodeKafkaMessage[T](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("Skipping undecodable event")

		return nil
	}

	return handle(ctx, payload)
}
