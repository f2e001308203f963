package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/mailer"
	"resort/infras/otel"
	bookingModel "resort/internal/domains/booking/model"
	"resort/internal/domains/notification/template"
	reportService "resort/internal/domains/report/service"
	"resort/permissions"
	"resort/shared/constant"
	"resort/shared/event"
	"resort/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	subjectBookingCreated       = "New booking %s"
	subjectBookingConfirmed     = "Your booking %s is confirmed"
	subjectBookingCancelled     = "Your booking %s was cancelled"
	subjectContactReceived      = "Contact form: %s"
	subjectTestimonialSubmitted = "New testimonial from %s"
	subjectDigest               = "Resort digest for %s"
)

// Notification turns domain events into mail. Admin mail goes to the
// configured mailbox and is skipped when none is set.
type Notification interface {
	BookingCreated(ctx context.Context, e event.BookingCreated) error
	BookingStatusChanged(ctx context.Context, e event.BookingStatusChanged) error
	ContactReceived(ctx context.Context, e event.ContactReceived) error
	TestimonialSubmitted(ctx context.Context, e event.TestimonialSubmitted) error
	Digest(ctx context.Context) error
}

type serviceImpl struct {
	mailer mailer.Mailer
	report reportService.Report
	cfg    *config.Config
	otel   otel.Otel
}

func New(mailer mailer.Mailer, report reportService.Report, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		mailer: mailer,
		report: report,
		cfg:    cfg,
		otel:   otel,
	}
}

func (s *serviceImpl) toAdmin(ctx context.Context, subject, body, replyTo string) error {
	mailbox := s.cfg.Resort.AdminMailbox
	if mailbox == constant.Empty {
		log.Warn().Str("subject", subject).Msg("no admin mailbox configured, dropping notification")

		return nil
	}

	if err := s.mailer.Send(ctx, mailer.Mail{
		To:      []string{mailbox},
		ReplyTo: replyTo,
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("failed to notify admin: %w", err)
	}

	return nil
}

func (s *serviceImpl) BookingCreated(ctx context.Context, e event.BookingCreated) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingCreated")
	defer scope.End()
	defer scope.TraceIfError(&err)

	body, err := template.BookingCreated(e)
	if err != nil {
		return fmt.Errorf("failed to build booking mail: %w", err)
	}

	return s.toAdmin(ctx, fmt.Sprintf(subjectBookingCreated, e.Code), body, e.Email)
}

// BookingStatusChanged mails the guest on confirmation and cancellation only.
func (s *serviceImpl) BookingStatusChanged(ctx context.Context, e event.BookingStatusChanged) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingStatusChanged")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var (
		subject string
		body    string
	)

	switch bookingModel.Status(e.To) {
	case bookingModel.StatusConfirmed:
		subject = fmt.Sprintf(subjectBookingConfirmed, e.Code)
		body, err = template.BookingConfirmed(e)
	case bookingModel.StatusCancelled:
		subject = fmt.Sprintf(subjectBookingCancelled, e.Code)
		body, err = template.BookingCancelled(e)
	default:
		log.Debug().Str("code", e.Code).Str("status", e.To).Msg("no guest mail for status")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to build status mail: %w", err)
	}

	if err = s.mailer.Send(ctx, mailer.Mail{
		To:      []string{e.Email},
		ReplyTo: s.cfg.Resort.AdminMailbox,
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("failed to notify guest: %w", err)
	}

	return nil
}

func (s *serviceImpl) ContactReceived(ctx context.Context, e event.ContactReceived) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactReceived")
	defer scope.End()
	defer scope.TraceIfError(&err)

	body, err := template.ContactReceived(e)
	if err != nil {
		return fmt.Errorf("failed to build contact mail: %w", err)
	}

	return s.toAdmin(ctx, fmt.Sprintf(subjectContactReceived, e.Subject), body, e.Email)
}

func (s *serviceImpl) TestimonialSubmitted(ctx context.Context, e event.TestimonialSubmitted) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TestimonialSubmitted")
	defer scope.End()
	defer scope.TraceIfError(&err)

	body, err := template.TestimonialSubmitted(e)
	if err != nil {
		return fmt.Errorf("failed to build testimonial mail: %w", err)
	}

	return s.toAdmin(ctx, fmt.Sprintf(subjectTestimonialSubmitted, e.Name), body, constant.Empty)
}

// Digest mails the dashboard aggregate. It runs outside any request, so it
// acts as the system principal.
func (s *serviceImpl) Digest(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Digest")
	defer scope.End()
	defer scope.TraceIfError(&err)

	dashboard, err := s.report.Dashboard(permissions.AsSystem(ctx))
	if err != nil {
		log.Error().Err(err).Msg("failed to build dashboard for digest")

		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	body, err := template.Digest(dashboard)
	if err != nil {
		return fmt.Errorf("failed to build digest mail: %w", err)
	}

	subject := fmt.Sprintf(subjectDigest, timezone.Now().Format(constant.DateOnlyFormat))

	return s.toAdmin(ctx, subject, body, constant.Empty)
}
