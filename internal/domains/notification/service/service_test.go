package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	"resort/infras/mailer"
	mailerMocks "resort/infras/mailer/mocks"
	"resort/infras/otel/mocks"
	"resort/internal/domains/notification/service"
	reportMocks "resort/internal/domains/report/mocks"
	reportModel "resort/internal/domains/report/model"
	"resort/internal/domains/report/model/dto"
	"resort/shared/constant"
	"resort/shared/event"
)

type fixture struct {
	mailer  *mailerMocks.MockMailer
	report  *reportMocks.MockReportService
	service service.Notification
}

func newFixture(t *testing.T, mailbox string) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Resort.AdminMailbox = mailbox

	f := fixture{
		mailer: mailerMocks.NewMockMailer(ctrl),
		report: reportMocks.NewMockReportService(ctrl),
	}
	f.service = service.New(f.mailer, f.report, cfg, mocks.NewOtel())

	return f
}

func TestNotificationService_BookingCreated(t *testing.T) {
	t.Run("mails the admin with the guest as reply-to", func(t *testing.T) {
		f := newFixture(t, "frontdesk@resort.test")

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m mailer.Mail) error {
				assert.Equal(t, []string{"frontdesk@resort.test"}, m.To)
				assert.Equal(t, "juan@example.com", m.ReplyTo)
				assert.Equal(t, "New booking RB-1", m.Subject)

				return nil
			})

		err := f.service.BookingCreated(context.Background(), event.BookingCreated{Code: "RB-1", Email: "juan@example.com"})
		assert.NoError(t, err)
	})

	t.Run("skips without a mailbox", func(t *testing.T) {
		f := newFixture(t, "")

		err := f.service.BookingCreated(context.Background(), event.BookingCreated{Code: "RB-1"})
		assert.NoError(t, err)
	})

	t.Run("send failure", func(t *testing.T) {
		f := newFixture(t, "frontdesk@resort.test")

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		err := f.service.BookingCreated(context.Background(), event.BookingCreated{Code: "RB-1"})
		assert.Error(t, err)
	})
}

func TestNotificationService_BookingStatusChanged(t *testing.T) {
	tests := []struct {
		name        string
		to          string
		wantSubject string
	}{
		{name: "confirmed", to: "confirmed", wantSubject: "Your booking RB-1 is confirmed"},
		{name: "cancelled", to: "cancelled", wantSubject: "Your booking RB-1 was cancelled"},
		{name: "completed sends nothing", to: "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "frontdesk@resort.test")

			if tt.wantSubject != "" {
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m mailer.Mail) error {
						assert.Equal(t, []string{"juan@example.com"}, m.To)
						assert.Equal(t, tt.wantSubject, m.Subject)

						return nil
					})
			}

			err := f.service.BookingStatusChanged(context.Background(), event.BookingStatusChanged{
				Code:  "RB-1",
				Email: "juan@example.com",
				From:  "pending",
				To:    tt.to,
			})
			assert.NoError(t, err)
		})
	}
}

func TestNotificationService_ContactAndTestimonial(t *testing.T) {
	f := newFixture(t, "frontdesk@resort.test")

	gomock.InOrder(
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m mailer.Mail) error {
				assert.Equal(t, "Contact form: Rates", m.Subject)
				assert.Equal(t, "ana@example.com", m.ReplyTo)

				return nil
			}),
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m mailer.Mail) error {
				assert.Equal(t, "New testimonial from Ana", m.Subject)
				assert.Empty(t, m.ReplyTo)

				return nil
			}),
	)

	require.NoError(t, f.service.ContactReceived(context.Background(), event.ContactReceived{Name: "Ana", Email: "ana@example.com", Subject: "Rates"}))
	require.NoError(t, f.service.TestimonialSubmitted(context.Background(), event.TestimonialSubmitted{Name: "Ana", Rating: 5}))
}

func TestNotificationService_Digest(t *testing.T) {
	t.Run("runs the dashboard as the system principal", func(t *testing.T) {
		f := newFixture(t, "frontdesk@resort.test")

		f.report.EXPECT().Dashboard(gomock.Any()).
			DoAndReturn(func(ctx context.Context) (dto.DashboardResponse, error) {
				assert.Equal(t, constant.RoleSuperAdmin, ctx.Value(constant.ContextKeyUserRole))

				return dto.DashboardResponse{Summary: reportModel.Summary{TotalBookings: 7}}, nil
			})

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m mailer.Mail) error {
				assert.Contains(t, m.Subject, "Resort digest for ")
				assert.Contains(t, m.Body, "Bookings:             7")

				return nil
			})

		assert.NoError(t, f.service.Digest(context.Background()))
	})

	t.Run("dashboard failure", func(t *testing.T) {
		f := newFixture(t, "frontdesk@resort.test")

		f.report.EXPECT().Dashboard(gomock.Any()).Return(dto.DashboardResponse{}, errors.New("db down"))

		assert.Error(t, f.service.Digest(context.Background()))
	})
}
