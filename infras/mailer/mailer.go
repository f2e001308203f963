package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var ErrNoRecipient = errors.New("mail has no recipient")

type Mail struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
	HTML    bool
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type mailerImpl struct {
	client   *mail.Client
	from     string
	fromName string
	otel     otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) (Mailer, error) {
	smtp := cfg.External.SMTP

	opts := []mail.Option{
		mail.WithPort(smtp.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}

	if smtp.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtp.Username),
			mail.WithPassword(smtp.Password),
		)
	}

	client, err := mail.NewClient(smtp.Host, opts...)
	if err != nil {
		log.Error().Err(err).Str("host", smtp.Host).Msg("could not initialize smtp client")

		return nil, fmt.Errorf("failed to initialize smtp client: %w", err)
	}

	log.Info().Str("host", smtp.Host).Int("port", smtp.Port).Msg("SMTP client initialized")

	return &mailerImpl{
		client:   client,
		from:     smtp.From,
		fromName: smtp.FromName,
		otel:     ot,
	}, nil
}

func (m *mailerImpl) Send(ctx context.Context, content Mail) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(content.To) == 0 {
		return ErrNoRecipient
	}

	scope.SetAttribute("mail.subject", content.Subject)

	msg := mail.NewMsg()

	if err = msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}

	if err = msg.To(content.To...); err != nil {
		return fmt.Errorf("failed to set to address: %w", err)
	}

	if content.ReplyTo != "" {
		if err = msg.ReplyTo(content.ReplyTo); err != nil {
			log.Warn().Err(err).Str("reply_to", content.ReplyTo).Msg("ignoring invalid reply-to address")
		}
	}

	msg.Subject(content.Subject)

	if content.HTML {
		msg.SetBodyString(mail.TypeTextHTML, content.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, content.Body)
	}

	if err = m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Strs("to", content.To).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Strs("to", content.To).Str("subject", content.Subject).Msg("mail sent")

	return nil
}
