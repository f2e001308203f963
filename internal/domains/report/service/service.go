package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Report=MockReportService

import (
	"context"
	"fmt"
	"resort/infras/otel"
	bookingModel "resort/internal/domains/booking/model"
	bookingRepo "resort/internal/domains/booking/repository"
	contactModel "resort/internal/domains/contact/model"
	contactRepo "resort/internal/domains/contact/repository"
	"resort/internal/domains/report/model"
	"resort/internal/domains/report/model/dto"
	testimonialService "resort/internal/domains/testimonial/service"
	"resort/permissions"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/validator"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const recentBookings = 5

type Report interface {
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
	Report(ctx context.Context, req dto.ReportRequest) (dto.ReportResponse, error)
}

type serviceImpl struct {
	bookings     bookingRepo.Booking
	contacts     contactRepo.Contact
	testimonials testimonialService.Testimonial
	otel         otel.Otel
}

// New builds the aggregator. Nothing is cached; every call reads the current records.
func New(bookings bookingRepo.Booking, contacts contactRepo.Contact, testimonials testimonialService.Testimonial, otel otel.Otel) Report {
	return &serviceImpl{
		bookings:     bookings,
		contacts:     contacts,
		testimonials: testimonials,
		otel:         otel,
	}
}

func newestFirst() gDto.QueryParams {
	return gDto.QueryParams{SortBy: bookingModel.FieldCreatedAt, SortDir: gDto.SortDirDesc}
}

func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.DashboardView); err != nil {
		return res, err //nolint:wrapcheck
	}

	var (
		bookings []bookingModel.Booking
		contacts []contactModel.ContactMessage
		pending  int
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		bookings, err = s.bookings.GetAll(gctx, newestFirst(), gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get bookings: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		contacts, err = s.contacts.GetAll(gctx, gDto.QueryParams{}, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get contact messages: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		pending, err = s.testimonials.CountPending(gctx)

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")

		return res, err //nolint:wrapcheck
	}

	res.FromModels(model.Aggregate(bookings, contacts), pending, bookings[:min(recentBookings, len(bookings))])

	return res, nil
}

// Report folds the bookings whose check-in falls inside the requested range,
// together with the contact messages received inside it.
func (s *serviceImpl) Report(ctx context.Context, req dto.ReportRequest) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ReportsView); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	from, to, err := req.Range()
	if err != nil {
		return res, failure.Validation([]string{err.Error()}) // nolint:wrapcheck
	}

	bookings, err := s.bookings.GetAll(ctx, newestFirst(), dateRange(bookingModel.FieldCheckIn, bookingModel.TableName, from, to, false))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	contacts, err := s.contacts.GetAll(ctx, gDto.QueryParams{}, dateRange(contactModel.FieldCreatedAt, contactModel.TableName, from, to, true))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	res.FromModel(model.Aggregate(bookings, contacts), req)

	return res, nil
}

// dateRange matches field within [from, to]. For timestamp columns the upper
// bound is widened to the end of that day.
func dateRange(field, table string, from, to *time.Time, timestamp bool) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if from != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  field + "_from",
			Field:    field,
			Value:    *from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    table,
		})
	}

	if to != nil {
		until := *to
		if timestamp {
			until = until.Add(24*time.Hour - time.Nanosecond)
		}

		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  field + "_to",
			Field:    field,
			Value:    until,
			Operator: gDto.FilterOperatorLessEq,
			Table:    table,
		})
	}

	return group
}
