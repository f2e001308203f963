package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	"resort/internal/domains/booking/repository"
	"resort/permissions"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/event"
	"resort/shared/failure"
	"resort/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheBooking       = "booking"
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"

	maxCodeAttempts = 3
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (model.Quote, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status, search string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher event.Publisher
	rates     model.Rates
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher event.Publisher) Booking {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
		rates:     model.RatesFromConfig(cfg),
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()

	if msgs := req.Validate(now, s.cfg.Resort.MaxGuests); len(msgs) > 0 {
		return res, failure.Validation(msgs) // nolint:wrapcheck
	}

	quote, msgs := s.rates.Quote(req.Accommodation, req.Guests, req.AddOns)
	if len(msgs) > 0 {
		return res, failure.Validation(msgs) // nolint:wrapcheck
	}

	var booking model.Booking

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		booking = req.ToModel(model.GenerateCode(s.cfg.Resort.BookingCodePrefix, now), quote, now)

		err = s.repo.Insert(ctx, booking)
		if err == nil {
			break
		}

		if !shared.IsUniqueViolation(err) || attempt == maxCodeAttempts {
			log.Error().Err(err).Msg("failed to create booking")

			return res, fmt.Errorf("failed to create booking: %w", err)
		}

		log.Warn().Str("code", booking.Code).Int("attempt", attempt).Msg("booking code already taken, retrying")
	}

	res.FromModel(booking)

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.Publish(c, event.TopicBookingCreated, booking.ID, event.BookingCreated{
			ID:            booking.ID,
			Code:          booking.Code,
			GuestName:     booking.GuestName,
			Email:         booking.Email,
			Phone:         booking.Phone,
			CheckIn:       res.CheckIn,
			CheckOut:      req.CheckOut,
			Accommodation: booking.Accommodation,
			Guests:        booking.Guests,
			TotalAmount:   booking.TotalAmount,
		})
	}()

	return res, nil
}

// Quote prices a prospective booking with the same rates Create records.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res model.Quote, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(&err)

	msgs := []string{}
	if req.Guests > s.cfg.Resort.MaxGuests {
		msgs = append(msgs, fmt.Sprintf("guests must be less than or equal to %d", s.cfg.Resort.MaxGuests))
	}

	res, quoteMsgs := s.rates.Quote(req.Accommodation, req.Guests, req.AddOns)
	msgs = append(msgs, quoteMsgs...)

	if len(msgs) > 0 {
		return model.Quote{}, failure.Validation(msgs) // nolint:wrapcheck
	}

	return res, nil
}

// all returns every booking, newest first. The list is cached as a whole so that
// filtering and paging stay a pure transform over the full set.
func (s *serviceImpl) all(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".all")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetAllBooking, shared.CacheGeneration(ctx, s.cache, cacheBooking), "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	res, err = s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status, search string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.BookingsManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	bookings, err := s.all(ctx)
	if err != nil {
		return res, err
	}

	filtered := model.FilterBookings(bookings, status, search)

	res.FromModels(shared.Paginate(filtered, params.Page, params.Limit), len(filtered), params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, shared.CacheGeneration(ctx, s.cache, cacheBooking), id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	if !shared.ValidID(id) {
		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// UpdateStatus applies one transition of the booking lifecycle. The write only lands
// if the stored status is still the one the transition was checked against.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.BookingsManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.Validation([]string{err.Error()}) // nolint:wrapcheck
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	current := booking.Status
	if !current.CanTransitionTo(target) {
		return res, failure.InvalidTransition(model.EntityName, current.String(), target.String()) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated, err := s.repo.UpdateStatus(ctx, id, current, target, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !updated {
		log.Warn().Str("id", id).Str("from", current.String()).Msg("booking status changed concurrently")

		return res, failure.InvalidTransition(model.EntityName, current.String(), target.String()) // nolint:wrapcheck
	}

	booking.Status = target
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	res.FromModel(booking)

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.Publish(c, event.TopicBookingStatusChanged, booking.ID, event.BookingStatusChanged{
			ID:        booking.ID,
			Code:      booking.Code,
			GuestName: booking.GuestName,
			Email:     booking.Email,
			CheckIn:   booking.CheckIn.Format(time.DateOnly),
			From:      current.String(),
			To:        target.String(),
			ChangedBy: user,
		})
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.BookingsManage); err != nil {
		return err //nolint:wrapcheck
	}

	if !shared.ValidID(id) {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// invalidate retires every cached booking and list at once. It runs before the
// write returns so the next read cannot be served the previous state.
func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.BumpCacheGeneration(context.WithoutCancel(ctx), s.cache, cacheBooking)
}
