package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Testimonial=MockTestimonialService

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/testimonial/model"
	"resort/internal/domains/testimonial/model/dto"
	"resort/internal/domains/testimonial/repository"
	"resort/permissions"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/event"
	"resort/shared/failure"
	"resort/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheTestimonial          = "testimonial"
	cacheGetAllTestimonial    = "testimonial:gets"
	cacheCountTestimonial     = "testimonial:count"
	cacheGetPublicTestimonial = "testimonial:public"
)

type Testimonial interface {
	Create(ctx context.Context, req dto.CreateTestimonialRequest) (dto.TestimonialResponse, error)
	GetPublic(ctx context.Context, params gDto.QueryParams) (dto.GetPublicTestimonialsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetTestimonialsResponse, error)
	CountPending(ctx context.Context) (int, error)
	Approve(ctx context.Context, id string) (dto.TestimonialResponse, error)
	Reject(ctx context.Context, id string) (dto.TestimonialResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Testimonial
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher event.Publisher
}

func New(repo repository.Testimonial, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher event.Publisher) Testimonial {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func filterByStatus(status model.Status) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    status.String(),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func newestFirst(params gDto.QueryParams) gDto.QueryParams {
	params.SortBy = model.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	return params
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTestimonialRequest) (res dto.TestimonialResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	testimonial := req.ToModel(timezone.Now())

	if err = s.repo.Insert(ctx, testimonial); err != nil {
		log.Error().Err(err).Msg("failed to create testimonial")

		return res, fmt.Errorf("failed to create testimonial: %w", err)
	}

	res.FromModel(testimonial)

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.Publish(c, event.TopicTestimonialSubmitted, testimonial.ID, event.TestimonialSubmitted{
			ID:        testimonial.ID,
			Name:      testimonial.Name,
			Rating:    testimonial.Rating,
			VisitType: testimonial.VisitType,
			Message:   testimonial.Message,
		})
	}()

	return res, nil
}

// GetPublic lists approved testimonials only, newest first.
func (s *serviceImpl) GetPublic(ctx context.Context, params gDto.QueryParams) (res dto.GetPublicTestimonialsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublic")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params = newestFirst(params)
	filter := filterByStatus(model.StatusApproved)
	generation := shared.CacheGeneration(ctx, s.cache, cacheTestimonial)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetPublicTestimonial, generation), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for public testimonials")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count published testimonials")

		return res, fmt.Errorf("failed to count published testimonials: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get published testimonials")

		return res, fmt.Errorf("failed to get published testimonials: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save public testimonials to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetTestimonialsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.TestimonialsModerate); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{}

	if status != constant.Empty {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return res, failure.Validation([]string{err.Error()}) // nolint:wrapcheck
		}

		filter = filterByStatus(parsed)
	}

	params = newestFirst(params)
	generation := shared.CacheGeneration(ctx, s.cache, cacheTestimonial)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllTestimonial, generation), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for testimonials")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonials")

		return res, fmt.Errorf("failed to get testimonials: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save testimonials to cache")
		}
	}()

	return res, nil
}

// CountPending is the moderation backlog shown on the dashboard.
func (s *serviceImpl) CountPending(ctx context.Context) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountPending")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.DashboardView); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.count(ctx, filterByStatus(model.StatusPending))
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	generation := shared.CacheGeneration(ctx, s.cache, cacheTestimonial)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheCountTestimonial, generation), gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count testimonials")

		return res, fmt.Errorf("failed to count testimonials: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save testimonial count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.TestimonialResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.moderate(ctx, id, model.StatusApproved)
}

func (s *serviceImpl) Reject(ctx context.Context, id string) (res dto.TestimonialResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.moderate(ctx, id, model.StatusRejected)
}

func (s *serviceImpl) moderate(ctx context.Context, id string, target model.Status) (res dto.TestimonialResponse, err error) {
	if err = permissions.Authorize(ctx, permissions.TestimonialsModerate); err != nil {
		return res, err //nolint:wrapcheck
	}

	if !shared.ValidID(id) {
		return res, failure.NotFound("testimonial not found") // nolint:wrapcheck
	}

	testimonial, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonial")

		return res, fmt.Errorf("failed to get testimonial: %w", err)
	}

	if testimonial.ID == constant.Empty {
		return res, failure.NotFound("testimonial not found") // nolint:wrapcheck
	}

	current := testimonial.Status
	if !current.CanTransitionTo(target) {
		return res, failure.InvalidTransition(model.EntityName, current.String(), target.String()) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if target == model.StatusApproved {
		fields[model.FieldApprovedAt] = now
		testimonial.ApprovedAt = &now
	}

	affected, err := s.repo.UpdateCount(ctx, fields,
		shared.FilterByIDAndStatus(id, model.FieldID, current.String(), model.FieldStatus, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to moderate testimonial")

		return res, fmt.Errorf("failed to moderate testimonial: %w", err)
	}

	if affected == 0 {
		return res, failure.InvalidTransition(model.EntityName, current.String(), target.String()) // nolint:wrapcheck
	}

	testimonial.Status = target
	testimonial.ModifiedAt = now
	testimonial.ModifiedBy = user

	res.FromModel(testimonial)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.TestimonialsModerate); err != nil {
		return err //nolint:wrapcheck
	}

	if !shared.ValidID(id) {
		return failure.NotFound("testimonial not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if testimonial exists")

		return fmt.Errorf("failed to check if testimonial exists: %w", err)
	}

	if !exist {
		return failure.NotFound("testimonial not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete testimonial")

		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.BumpCacheGeneration(context.WithoutCancel(ctx), s.cache, cacheTestimonial)
}
