package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Contact=MockContactService

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/contact/model"
	"resort/internal/domains/contact/model/dto"
	"resort/internal/domains/contact/repository"
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
	cacheContact       = "contact"
	cacheGetContact    = "contact:get"
	cacheGetAllContact = "contact:gets"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status, search string) (dto.GetContactsResponse, error)
	Get(ctx context.Context, id string) (dto.ContactResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.ContactResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Contact
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher event.Publisher
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher event.Publisher) Contact {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	message := req.ToModel(timezone.Now())

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to create contact message")

		return res, fmt.Errorf("failed to create contact message: %w", err)
	}

	res.FromModel(message)

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.Publish(c, event.TopicContactReceived, message.ID, event.ContactReceived{
			ID:      message.ID,
			Name:    message.Name,
			Email:   message.Email,
			Subject: message.Subject,
			Message: message.Message,
		})
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status, search string) (res dto.GetContactsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ContactsManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	var messages []model.ContactMessage

	generation := shared.CacheGeneration(ctx, s.cache, cacheContact)
	cacheKey := shared.BuildCacheKey(cacheGetAllContact, generation, "all")

	if err = s.cache.Get(ctx, cacheKey, &messages); err != nil {
		messages, err = s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
		if err != nil {
			log.Error().Err(err).Msg("failed to get contact messages")

			return res, fmt.Errorf("failed to get contact messages: %w", err)
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, messages, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save contact messages to cache")
			}
		}()
	}

	filtered := model.FilterMessages(messages, status, search)

	res.FromModels(shared.Paginate(filtered, params.Page, params.Limit), len(filtered), params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ContactsManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheContact)
	cacheKey := shared.BuildCacheKey(cacheGetContact, generation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for contact message")

		return res, nil
	}

	message, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(message)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contact message to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.ContactMessage, error) {
	if !shared.ValidID(id) {
		return model.ContactMessage{}, failure.NotFound("contact message not found") // nolint:wrapcheck
	}

	message, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact message")

		return message, fmt.Errorf("failed to get contact message: %w", err)
	}

	if message.ID == constant.Empty {
		return message, failure.NotFound("contact message not found") // nolint:wrapcheck
	}

	return message, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ContactsManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.Validation([]string{err.Error()}) // nolint:wrapcheck
	}

	message, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	current := message.Status
	if !current.CanTransitionTo(target) {
		return res, failure.InvalidTransition(model.EntityName, current.String(), target.String()) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByIDAndStatus(id, model.FieldID, current.String(), model.FieldStatus, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update contact message status")

		return res, fmt.Errorf("failed to update contact message status: %w", err)
	}

	if affected == 0 {
		return res, failure.InvalidTransition(model.EntityName, current.String(), target.String()) // nolint:wrapcheck
	}

	message.Status = target
	message.ModifiedAt = now
	message.ModifiedBy = user

	res.FromModel(message)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ContactsManage); err != nil {
		return err //nolint:wrapcheck
	}

	if !shared.ValidID(id) {
		return failure.NotFound("contact message not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if contact message exists")

		return fmt.Errorf("failed to check if contact message exists: %w", err)
	}

	if !exist {
		return failure.NotFound("contact message not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete contact message")

		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.BumpCacheGeneration(context.WithoutCancel(ctx), s.cache, cacheContact)
}
