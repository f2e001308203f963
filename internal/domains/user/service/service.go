package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/user/model"
	"resort/internal/domains/user/model/dto"
	"resort/internal/domains/user/repository"
	"resort/permissions"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/password"
	"resort/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheUser       = "user"
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"

	msgEmailTaken = "email is already registered"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, search string) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
	EnsureSuperAdmin(ctx context.Context) (bool, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    dto.NormalizeEmail(email),
				Table:    model.TableName,
			},
		},
	}
}

func filterBySearch(search string) gDto.FilterGroup {
	if search == constant.Empty {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName, ArgName: "search_name"},
			gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName, ArgName: "search_email"},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.UsersManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.repo.Exist(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Validation([]string{msgEmailTaken}) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(actor, hashedPassword, timezone.Now())

	if err = s.repo.Insert(ctx, user); err != nil {
		// lost a race with another create for the same address
		if shared.IsUniqueViolation(err) {
			return res, failure.Validation([]string{msgEmailTaken}) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, search string) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.UsersManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	req = req.Sortable(model.FieldCreatedAt, gDto.SortDirDesc, model.FieldCreatedAt, model.FieldName, model.FieldEmail, model.FieldRole, model.FieldLastLogin)

	filter := filterBySearch(search)
	generation := shared.CacheGeneration(ctx, s.cache, cacheUser)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllUser, generation), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	generation := shared.CacheGeneration(ctx, s.cache, cacheUser)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheCountUser, generation), gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.UsersManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	generation := shared.CacheGeneration(ctx, s.cache, cacheUser)
	cacheKey := shared.BuildCacheKey(cacheGetUser, generation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	if !shared.ValidID(id) {
		return model.User{}, failure.NotFound("user not found") // nolint:wrapcheck
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.UsersManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, actor)

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		updatedFields[model.FieldPassword] = hashedPassword
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Role != nil {
		user.Role = *req.Role
	}

	if req.Active != nil {
		user.Active = *req.Active
	}

	user.ModifiedBy = actor
	user.ModifiedAt = timezone.Now()

	res.FromModel(user)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.UsersManage); err != nil {
		return err //nolint:wrapcheck
	}

	if actor, _ := ctx.Value(constant.ContextKeyUserID).(string); actor == id {
		return failure.BadRequestFromString("you cannot delete your own account") // nolint:wrapcheck
	}

	if !shared.ValidID(id) {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// EnsureSuperAdmin creates the configured super admin when none exists yet.
// It reports whether an account was created.
func (s *serviceImpl) EnsureSuperAdmin(ctx context.Context) (created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureSuperAdmin")
	defer scope.End()
	defer scope.TraceIfError(&err)

	seed := s.cfg.Seed.SuperAdmin
	if seed.Email == constant.Empty || seed.Password == constant.Empty {
		return false, failure.BadRequestFromString("super admin email and password must be configured") // nolint:wrapcheck
	}

	total, err := s.repo.CountByRole(ctx, constant.RoleSuperAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to count super admins")

		return false, fmt.Errorf("failed to count super admins: %w", err)
	}

	if total > 0 {
		log.Info().Int("count", total).Msg("super admin already present, skipping seed")

		return false, nil
	}

	hashedPassword, err := password.Hash(seed.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	name := seed.Name
	if name == constant.Empty {
		name = "Super Admin"
	}

	req := dto.CreateUserRequest{Name: name, Email: seed.Email, Role: constant.RoleSuperAdmin}

	if err = s.repo.Insert(ctx, req.ToModel(constant.ContextSystem, hashedPassword, timezone.Now())); err != nil {
		log.Error().Err(err).Msg("failed to seed super admin")

		return false, fmt.Errorf("failed to seed super admin: %w", err)
	}

	log.Info().Str("email", dto.NormalizeEmail(seed.Email)).Msg("super admin created")

	return true, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.BumpCacheGeneration(context.WithoutCancel(ctx), s.cache, cacheUser)
}
