package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Image=MockImageService

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"resort/config"
	"resort/infras/otel"
	"resort/infras/s3"
	"resort/internal/domains/image/model"
	"resort/internal/domains/image/model/dto"
	"resort/internal/domains/image/repository"
	"resort/permissions"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheImage       = "image"
	cacheGetImage    = "image:get"
	cacheGetAllImage = "image:gets"
	cacheCountImage  = "image:count"

	sniffLength = 512
)

type Image interface {
	Upload(ctx context.Context, req dto.UploadImageRequest) (dto.ImageResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, category string) (dto.GetImagesResponse, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) (dto.ImageResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Image
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Image, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Image {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// readUpload reads the whole file and detects its type from the content, not
// from the client supplied header.
func readUpload(req dto.UploadImageRequest) (data []byte, contentType string, err error) {
	data, err = io.ReadAll(io.LimitReader(req.Body, model.MaxFileSize+1))
	if err != nil {
		return nil, constant.Empty, fmt.Errorf("failed to read upload: %w", err)
	}

	if len(data) > model.MaxFileSize {
		return nil, constant.Empty, failure.Validation([]string{fmt.Sprintf("file must not exceed %d MB", model.MaxFileSizeMB)}) // nolint:wrapcheck
	}

	contentType = http.DetectContentType(data[:min(sniffLength, len(data))])
	contentType, _, _ = strings.Cut(contentType, ";")

	if _, ok := model.Extension(contentType); !ok {
		return nil, constant.Empty, failure.Validation([]string{"file must be one of image/png image/jpeg image/webp"}) // nolint:wrapcheck
	}

	return data, contentType, nil
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ImagesManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	if msgs := req.Validate(); len(msgs) > 0 {
		return res, failure.Validation(msgs) // nolint:wrapcheck
	}

	data, contentType, err := readUpload(req)
	if err != nil {
		return res, err
	}

	ext, _ := model.Extension(contentType)
	id := uuid.NewString()
	objectKey := model.ObjectKey(req.Title, id, ext)

	url, err := s.s3.Upload(ctx, objectKey, contentType, bytes.NewReader(data))
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	image := req.ToModel(id, objectKey, url, user, timezone.Now())

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create image")

		if delErr := s.s3.Delete(context.WithoutCancel(ctx), objectKey); delErr != nil {
			log.Error().Err(delErr).Str("key", objectKey).Msg("failed to remove orphaned image object")
		}

		return res, fmt.Errorf("failed to create image: %w", err)
	}

	res.FromModel(image)

	s.invalidate(ctx)

	return res, nil
}

func filterByCategory(category string) gDto.FilterGroup {
	if category == constant.Empty {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCategory,
				Value:    category,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, category string) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	category = strings.ToLower(strings.TrimSpace(category))
	if category != constant.Empty && !model.ValidCategory(category) {
		return res, failure.Validation([]string{"category must be one of " + strings.Join(model.Categories, " ")}) // nolint:wrapcheck
	}

	params = params.Sortable(model.FieldSortOrder, gDto.SortDirAsc, model.FieldSortOrder, model.FieldCreatedAt)
	filter := filterByCategory(category)
	generation := shared.CacheGeneration(ctx, s.cache, cacheImage)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllImage, generation), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for images")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	images, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get images")

		return res, fmt.Errorf("failed to get images: %w", err)
	}

	res.FromModels(images, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (total int, err error) {
	generation := shared.CacheGeneration(ctx, s.cache, cacheImage)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheCountImage, generation), gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count images")

		return total, fmt.Errorf("failed to count images: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save image count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	generation := shared.CacheGeneration(ctx, s.cache, cacheImage)
	cacheKey := shared.BuildCacheKey(cacheGetImage, generation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for image")

		return res, nil
	}

	image, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(image)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save image to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Image, error) {
	if !shared.ValidID(id) {
		return model.Image{}, failure.NotFound("image not found") // nolint:wrapcheck
	}

	image, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get image")

		return image, fmt.Errorf("failed to get image: %w", err)
	}

	if image.ID == constant.Empty {
		return image, failure.NotFound("image not found") // nolint:wrapcheck
	}

	return image, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ImagesManage); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	image, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update image")

		return res, fmt.Errorf("failed to update image: %w", err)
	}

	req.Apply(&image)
	image.ModifiedBy = user
	image.ModifiedAt = timezone.Now()

	res.FromModel(image)

	s.invalidate(ctx)

	return res, nil
}

// Delete removes the row first. A failed object removal only leaves an
// unreferenced object behind, so it is logged rather than returned.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = permissions.Authorize(ctx, permissions.ImagesManage); err != nil {
		return err //nolint:wrapcheck
	}

	image, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete image")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	objectKey := image.ObjectKey
	if objectKey == constant.Empty {
		objectKey = s.s3.ObjectKeyFromURL(image.URL)
	}

	if objectKey != constant.Empty {
		if err := s.s3.Delete(ctx, objectKey); err != nil {
			log.Error().Err(err).Str("key", objectKey).Msg("failed to delete image object")
		}
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.BumpCacheGeneration(context.WithoutCancel(ctx), s.cache, cacheImage)
}
