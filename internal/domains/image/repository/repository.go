package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/image/model"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"
)

type Image interface {
	Insert(ctx context.Context, model model.Image) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Image, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Image, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Image]
}

func New(db *postgres.Connection, otel otel.Otel) Image {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Image](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
