package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/booking/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	UpdateStatus(ctx context.Context, id string, from, to model.Status, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// UpdateStatus moves a booking from one status to another only if it still has the
// expected current status. It reports false when another writer changed it first.
func (r *repositoryImpl) UpdateStatus(ctx context.Context, id string, from, to model.Status, user string) (bool, error) {
	affected, err := r.UpdateCount(ctx, map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, shared.FilterByIDAndStatus(id, model.FieldID, from.String(), model.FieldStatus, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	return affected == 1, nil
}
