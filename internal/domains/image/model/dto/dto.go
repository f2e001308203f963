package dto

import (
	"fmt"
	"mime/multipart"
	"resort/internal/domains/image/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/validator"
	"time"
)

type UploadImageRequest struct {
	Title     string                `form:"title"      json:"title"      validate:"notblank,max=150"`
	Category  string                `form:"category"   json:"category"   validate:"notblank,oneof=hero accommodation gallery amenity"`
	SortOrder int                   `form:"sort_order" json:"sort_order" validate:"gte=0"`
	File      *multipart.FileHeader `form:"file"       json:"-"          swaggerignore:"true"`
	Body      multipart.File        `json:"-"`
}

// Validate returns one message per problem, the file checks included.
func (r *UploadImageRequest) Validate() []string {
	msgs := validator.Messages(r)

	switch {
	case r.File == nil || r.Body == nil:
		msgs = append(msgs, "file is required")
	case r.File.Size > model.MaxFileSize:
		msgs = append(msgs, fmt.Sprintf("file must not exceed %d MB", model.MaxFileSizeMB))
	}

	return msgs
}

func (r *UploadImageRequest) ToModel(id, objectKey, url, user string, now time.Time) model.Image {
	return model.Image{
		ID:        id,
		Title:     r.Title,
		Category:  r.Category,
		URL:       url,
		ObjectKey: objectKey,
		SortOrder: r.SortOrder,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			CreatedBy:  user,
			ModifiedAt: now,
			ModifiedBy: user,
		},
	}
}

type UpdateImageRequest struct {
	Title     *string `db:"title"      json:"title,omitempty"      validate:"omitempty,notblank,max=150"`
	Category  *string `db:"category"   json:"category,omitempty"   validate:"omitempty,oneof=hero accommodation gallery amenity"`
	SortOrder *int    `db:"sort_order" json:"sort_order,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateImageRequest) Empty() bool {
	return r.Title == nil && r.Category == nil && r.SortOrder == nil
}

// Apply copies the requested changes onto image.
func (r *UpdateImageRequest) Apply(image *model.Image) {
	if r.Title != nil {
		image.Title = *r.Title
	}

	if r.Category != nil {
		image.Category = *r.Category
	}

	if r.SortOrder != nil {
		image.SortOrder = *r.SortOrder
	}
}

type ImageResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(model model.Image) {
	r.ID = model.ID
	r.Title = model.Title
	r.Category = model.Category
	r.URL = model.URL
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

type GetImagesResponse struct {
	Images    []ImageResponse `json:"images"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetImagesResponse) FromModels(models []model.Image, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]ImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
