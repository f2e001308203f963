package model

import (
	"fmt"
	"resort/shared/model"
	"slices"

	"github.com/gosimple/slug"
)

const (
	TableName  = "resort_images"
	EntityName = "image"

	FieldID        = "id"
	FieldCategory  = "category"
	FieldSortOrder = "sort_order"
	FieldCreatedAt = "created_at"

	ObjectPrefix  = "images"
	MaxFileSizeMB = 5
	MaxFileSize   = MaxFileSizeMB << 20
)

const (
	CategoryHero          = "hero"
	CategoryAccommodation = "accommodation"
	CategoryGallery       = "gallery"
	CategoryAmenity       = "amenity"
)

var Categories = []string{CategoryHero, CategoryAccommodation, CategoryGallery, CategoryAmenity}

// extensions maps every accepted content type to the extension used in object keys.
var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Image struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Category  string `db:"category"`
	URL       string `db:"url"`
	ObjectKey string `db:"object_key"`
	SortOrder int    `db:"sort_order"`
	model.Metadata
}

func ValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

// Extension reports the object key extension for contentType and whether the type is accepted.
func Extension(contentType string) (string, bool) {
	ext, ok := extensions[contentType]

	return ext, ok
}

// ObjectKey names the stored object after the title, e.g. images/sunset-pool-1a2b3c4d.jpg.
// The first eight characters of id keep keys unique across equal titles.
func ObjectKey(title, id, ext string) string {
	name := slug.Make(title)
	if name == "" {
		name = EntityName
	}

	return fmt.Sprintf("%s/%s-%s%s", ObjectPrefix, name, id[:min(8, len(id))], ext)
}
