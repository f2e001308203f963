package dto

import (
	"resort/shared/constant"
	"resort/shared/model"
	"resort/shared/timezone"
	"time"
)

// Metadata is the audit block embedded in every resource response. Times are
// rendered in the resort's timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  formatTime(src.CreatedAt),
		ModifiedAt: formatTime(src.ModifiedAt),
		CreatedBy:  src.CreatedBy,
		ModifiedBy: src.ModifiedBy,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}
