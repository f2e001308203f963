package dto

import (
	"net/http"
	"resort/shared/constant"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Malformed or non-positive numbers are ignored and limit is capped at
// constant.MaxValueLimit. With withDefaults set, missing page and limit get
// constant.DefaultValuePage and constant.DefaultValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positiveInt(values.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(values.Get(constant.RequestParamLimit)); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != constant.Empty {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)

	return n, err == nil && n > 0
}

// Sortable keeps SortBy only when it names one of the allowed columns and falls
// back to defaultBy and defaultDir otherwise. SortBy ends up in ORDER BY verbatim,
// so user input must pass through here first.
func (q QueryParams) Sortable(defaultBy, defaultDir string, allowed ...string) QueryParams {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = defaultBy
		q.SortDir = defaultDir
	}

	if q.SortDir == constant.Empty {
		q.SortDir = defaultDir
	}

	return q
}
