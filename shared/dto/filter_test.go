package dto_test

import (
	"resort/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "custom arg name",
			filter:    dto.Filter{Field: "status", ArgName: "current_status", Value: "pending", Operator: dto.FilterOperatorEq},
			wantWhere: "status = :current_status",
			wantArgs:  map[string]any{"current_status": "pending"},
		},
		{
			name:      "range bound",
			filter:    dto.Filter{Field: "check_in", ArgName: "check_in_from", Value: "2026-05-01", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "check_in >= :check_in_from",
			wantArgs:  map[string]any{"check_in_from": "2026-05-01"},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "guest_name", Value: "50%_off", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(guest_name) LIKE LOWER(:guest_name)",
			wantArgs:  map[string]any{"guest_name": `%50\%\_off%`},
		},
		{
			name:      "in expands every element",
			filter:    dto.Filter{Field: "status", Value: []string{"confirmed", "completed"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "confirmed", "status_1": "completed"},
		},
		{
			name:      "in with empty list matches nothing",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with a scalar matches nothing",
			filter:    dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "null check",
			filter:    dto.Filter{Field: "approved_at", Operator: dto.FilterIsNull},
			wantWhere: "approved_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "status", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	search := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "name", ArgName: "search_name", Value: "ana", Operator: dto.FilterOperatorLike},
			dto.Filter{Field: "email", ArgName: "search_email", Value: "ana", Operator: dto.FilterOperatorLike},
		},
	}

	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "new", Operator: dto.FilterOperatorEq},
			search,
			dto.Filter{Field: "ignored", Operator: "unknown"},
			"not a filter",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (LOWER(name) LIKE LOWER(:search_name) OR LOWER(email) LIKE LOWER(:search_email)))", where)
	assert.Equal(t, map[string]any{"status": "new", "search_name": "%ana%", "search_email": "%ana%"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
