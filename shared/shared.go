package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"reflect"
	"resort/shared/cache"
	"resort/shared/constant"
	"resort/shared/dto"
	"resort/shared/timezone"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeySeparator  = ":"
	cacheGenerationKey = "generation"
	initialGeneration  = "0"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields maps the non-zero db-tagged fields of data to an update set
// and stamps it with the modification time and actor.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

// ValidID reports whether id can name a stored record. Primary keys are UUIDs,
// so anything else is answered as not found without a round trip.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByIDAndStatus matches one record only while its status still equals status.
// The status argument is named current_status so an update may set a new status.
func FilterByIDAndStatus(id, fieldID, status, fieldStatus, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
			dto.Filter{
				Field:    fieldStatus,
				Value:    status,
				Operator: dto.FilterOperatorEq,
				Table:    table,
				ArgName:  constant.ArgCurrentStatus,
			},
		},
	}
}

// BuildCacheKey joins a prefix and its parts into a redis key, e.g. "booking:get:<id>".
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the list parameters and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter dto.FilterGroup `json:"filter"`
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		return prefix
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:8]))
}

// InvalidateCaches removes every key under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// CacheGeneration returns the current generation of the keys under prefix.
// Readers must take it before loading from the database and build their key
// with it, so a value loaded before a concurrent write is saved under a
// generation nobody reads anymore.
func CacheGeneration(ctx context.Context, redisCache cache.RedisCache, prefix string) string {
	var generation string
	if err := redisCache.Get(ctx, BuildCacheKey(prefix, cacheGenerationKey), &generation); err != nil || generation == constant.Empty {
		return initialGeneration
	}

	return generation
}

// BumpCacheGeneration moves every key under prefix to a new generation. It has
// to run after the write is committed and before the write is reported done.
// The generation key has no expiry, old generations age out with their ttl.
// When the new generation cannot be saved every key under prefix is dropped.
func BumpCacheGeneration(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	generation := strconv.FormatInt(timezone.Now().UnixNano(), 10)

	if err := redisCache.Save(ctx, BuildCacheKey(prefix, cacheGenerationKey), generation, 0); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to bump cache generation, clearing instead")

		InvalidateCaches(ctx, redisCache, prefix)
	}
}

// IsUniqueViolation reports whether err comes from a postgres unique constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

// Paginate returns the requested page of items. A non-positive page or limit returns every item.
func Paginate[T any](items []T, page, limit int) []T {
	if page <= 0 || limit <= 0 {
		return items
	}

	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}

	return items[start:min(start+limit, len(items))]
}
