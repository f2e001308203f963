package image_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/infras/otel/mocks"
	imageMocks "resort/internal/domains/image/mocks"
	"resort/internal/domains/image/model/dto"
	"resort/internal/handlers/image"
	"resort/shared/failure"
)

func multipartBody(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if withFile {
		part, err := writer.CreateFormFile("file", "pool.png")
		require.NoError(t, err)

		_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_Images(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := imageMocks.NewMockImageService(ctrl)

	handler := image.New(mockService, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	t.Run("upload", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"title": "Pool", "category": "amenity", "sort_order": "2"}, true)

		mockService.EXPECT().Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.UploadImageRequest) (dto.ImageResponse, error) {
				assert.Equal(t, "Pool", req.Title)
				assert.Equal(t, "amenity", req.Category)
				assert.Equal(t, 2, req.SortOrder)
				require.NotNil(t, req.File)
				assert.Equal(t, "pool.png", req.File.Filename)

				return dto.ImageResponse{ID: "i-1", URL: "https://cdn.test/images/pool-i-1.png"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/admin/images/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"url":"https://cdn.test/images/pool-i-1.png"`)
	})

	t.Run("upload without file reaches the service", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"title": "Pool", "category": "amenity"}, false)

		mockService.EXPECT().Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.UploadImageRequest) (dto.ImageResponse, error) {
				assert.Nil(t, req.File)

				return dto.ImageResponse{}, failure.Validation([]string{"file is required"})
			})

		req := httptest.NewRequest(http.MethodPost, "/admin/images/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload with bad sort order", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"title": "Pool", "category": "amenity", "sort_order": "first"}, true)

		req := httptest.NewRequest(http.MethodPost, "/admin/images/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload that is not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/images/", strings.NewReader(`{"title":"Pool"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list by category", func(t *testing.T) {
		mockService.EXPECT().GetAll(gomock.Any(), gomock.Any(), "hero").Return(dto.GetImagesResponse{TotalData: 3}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/?category=hero", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_data":3`)
	})

	t.Run("update", func(t *testing.T) {
		mockService.EXPECT().Update(gomock.Any(), gomock.Any(), "i-1").Return(dto.ImageResponse{ID: "i-1", SortOrder: 5}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/images/i-1", strings.NewReader(`{"sort_order":5}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		mockService.EXPECT().Delete(gomock.Any(), "missing").Return(failure.NotFound("image not found"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/images/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
