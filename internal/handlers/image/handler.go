package image

import (
	"errors"
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/image/model/dto"
	"resort/internal/domains/image/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/validator"
	"resort/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formTitle     = "title"
	formCategory  = "category"
	formSortOrder = "sort_order"
	queryCategory = "category"
)

type Handler struct {
	service service.Image
	otel    otel.Otel
}

func New(service service.Image, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/images", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Get("/{id}", handler.GetImageByID)
	})

	router.Route("/admin/images", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadImage)
		routerGroup.Patch("/{id}", handler.UpdateImage)
		routerGroup.Delete("/{id}", handler.DeleteImage)
	})
}

// parseUpload reads the multipart form. A missing file is left for the service to report.
func parseUpload(r *http.Request) (dto.UploadImageRequest, error) {
	req := dto.UploadImageRequest{}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, failure.BadRequest(err) //nolint:wrapcheck
	}

	req.Title = r.FormValue(formTitle)
	req.Category = r.FormValue(formCategory)

	if order := r.FormValue(formSortOrder); order != constant.Empty {
		parsed, err := strconv.Atoi(order)
		if err != nil {
			return req, failure.Validation([]string{"sort_order must be a whole number"}) //nolint:wrapcheck
		}

		req.SortOrder = parsed
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return req, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err == nil {
		req.File = header
		req.Body = file
	}

	return req, nil
}

// UploadImage
// @Summary Upload a resort image
// @Description Super admins only. PNG, JPEG or WebP up to 5 MB.
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param title formData string true "Title"
// @Param category formData string true "hero, accommodation, gallery or amenity"
// @Param sort_order formData int false "Position within the category"
// @Success 201 {object} response.Data[dto.ImageResponse] "Image uploaded"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	req, err := parseUpload(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	if req.Body != nil {
		defer req.Body.Close()
	}

	image, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, image)
}

// GetImages
// @Summary Get resort images
// @Description Public. Ordered by sort_order unless sort_by is created_at.
// @Tags Image
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "hero, accommodation, gallery or amenity"
// @Success 200 {object} response.Data[dto.GetImagesResponse] "Images"
// @Failure 400 {object} response.Error
// @Router /v1/images [get]
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	images, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(queryCategory))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// GetImageByID
// @Summary Get a resort image
// @Tags Image
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse] "Image"
// @Failure 404 {object} response.Error
// @Router /v1/images/{id} [get]
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	image, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// UpdateImage
// @Summary Update image details
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ImageResponse] "Updated image"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/images/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	image, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// DeleteImage
// @Summary Delete an image
// @Description Removes the record and the stored object.
// @Tags Image
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/images/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}
