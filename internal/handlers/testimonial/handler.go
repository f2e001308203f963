package testimonial

import (
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/testimonial/model/dto"
	"resort/internal/domains/testimonial/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/validator"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Testimonial
	otel    otel.Otel
}

func New(service service.Testimonial, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/testimonials", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTestimonial)
		routerGroup.Get("/public", handler.GetPublicTestimonials)
		routerGroup.Get("/", handler.GetTestimonials)
		routerGroup.Put("/{id}/approve", handler.ApproveTestimonial)
		routerGroup.Put("/{id}/reject", handler.RejectTestimonial)
		routerGroup.Delete("/{id}", handler.DeleteTestimonial)
	})
}

// CreateTestimonial
// @Summary Submit a testimonial
// @Description Guest feedback. It stays hidden until an admin approves it.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param request body dto.CreateTestimonialRequest true "Testimonial"
// @Success 201 {object} response.Data[dto.TestimonialResponse] "Testimonial submitted"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials [post]
func (handler *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTestimonial")
	defer scope.End()

	req := dto.CreateTestimonialRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	testimonial, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create testimonial")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, testimonial)
}

// GetPublicTestimonials
// @Summary Get published testimonials
// @Description Approved testimonials only, newest first.
// @Tags Testimonial
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPublicTestimonialsResponse] "Published testimonials"
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/public [get]
func (handler *Handler) GetPublicTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicTestimonials")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	testimonials, err := handler.service.GetPublic(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public testimonials")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, testimonials)
}

// GetTestimonials
// @Summary Get all testimonials
// @Tags Testimonial
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} response.Data[dto.GetTestimonialsResponse] "Testimonials"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/testimonials [get]
// @Security BearerAuth
func (handler *Handler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonials")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	testimonials, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get testimonials")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, testimonials)
}

// ApproveTestimonial
// @Summary Approve a testimonial
// @Description Only pending testimonials can be approved.
// @Tags Testimonial
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Data[dto.TestimonialResponse] "Approved testimonial"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/testimonials/{id}/approve [put]
// @Security BearerAuth
func (handler *Handler) ApproveTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveTestimonial")
	defer scope.End()

	testimonial, err := handler.service.Approve(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve testimonial")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, testimonial)
}

// RejectTestimonial
// @Summary Reject a testimonial
// @Description Only pending testimonials can be rejected.
// @Tags Testimonial
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Data[dto.TestimonialResponse] "Rejected testimonial"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/testimonials/{id}/reject [put]
// @Security BearerAuth
func (handler *Handler) RejectTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectTestimonial")
	defer scope.End()

	testimonial, err := handler.service.Reject(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject testimonial")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, testimonial)
}

// DeleteTestimonial
// @Summary Delete a testimonial
// @Tags Testimonial
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Message "Testimonial deleted successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/testimonials/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTestimonial")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete testimonial")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Testimonial deleted successfully")
}
