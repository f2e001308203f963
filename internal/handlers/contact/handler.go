package contact

import (
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/contact/model/dto"
	"resort/internal/domains/contact/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/validator"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
		routerGroup.Get("/{id}", handler.GetContactByID)
		routerGroup.Put("/{id}", handler.UpdateContactStatus)
		routerGroup.Delete("/{id}", handler.DeleteContact)
	})
}

// CreateContact stores a message from the public contact form.
// @Summary Submit a contact message
// @Description Public contact form. Messages start as new.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact message"
// @Success 201 {object} response.Data[dto.ContactResponse] "Message received"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [post]
func (handler *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, message)
}

// GetContacts lists contact messages.
// @Summary Get all contact messages
// @Description Newest first. status accepts unread as an alias of new.
// @Tags Contact
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status substring"
// @Param search query string false "Name, email or subject"
// @Success 200 {object} response.Data[dto.GetContactsResponse] "List of contact messages"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	messages, err := handler.service.GetAll(ctx, queryParams,
		r.URL.Query().Get(constant.RequestParamStatus), r.URL.Query().Get(constant.RequestParamSearch))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// GetContactByID
// @Summary Get a contact message by ID
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact message ID"
// @Success 200 {object} response.Data[dto.ContactResponse] "Contact message"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/contacts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	message, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact message by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, message)
}

// UpdateContactStatus
// @Summary Update contact message status
// @Description new, read and replied only move forward.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact message ID"
// @Param request body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Data[dto.ContactResponse] "Updated message"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/contacts/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.UpdateStatus(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact message status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, message)
}

// DeleteContact
// @Summary Delete a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Contact message ID"
// @Success 200 {object} response.Message "Contact message deleted successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact message")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Contact message deleted successfully")
}
