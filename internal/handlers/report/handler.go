package report

import (
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/report/model/dto"
	"resort/internal/domains/report/service"
	"resort/shared/constant"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/admin/dashboard", handler.GetDashboard)
	router.Get("/admin/reports", handler.GetReport)
}

// GetDashboard
// @Summary Dashboard statistics
// @Description Revenue, status counts, accommodation split, monthly revenue, pending testimonials and the latest bookings.
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse] "Dashboard"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	dashboard, err := handler.service.Dashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dashboard)
}

// GetReport
// @Summary Booking report
// @Description Super admins only. from and to bound the check-in date and are both inclusive.
// @Tags Report
// @Produce json
// @Param from query string false "First check-in date (YYYY-MM-DD)"
// @Param to query string false "Last check-in date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.ReportResponse] "Report"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/reports [get]
// @Security BearerAuth
func (handler *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReport")
	defer scope.End()

	req := dto.ReportRequest{
		From: r.URL.Query().Get(constant.RequestParamFrom),
		To:   r.URL.Query().Get(constant.RequestParamTo),
	}

	report, err := handler.service.Report(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}
