// Package analytics реализует HTTP-обработчик статистики пожертвований
// по кампаниям пользователя.
package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/period"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// Service описывает расчёт статистики.
type Service interface {
	Analytics(ctx context.Context, ownerUID, timeframe string) ([]models.AnalyticsPoint, error)
}

// Handler обрабатывает запросы статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика пожертвований
// @Description monthly — последние 6 месяцев, weekly — последние 4 недели.
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Param timeframe query string false "monthly или weekly"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /dashboard/analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.analytics"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	timeframe := period.Parse(r.URL.Query().Get("timeframe"))
	res, err := h.service.Analytics(r.Context(), uid, string(timeframe))
	if err != nil {
		log.Error("failed to build analytics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build analytics"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"timeframe": timeframe,
		"points":    res,
	}))
}
