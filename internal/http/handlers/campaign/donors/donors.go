// Package donors реализует HTTP-обработчик списка жертвователей кампании.
package donors

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// Service описывает получение жертвователей.
type Service interface {
	Donors(ctx context.Context, campaignID int) ([]models.Donor, error)
}

// Handler обрабатывает запросы списка жертвователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Жертвователи кампании
// @Description Анонимные жертвователи отображаются как Anonymous, новые сначала.
// @Tags Campaigns
// @Produce  json
// @Param id path int true "ID кампании"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns/{id}/donors [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaign.donors"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.Donors(r.Context(), id)
	if err != nil {
		log.Error("failed to list donors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list donors"))
		return
	}
	if res == nil {
		res = []models.Donor{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"donors": res,
	}))
}
