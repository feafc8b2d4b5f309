// Package read реализует HTTP-обработчик для получения кампании по ID
// вместе с её изображениями.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/magabrotheeeer/community-kitchen/internal/storage/repository"
)

// Handler обрабатывает запросы на получение кампании.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики кампаний
}

// Service описывает интерфейс бизнес-логики чтения кампании.
type Service interface {
	Get(ctx context.Context, id int) (*models.Campaign, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Кампания по ID
// @Tags Campaigns
// @Produce  json
// @Param id path int true "ID кампании"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Кампания не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaign.read"

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

	res, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			log.Info("campaign not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("campaign not found"))
			return
		}
		log.Error("failed to read campaign", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read campaign"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"campaign": res,
	}))
}
