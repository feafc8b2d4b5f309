// Package list реализует HTTP-обработчик списка активных кампаний
// с поиском, фильтрами по категории и месту, сортировкой и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// Service описывает получение списка кампаний.
type Service interface {
	List(ctx context.Context, filter models.CampaignFilter, page models.Page) ([]models.Campaign, error)
}

// Handler обрабатывает запросы списка кампаний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список кампаний
// @Description Категории и места передаются через запятую. Некорректные limit и offset заменяются значениями по умолчанию.
// @Tags Campaigns
// @Produce  json
// @Param search query string false "Поиск по названию, описанию и месту"
// @Param category query string false "Категории"
// @Param location query string false "Места"
// @Param sort query string false "ending-soon, most-funded, most-popular"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaign.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.CampaignFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		Sort:     q.Get("sort"),
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = 0
	}
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil {
		offset = 0
	}

	res, err := h.service.List(r.Context(), filter, models.Page{Limit: limit, Offset: offset})
	if err != nil {
		log.Error("failed to list campaigns", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list campaigns"))
		return
	}

	log.Info("list campaigns", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"campaigns":  res,
	}))
}
