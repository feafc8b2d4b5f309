// Package updatecreate реализует HTTP-обработчик публикации новости кампании.
// Публиковать может только владелец кампании.
package updatecreate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	services "github.com/magabrotheeeer/community-kitchen/internal/services/campaign"
	"github.com/magabrotheeeer/community-kitchen/internal/storage/repository"
)

// Service описывает публикацию новости.
type Service interface {
	AddUpdate(ctx context.Context, userUID string, campaignID int, req models.DummyCampaignUpdate) (int, error)
}

// Handler обрабатывает запросы публикации новостей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Опубликовать новость кампании
// @Tags Campaigns
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "ID кампании"
// @Param request body models.DummyCampaignUpdate true "Новость"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Не владелец кампании"
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns/{id}/updates [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaign.updatecreate"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyCampaignUpdate
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updateID, err := h.service.AddUpdate(r.Context(), uid, id, req)
	switch {
	case errors.Is(err, services.ErrForbidden):
		log.Info("update rejected, not an owner", slog.Int("campaign_id", id))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(services.ErrForbidden.Error()))
		return
	case errors.Is(err, repository.ErrCampaignNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("campaign not found"))
		return
	case err != nil:
		log.Error("failed to add update", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add update"))
		return
	}

	log.Info("update published", slog.Int("campaign_id", id), slog.Int("update_id", updateID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"update_id": updateID,
		"redirect":  fmt.Sprintf("/campaigns/%d", id),
	}))
}
