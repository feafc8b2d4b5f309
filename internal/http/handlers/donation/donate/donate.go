// Package donate реализует HTTP-обработчик приёма пожертвования.
//
// Вход в систему необязателен: при наличии токена пожертвование
// привязывается к пользователю и появляется в его личном кабинете.
package donate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/fee"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/magabrotheeeer/community-kitchen/internal/storage/repository"
)

// Service описывает приём пожертвования.
type Service interface {
	Donate(ctx context.Context, donorUID string, campaignID int, req models.DummyDonation) (*models.DonationResult, error)
}

// Handler обрабатывает запросы пожертвований.
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
// @Summary Пожертвовать кампании
// @Tags Donations
// @Accept  json
// @Produce  json
// @Param id path int true "ID кампании"
// @Param request body models.DummyDonation true "Пожертвование"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Кампания не найдена"
// @Failure 409 {object} response.ErrorResponse "Кампания завершена"
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns/{id}/donations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.donate"

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

	var req models.DummyDonation
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

	donorUID, _ := middlewarectx.UserUIDFrom(r.Context())
	res, err := h.service.Donate(r.Context(), donorUID, id, req)
	switch {
	case errors.Is(err, fee.ErrInvalidAmount), errors.Is(err, fee.ErrUnknownPreset):
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(fee.ErrInvalidAmount.Error()))
		return
	case errors.Is(err, repository.ErrCampaignNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("campaign not found"))
		return
	case errors.Is(err, repository.ErrCampaignClosed):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("campaign is no longer accepting donations"))
		return
	case err != nil:
		log.Error("failed to donate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to process donation"))
		return
	}

	log.Info("donation accepted", slog.Int("campaign_id", id), slog.Int("donation_id", res.DonationID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(res))
}
