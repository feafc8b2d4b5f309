// Package quote реализует HTTP-обработчик расчёта комиссии для суммы пожертвования.
package quote

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/fee"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
)

// Service описывает расчёт комиссии.
type Service interface {
	Quote(amount, custom string, coverFees bool) (fee.Breakdown, error)
}

// Handler обрабатывает запросы расчёта комиссии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Расчёт комиссии
// @Description Комиссия 2.9% + 0.30. При cover_fees=true (по умолчанию) итог включает комиссию.
// @Tags Donations
// @Produce  json
// @Param amount query string false "25, 50, 100, 250, 500, custom или число"
// @Param custom_amount query string false "Своя сумма при amount=custom"
// @Param cover_fees query bool false "Покрыть комиссию"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /donations/quote [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.quote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	coverFees := true
	if v := q.Get("cover_fees"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			log.Info("invalid cover_fees", slog.String("value", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cover_fees must be true or false"))
			return
		}
		coverFees = parsed
	}

	breakdown, err := h.service.Quote(q.Get("amount"), q.Get("custom_amount"), coverFees)
	switch {
	case errors.Is(err, fee.ErrInvalidAmount), errors.Is(err, fee.ErrUnknownPreset):
		log.Info("invalid amount", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(fee.ErrInvalidAmount.Error()))
		return
	case err != nil:
		log.Error("failed to quote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(breakdown))
}
