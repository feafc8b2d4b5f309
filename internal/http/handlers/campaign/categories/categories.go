// Package categories отдаёт список категорий кампаний.
package categories

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// Handler возвращает допустимые категории.
type Handler struct{}

// New создает Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Категории кампаний
// @Tags Campaigns
// @Produce  json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": models.Categories,
	}))
}
