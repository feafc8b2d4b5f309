// Package create реализует HTTP-обработчик создания кампании.
//
// Запрос приходит в формате multipart/form-data: текстовые поля формы
// и до пяти файлов изображений в частях с именем images.
package create

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/community-kitchen/internal/http/response"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	services "github.com/magabrotheeeer/community-kitchen/internal/services/campaign"
)

const (
	imagesField = "images"
	maxMemory   = 8 << 20
	maxBody     = services.MaxImages*services.MaxImageSize + 1<<20
)

// Service описывает создание кампании.
type Service interface {
	Create(ctx context.Context, ownerUID string, req models.DummyCampaign, images []models.ImageUpload) (int, error)
}

// Handler обрабатывает запросы на создание кампании.
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
// @Summary Создать кампанию
// @Description Изображения, которые не удалось сохранить, пропускаются. Первое сохранённое становится основным.
// @Tags Campaigns
// @Security BearerAuth
// @Accept  multipart/form-data
// @Produce  json
// @Param title formData string true "Название, 5..100"
// @Param description formData string true "Краткое описание, 20..2000"
// @Param long_description formData string true "Полное описание, 50..5000"
// @Param goal formData number true "Цель сбора"
// @Param category formData string true "Категория"
// @Param location formData string true "Место"
// @Param end_date formData string true "RFC3339 или YYYY-MM-DD"
// @Param images formData file false "Изображения, до 5 файлов по 5 МБ"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.campaign.create"

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

	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("failed to remove multipart temp files", sl.Err(err))
		}
	}()

	req := models.DummyCampaign{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		LongDescription: r.FormValue("long_description"),
		Goal:            r.FormValue("goal"),
		Category:        r.FormValue("category"),
		Location:        r.FormValue("location"),
		EndDate:         r.FormValue("end_date"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	images, closeAll, err := openImages(r.MultipartForm.File[imagesField])
	defer closeAll()
	if err != nil {
		log.Error("failed to open uploaded images", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read uploaded images"))
		return
	}

	id, err := h.service.Create(r.Context(), uid, req, images)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			log.Info("campaign rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(invalidInputMessage(err)))
			return
		}
		log.Error("failed to create campaign", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create campaign"))
		return
	}

	log.Info("campaign created", slog.Int("id", id), slog.Int("images", len(images)))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"campaign_id": id,
		"redirect":    fmt.Sprintf("/campaigns/%d", id),
	}))
}

func openImages(headers []*multipart.FileHeader) ([]models.ImageUpload, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	images := make([]models.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		files = append(files, f)
		images = append(images, models.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return images, closeAll, nil
}

// invalidInputMessage отрезает от ошибки префиксы операций.
func invalidInputMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, services.ErrInvalidInput.Error()); i >= 0 {
		return msg[i:]
	}
	return services.ErrInvalidInput.Error()
}
