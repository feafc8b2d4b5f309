// Package services содержит бизнес-логику кампаний: поиск с кешированием,
// создание с загрузкой изображений, новости и списки жертвователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/community-kitchen/internal/cache"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/campaignquery"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sanitize"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/metrics"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/magabrotheeeer/community-kitchen/internal/objectstore"
)

// Ограничения сервиса.
const (
	MaxImages       = 5
	MaxImageSize    = 5 << 20
	DefaultPageSize = 12
	MaxPageSize     = 50
	DonorsLimit     = 20
	// MaxGoal — наибольшая цель, помещающаяся в NUMERIC(12,2).
	MaxGoal = 9_999_999_999.99
)

// Ошибки сервиса.
var (
	ErrForbidden    = errors.New("only the campaign owner can do this")
	ErrInvalidInput = errors.New("invalid input")
)

// CampaignRepository определяет методы хранилища, нужные сервису.
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, c models.Campaign) (int, error)
	AddCampaignImage(ctx context.Context, img models.CampaignImage) (int, error)
	ListCampaigns(ctx context.Context, q campaignquery.Query, page models.Page) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id int) (*models.Campaign, error)
	GetCampaignOwner(ctx context.Context, id int) (string, error)
	ListCampaignsByUser(ctx context.Context, userUID string) ([]models.Campaign, error)
	ListDonors(ctx context.Context, campaignID, limit int) ([]models.Donor, error)
	CreateCampaignUpdate(ctx context.Context, u models.CampaignUpdate) (int, error)
	ListCampaignUpdates(ctx context.Context, campaignID int) ([]models.CampaignUpdate, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// ImageStore сохраняет файлы изображений и возвращает публичную ссылку.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

// CampaignService реализует бизнес-логику работы с кампаниями.
type CampaignService struct {
	repo   CampaignRepository
	cache  Cache
	images ImageStore
	log    *slog.Logger
	now    func() time.Time
}

// NewCampaignService создает новый экземпляр CampaignService.
func NewCampaignService(repo CampaignRepository, cache Cache, images ImageStore, log *slog.Logger) *CampaignService {
	return &CampaignService{
		repo:   repo,
		cache:  cache,
		images: images,
		log:    log,
		now:    time.Now,
	}
}

// NormalizePage приводит пагинацию к допустимым границам.
func NormalizePage(p models.Page) models.Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// List возвращает активные кампании по фильтру. Страницы кешируются на минуту.
func (s *CampaignService) List(ctx context.Context, filter models.CampaignFilter, page models.Page) ([]models.Campaign, error) {
	const op = "services.CampaignService.List"
	page = NormalizePage(page)
	q := campaignquery.Compose(filter)
	key := cache.CampaignListKey(q.Key(), page.Limit, page.Offset)

	var cached []models.Campaign
	found, err := s.cache.Get(ctx, key, &cached)
	metrics.ObserveCache(found, err)
	if err != nil {
		s.log.Warn("failed to read campaign list from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	list, err := s.repo.ListCampaigns(ctx, q, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, key, list, cache.CampaignListTTL); err != nil {
		s.log.Warn("failed to cache campaign list", slog.String("key", key), sl.Err(err))
	}
	return list, nil
}

// Get возвращает кампанию с изображениями. Карточка кешируется на час.
func (s *CampaignService) Get(ctx context.Context, id int) (*models.Campaign, error) {
	const op = "services.CampaignService.Get"
	key := cache.CampaignKey(id)

	var cached models.Campaign
	found, err := s.cache.Get(ctx, key, &cached)
	metrics.ObserveCache(found, err)
	if err != nil {
		s.log.Warn("failed to read campaign from cache", slog.Int("id", id), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, key, c, cache.CampaignTTL); err != nil {
		s.log.Warn("failed to cache campaign", slog.Int("id", id), sl.Err(err))
	}
	return c, nil
}

// Create проверяет и сохраняет кампанию, затем загружает изображения.
// Изображение, которое не удалось сохранить, пропускается; основным становится первое сохранённое.
func (s *CampaignService) Create(ctx context.Context, ownerUID string, req models.DummyCampaign, images []models.ImageUpload) (int, error) {
	const op = "services.CampaignService.Create"

	goal, err := parseGoal(req.Goal)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	endDate, err := ParseEndDate(req.EndDate, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(images) > MaxImages {
		return 0, fmt.Errorf("%s: %w: at most %d images allowed", op, ErrInvalidInput, MaxImages)
	}

	campaign := models.Campaign{
		UserUID:         ownerUID,
		Title:           sanitize.Plain(req.Title),
		Description:     sanitize.Plain(req.Description),
		LongDescription: sanitize.Rich(req.LongDescription),
		Goal:            goal,
		Location:        sanitize.Plain(req.Location),
		Category:        req.Category,
		EndDate:         endDate,
	}
	id, err := s.repo.CreateCampaign(ctx, campaign)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	metrics.CampaignsCreated.WithLabelValues(campaign.Category).Inc()

	s.storeImages(ctx, id, images)

	if err = s.cache.InvalidatePrefix(ctx, cache.CampaignListPrefix); err != nil {
		s.log.Warn("failed to invalidate campaign lists", sl.Err(err))
	}
	return id, nil
}

func (s *CampaignService) storeImages(ctx context.Context, campaignID int, images []models.ImageUpload) {
	primary := true
	for _, img := range images {
		log := s.log.With(slog.Int("campaign_id", campaignID), slog.String("file", img.FileName))
		if !strings.HasPrefix(img.ContentType, "image/") {
			log.Warn("skipping non-image file", slog.String("content_type", img.ContentType))
			metrics.ImageUploadFailures.Inc()
			continue
		}
		if img.Size > MaxImageSize {
			log.Warn("skipping oversized image", slog.Int64("size", img.Size))
			metrics.ImageUploadFailures.Inc()
			continue
		}
		url, err := s.images.Upload(ctx, objectstore.ImageKey(campaignID, img.FileName), img.Body, img.ContentType)
		if err != nil {
			log.Error("failed to upload image", sl.Err(err))
			metrics.ImageUploadFailures.Inc()
			continue
		}
		if _, err = s.repo.AddCampaignImage(ctx, models.CampaignImage{
			CampaignID: campaignID,
			ImageURL:   url,
			IsPrimary:  primary,
		}); err != nil {
			log.Error("failed to save image reference", sl.Err(err))
			metrics.ImageUploadFailures.Inc()
			continue
		}
		primary = false
	}
}

// AddUpdate публикует новость кампании. Доступно только владельцу.
func (s *CampaignService) AddUpdate(ctx context.Context, userUID string, campaignID int, req models.DummyCampaignUpdate) (int, error) {
	const op = "services.CampaignService.AddUpdate"
	owner, err := s.repo.GetCampaignOwner(ctx, campaignID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if owner != userUID {
		return 0, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	id, err := s.repo.CreateCampaignUpdate(ctx, models.CampaignUpdate{
		CampaignID: campaignID,
		Title:      sanitize.Plain(req.Title),
		Content:    sanitize.Plain(req.Content),
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Updates возвращает новости кампании, новые сначала.
func (s *CampaignService) Updates(ctx context.Context, campaignID int) ([]models.CampaignUpdate, error) {
	const op = "services.CampaignService.Updates"
	updates, err := s.repo.ListCampaignUpdates(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updates, nil
}

// Donors возвращает последних жертвователей кампании.
func (s *CampaignService) Donors(ctx context.Context, campaignID int) ([]models.Donor, error) {
	const op = "services.CampaignService.Donors"
	donors, err := s.repo.ListDonors(ctx, campaignID, DonorsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return donors, nil
}

// UserCampaigns возвращает кампании пользователя для личного кабинета.
func (s *CampaignService) UserCampaigns(ctx context.Context, userUID string) ([]models.Campaign, error) {
	const op = "services.CampaignService.UserCampaigns"
	list, err := s.repo.ListCampaignsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func parseGoal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v <= 0 || v > MaxGoal {
		return 0, fmt.Errorf("%w: goal must be a positive number up to %.2f", ErrInvalidInput, MaxGoal)
	}
	v = math.Round(v*100) / 100
	if v < 0.01 {
		return 0, fmt.Errorf("%w: goal must be at least 0.01", ErrInvalidInput)
	}
	return v, nil
}

// ParseEndDate разбирает дату окончания в формате RFC3339 или 2006-01-02.
// Дата должна быть позже now.
func ParseEndDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: end date must be RFC3339 or YYYY-MM-DD", ErrInvalidInput)
		}
		t = t.Add(24*time.Hour - time.Second)
	}
	if !t.After(now) {
		return time.Time{}, fmt.Errorf("%w: end date must be in the future", ErrInvalidInput)
	}
	return t.UTC(), nil
}
