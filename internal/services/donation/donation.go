// Package services содержит бизнес-логику пожертвований: расчёт комиссии,
// приём пожертвования, квитанции и аналитику для личного кабинета.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/community-kitchen/internal/cache"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/fee"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/period"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sanitize"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/metrics"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// DonationRepository определяет методы хранилища, нужные сервису.
type DonationRepository interface {
	GetCampaign(ctx context.Context, id int) (*models.Campaign, error)
	CreateDonation(ctx context.Context, d models.Donation) (int, error)
	ListUserDonations(ctx context.Context, userUID string) ([]models.UserDonation, error)
	GetDonationReceipt(ctx context.Context, userUID string, donationID int) (*models.DonationReceipt, error)
	DonationStats(ctx context.Context, ownerUID, unit string, from time.Time) ([]models.AnalyticsPoint, error)
}

// Publisher ставит письма с квитанциями в очередь.
type Publisher interface {
	PublishReceipt(message any) error
}

// Cache сбрасывает кешированные карточки и списки кампаний.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// DonationService реализует приём пожертвований.
type DonationService struct {
	repo      DonationRepository
	publisher Publisher
	cache     Cache
	log       *slog.Logger
	now       func() time.Time
}

// NewDonationService создает новый экземпляр DonationService.
func NewDonationService(repo DonationRepository, publisher Publisher, cache Cache, log *slog.Logger) *DonationService {
	return &DonationService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// Quote рассчитывает комиссию для выбранной суммы.
// amount — один из фиксированных вариантов, custom или число; custom — своя сумма.
func (s *DonationService) Quote(amount, custom string, coverFees bool) (fee.Breakdown, error) {
	const op = "services.DonationService.Quote"
	sel, err := fee.Resolve(amount, custom)
	if err != nil {
		return fee.Breakdown{}, fmt.Errorf("%s: %w", op, err)
	}
	value, err := sel.Amount()
	if err != nil {
		return fee.Breakdown{}, fmt.Errorf("%s: %w", op, err)
	}
	b, err := fee.Calculate(value, coverFees)
	if err != nil {
		return fee.Breakdown{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Donate принимает пожертвование. donorUID пустой для пожертвований без входа.
// Сбой публикации квитанции или сброса кеша не отменяет пожертвование.
func (s *DonationService) Donate(ctx context.Context, donorUID string, campaignID int, req models.DummyDonation) (*models.DonationResult, error) {
	const op = "services.DonationService.Donate"

	coverFees := true
	if req.CoverFees != nil {
		coverFees = *req.CoverFees
	}
	breakdown, err := s.Quote(req.Amount, req.CustomAmount, coverFees)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	campaign, err := s.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	donation := models.Donation{
		CampaignID: campaignID,
		DonorUID:   donorUID,
		FirstName:  sanitize.Plain(req.FirstName),
		LastName:   sanitize.Plain(req.LastName),
		Email:      req.Email,
		Message:    sanitize.Plain(req.Message),
		Anonymous:  req.Anonymous,
		CoverFees:  breakdown.CoverFees,
		Amount:     breakdown.Amount,
		Fee:        breakdown.Fee,
		Total:      breakdown.Total,
		Status:     models.DonationCompleted,
	}
	id, err := s.repo.CreateDonation(ctx, donation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ObserveDonation(campaign.Category, breakdown.Amount)

	log := s.log.With(slog.Int("donation_id", id), slog.Int("campaign_id", campaignID))
	if err = s.cache.Invalidate(ctx, cache.CampaignKey(campaignID)); err != nil {
		log.Warn("failed to invalidate campaign cache", sl.Err(err))
	}
	if err = s.cache.InvalidatePrefix(ctx, cache.CampaignListPrefix); err != nil {
		log.Warn("failed to invalidate campaign lists", sl.Err(err))
	}

	receipt := models.DonationReceipt{
		DonationID:    id,
		CampaignID:    campaignID,
		CampaignTitle: campaign.Title,
		FirstName:     donation.FirstName,
		Email:         donation.Email,
		Amount:        donation.Amount,
		Fee:           donation.Fee,
		Total:         donation.Total,
		CreatedAt:     s.now().UTC(),
	}
	if err = s.publisher.PublishReceipt(receipt); err != nil {
		log.Error("failed to publish receipt", sl.Err(err))
	}

	return &models.DonationResult{
		DonationID:   id,
		Amount:       breakdown.Amount,
		Fee:          breakdown.Fee,
		Total:        breakdown.Total,
		CoverFees:    breakdown.CoverFees,
		ThankYouPath: ThankYouPath(campaignID, id),
	}, nil
}

// ThankYouPath путь страницы благодарности после пожертвования.
func ThankYouPath(campaignID, donationID int) string {
	return fmt.Sprintf("/campaigns/%d/thank-you?donation=%d", campaignID, donationID)
}

// ReceiptPath путь квитанции в личном кабинете.
func ReceiptPath(donationID int) string {
	return fmt.Sprintf("/api/v1/dashboard/donations/%d/receipt", donationID)
}

// UserDonations возвращает пожертвования пользователя со ссылками на квитанции.
func (s *DonationService) UserDonations(ctx context.Context, userUID string) ([]models.UserDonation, error) {
	const op = "services.DonationService.UserDonations"
	list, err := s.repo.ListUserDonations(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range list {
		list[i].ReceiptURL = ReceiptPath(list[i].ID)
	}
	return list, nil
}

// Receipt возвращает квитанцию по пожертвованию пользователя.
func (s *DonationService) Receipt(ctx context.Context, userUID string, donationID int) (*models.DonationReceipt, error) {
	const op = "services.DonationService.Receipt"
	r, err := s.repo.GetDonationReceipt(ctx, userUID, donationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// Analytics возвращает суммы пожертвований и число жертвователей по интервалам
// для кампаний пользователя. Интервалы без пожертвований заполняются нулями.
func (s *DonationService) Analytics(ctx context.Context, ownerUID, timeframe string) ([]models.AnalyticsPoint, error) {
	const op = "services.DonationService.Analytics"
	tf := period.Parse(timeframe)
	buckets := period.Buckets(tf, s.now())
	unit := "month"
	if tf == period.Weekly {
		unit = "week"
	}

	stats, err := s.repo.DonationStats(ctx, ownerUID, unit, buckets[0].Start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	byStart := make(map[int64]models.AnalyticsPoint, len(stats))
	for _, p := range stats {
		byStart[p.Start.Unix()] = p
	}

	result := make([]models.AnalyticsPoint, 0, len(buckets))
	for _, b := range buckets {
		p := byStart[b.Start.Unix()]
		result = append(result, models.AnalyticsPoint{
			Label:     b.Label,
			Start:     b.Start,
			Donations: p.Donations,
			Donors:    p.Donors,
		})
	}
	return result, nil
}
