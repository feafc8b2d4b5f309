// Package services содержит периодические задачи: напоминания владельцам кампаний,
// заканчивающихся завтра, и закрытие кампаний с прошедшей датой окончания.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/community-kitchen/internal/cache"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// CampaignRepository методы хранилища, нужные планировщику.
type CampaignRepository interface {
	FindCampaignsEndingTomorrow(ctx context.Context) ([]models.CampaignReminder, error)
	MarkEndedCampaigns(ctx context.Context) (int, error)
}

// Publisher ставит напоминания в очередь.
type Publisher interface {
	PublishReminder(message any) error
}

// Cache сбрасывает кешированные списки кампаний.
type Cache interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// SchedulerService периодически проверяет сроки кампаний.
type SchedulerService struct {
	repo      CampaignRepository
	publisher Publisher
	cache     Cache
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo CampaignRepository, publisher Publisher, cache Cache, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		log:       log,
	}
}

// Run выполняет проверки сразу и затем каждые interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SchedulerService) runOnce(ctx context.Context) {
	s.runRemindCampaignsEndingTomorrow(ctx)
	s.runCloseEndedCampaigns(ctx)
}

func (s *SchedulerService) runRemindCampaignsEndingTomorrow(ctx context.Context) {
	s.log.Info("looking for campaigns ending tomorrow")
	reminders, err := s.repo.FindCampaignsEndingTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find campaigns", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no campaigns ending tomorrow")
		return
	}
	s.log.Info("found campaigns ending tomorrow", "count", len(reminders))
	for _, r := range reminders {
		if err = s.publisher.PublishReminder(r); err != nil {
			s.log.Error("failed to publish reminder", slog.Int("campaign_id", r.CampaignID), sl.Err(err))
		}
	}
}

func (s *SchedulerService) runCloseEndedCampaigns(ctx context.Context) {
	n, err := s.repo.MarkEndedCampaigns(ctx)
	if err != nil {
		s.log.Error("failed to close ended campaigns", sl.Err(err))
		return
	}
	if n == 0 {
		return
	}
	s.log.Info("closed ended campaigns", "count", n)
	if err = s.cache.InvalidatePrefix(ctx, cache.CampaignListPrefix); err != nil {
		s.log.Warn("failed to invalidate campaign lists", sl.Err(err))
	}
}
