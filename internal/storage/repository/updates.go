package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// CreateCampaignUpdate сохраняет новость кампании и возвращает её ID.
func (s *Storage) CreateCampaignUpdate(ctx context.Context, u models.CampaignUpdate) (int, error) {
	const op = "storage.CreateCampaignUpdate"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var newID int
	err := s.DB.QueryRowContext(ctx, `INSERT INTO campaign_updates (campaign_id, title, content)
			  VALUES ($1, $2, $3)
			  RETURNING id`, u.CampaignID, u.Title, u.Content).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCampaignUpdates возвращает новости кампании, новые сначала.
func (s *Storage) ListCampaignUpdates(ctx context.Context, campaignID int) ([]models.CampaignUpdate, error) {
	const op = "storage.ListCampaignUpdates"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, campaign_id, title, content, created_at
			  FROM campaign_updates
			  WHERE campaign_id = $1
			  ORDER BY created_at DESC, id DESC`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.CampaignUpdate{}
	for rows.Next() {
		var u models.CampaignUpdate
		if err = rows.Scan(&u.ID, &u.CampaignID, &u.Title, &u.Content, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
