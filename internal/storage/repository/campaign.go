package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/community-kitchen/internal/lib/campaignquery"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// CreateCampaign вставляет новую кампанию и возвращает её ID.
func (s *Storage) CreateCampaign(ctx context.Context, c models.Campaign) (int, error) {
	const op = "storage.CreateCampaign"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO campaigns (user_uid, title, description, long_description, goal,
			      location, category, status, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.UserUID, c.Title, c.Description, c.LongDescription, c.Goal,
		c.Location, c.Category, models.CampaignActive, c.EndDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AddCampaignImage сохраняет ссылку на изображение кампании.
func (s *Storage) AddCampaignImage(ctx context.Context, img models.CampaignImage) (int, error) {
	const op = "storage.AddCampaignImage"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO campaign_images (campaign_id, image_url, is_primary)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, img.CampaignID, img.ImageURL, img.IsPrimary).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCampaigns возвращает активные кампании, отобранные по описанию запроса, с пагинацией.
func (s *Storage) ListCampaigns(ctx context.Context, q campaignquery.Query, page models.Page) ([]models.Campaign, error) {
	const op = "storage.ListCampaigns"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query, args, err := buildListQuery(q, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := scanCampaigns(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCampaignsByUser возвращает все кампании пользователя, новые сначала.
func (s *Storage) ListCampaignsByUser(ctx context.Context, userUID string) ([]models.Campaign, error) {
	const op = "storage.ListCampaignsByUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := campaignListSelect + `
			  WHERE c.user_uid = $1
			  ORDER BY ` + defaultOrder
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := scanCampaigns(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanCampaigns(rows *sql.Rows) ([]models.Campaign, error) {
	result := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.UserUID, &c.Title, &c.Description, &c.Goal, &c.Raised,
			&c.Location, &c.Category, &c.Status, &c.EndDate, &c.CreatedAt, &c.PrimaryImage); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// GetCampaign возвращает кампанию вместе со всеми изображениями.
func (s *Storage) GetCampaign(ctx context.Context, id int) (*models.Campaign, error) {
	const op = "storage.GetCampaign"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, user_uid, title, description, long_description, goal, raised,
			      location, category, status, end_date, created_at
			  FROM campaigns
			  WHERE id = $1`
	var c models.Campaign
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.UserUID, &c.Title, &c.Description,
		&c.LongDescription, &c.Goal, &c.Raised, &c.Location, &c.Category, &c.Status, &c.EndDate, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCampaignNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, campaign_id, image_url, is_primary
			  FROM campaign_images
			  WHERE campaign_id = $1
			  ORDER BY is_primary DESC, id`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var img models.CampaignImage
		if err = rows.Scan(&img.ID, &img.CampaignID, &img.ImageURL, &img.IsPrimary); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if img.IsPrimary {
			c.PrimaryImage = img.ImageURL
		}
		c.Images = append(c.Images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// GetCampaignOwner возвращает UID владельца кампании.
func (s *Storage) GetCampaignOwner(ctx context.Context, id int) (string, error) {
	const op = "storage.GetCampaignOwner"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var owner string
	err := s.DB.QueryRowContext(ctx, `SELECT user_uid FROM campaigns WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ErrCampaignNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return owner, nil
}

// FindCampaignsEndingTomorrow находит активные кампании, заканчивающиеся завтра, вместе с контактами владельцев.
func (s *Storage) FindCampaignsEndingTomorrow(ctx context.Context) ([]models.CampaignReminder, error) {
	const op = "storage.FindCampaignsEndingTomorrow"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT u.email, u.username, c.id, c.title, c.goal, c.raised, c.end_date
			  FROM campaigns c
			  JOIN users u ON u.uid = c.user_uid
			  WHERE c.status = $1
			    AND c.end_date::DATE = CURRENT_DATE + 1
			  ORDER BY c.id`
	rows, err := s.DB.QueryContext(ctx, query, models.CampaignActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CampaignReminder
	for rows.Next() {
		var r models.CampaignReminder
		if err = rows.Scan(&r.Email, &r.Username, &r.CampaignID, &r.Title, &r.Goal, &r.Raised, &r.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkEndedCampaigns переводит кампании с прошедшей датой окончания в статус ended
// и возвращает количество изменённых строк.
func (s *Storage) MarkEndedCampaigns(ctx context.Context) (int, error) {
	const op = "storage.MarkEndedCampaigns"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	result, err := s.DB.ExecContext(ctx, `UPDATE campaigns
			  SET status = $1
			  WHERE status = $2 AND end_date < NOW()`, models.CampaignEnded, models.CampaignActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
