package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// CreateDonation в одной транзакции сохраняет пожертвование и увеличивает собранную сумму кампании.
// В raised попадает сумма пожертвования без комиссии.
func (s *Storage) CreateDonation(ctx context.Context, d models.Donation) (int, error) {
	const op = "storage.CreateDonation"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM campaigns WHERE id = $1 FOR UPDATE`, d.CampaignID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", op, ErrCampaignNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if status != models.CampaignActive {
		return 0, fmt.Errorf("%s: %w", op, ErrCampaignClosed)
	}

	var donor sql.NullString
	if d.DonorUID != "" {
		donor = sql.NullString{String: d.DonorUID, Valid: true}
	}

	var newID int
	err = tx.QueryRowContext(ctx, `INSERT INTO donations (campaign_id, donor_uid, first_name, last_name,
			      email, message, anonymous, cover_fees, amount, fee, total, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`,
		d.CampaignID, donor, d.FirstName, d.LastName, d.Email, d.Message, d.Anonymous,
		d.CoverFees, d.Amount, d.Fee, d.Total, models.DonationCompleted).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE campaigns SET raised = raised + $1 WHERE id = $2`,
		d.Amount, d.CampaignID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListDonors возвращает последние завершённые пожертвования кампании.
// Имя анонимного жертвователя заменяется на Anonymous.
func (s *Storage) ListDonors(ctx context.Context, campaignID, limit int) ([]models.Donor, error) {
	const op = "storage.ListDonors"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id,
			      CASE WHEN anonymous THEN 'Anonymous' ELSE first_name || ' ' || last_name END,
			      amount, created_at, message
			  FROM donations
			  WHERE campaign_id = $1 AND status = $2
			  ORDER BY created_at DESC, id DESC
			  LIMIT $3`
	rows, err := s.DB.QueryContext(ctx, query, campaignID, models.DonationCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Donor{}
	for rows.Next() {
		var d models.Donor
		if err = rows.Scan(&d.ID, &d.Name, &d.Amount, &d.Date, &d.Message); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUserDonations возвращает пожертвования пользователя с названиями кампаний.
func (s *Storage) ListUserDonations(ctx context.Context, userUID string) ([]models.UserDonation, error) {
	const op = "storage.ListUserDonations"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT d.id, d.campaign_id, c.title, d.amount, d.created_at, d.status
			  FROM donations d
			  JOIN campaigns c ON c.id = d.campaign_id
			  WHERE d.donor_uid = $1
			  ORDER BY d.created_at DESC, d.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.UserDonation{}
	for rows.Next() {
		var d models.UserDonation
		if err = rows.Scan(&d.ID, &d.CampaignID, &d.CampaignTitle, &d.Amount, &d.Date, &d.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DonationStats суммирует пожертвования в кампании владельца начиная с from,
// группируя по date_trunc(unit). unit — month или week. Пустые интервалы не возвращаются.
func (s *Storage) DonationStats(ctx context.Context, ownerUID, unit string, from time.Time) ([]models.AnalyticsPoint, error) {
	const op = "storage.DonationStats"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if unit != "month" && unit != "week" {
		return nil, fmt.Errorf("%s: unsupported unit %q", op, unit)
	}

	query := `SELECT date_trunc($2, d.created_at AT TIME ZONE 'UTC') AS bucket,
			      SUM(d.amount),
			      COUNT(DISTINCT COALESCE(d.donor_uid::TEXT, lower(d.email)))
			  FROM donations d
			  JOIN campaigns c ON c.id = d.campaign_id
			  WHERE c.user_uid = $1 AND d.status = $3 AND d.created_at >= $4
			  GROUP BY bucket
			  ORDER BY bucket`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID, unit, models.DonationCompleted, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.AnalyticsPoint
	for rows.Next() {
		var p models.AnalyticsPoint
		if err = rows.Scan(&p.Start, &p.Donations, &p.Donors); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Start = p.Start.UTC()
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetDonationReceipt возвращает данные квитанции по пожертвованию пользователя.
// Чужие пожертвования не находятся.
func (s *Storage) GetDonationReceipt(ctx context.Context, userUID string, donationID int) (*models.DonationReceipt, error) {
	const op = "storage.GetDonationReceipt"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT d.id, d.campaign_id, c.title, d.first_name, d.email,
			      d.amount, d.fee, d.total, d.created_at
			  FROM donations d
			  JOIN campaigns c ON c.id = d.campaign_id
			  WHERE d.id = $1 AND d.donor_uid = $2`
	var r models.DonationReceipt
	err := s.DB.QueryRowContext(ctx, query, donationID, userUID).Scan(&r.DonationID, &r.CampaignID,
		&r.CampaignTitle, &r.FirstName, &r.Email, &r.Amount, &r.Fee, &r.Total, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrDonationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &r, nil
}
