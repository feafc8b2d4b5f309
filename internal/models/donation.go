package models

import "time"

// DonationCompleted статус пожертвования, принятого к учёту.
const DonationCompleted = "completed"

// Donation пожертвование в пользу кампании.
// DonorUID пустой, если пожертвование сделано без входа в систему.
type Donation struct {
	ID         int       `json:"id"`
	CampaignID int       `json:"campaign_id"`
	DonorUID   string    `json:"donor_uid,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Message    string    `json:"message,omitempty"`
	Anonymous  bool      `json:"anonymous"`
	CoverFees  bool      `json:"cover_fees"`
	Amount     float64   `json:"amount"`
	Fee        float64   `json:"fee"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// DummyDonation данные формы пожертвования.
// Amount — один из фиксированных вариантов, "custom" или число; CoverFees по умолчанию true.
type DummyDonation struct {
	Amount       string `json:"amount" validate:"required"`
	CustomAmount string `json:"custom_amount,omitempty"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Message      string `json:"message,omitempty" validate:"max=1000"`
	Anonymous    bool   `json:"anonymous"`
	CoverFees    *bool  `json:"cover_fees,omitempty"`
}

// Donor запись в списке жертвователей кампании.
type Donor struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Amount  float64   `json:"amount"`
	Date    time.Time `json:"date"`
	Message string    `json:"message,omitempty"`
}

// UserDonation пожертвование пользователя для личного кабинета.
type UserDonation struct {
	ID            int       `json:"id"`
	CampaignID    int       `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	ReceiptURL    string    `json:"receipt_url"`
}

// AnalyticsPoint агрегат пожертвований за период.
type AnalyticsPoint struct {
	Label     string    `json:"label"`
	Start     time.Time `json:"start"`
	Donations float64   `json:"donations"`
	Donors    int       `json:"donors"`
}

// DonationReceipt сообщение для отправки квитанции на почту.
type DonationReceipt struct {
	DonationID    int       `json:"donation_id"`
	CampaignID    int       `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	FirstName     string    `json:"first_name"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	Fee           float64   `json:"fee"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// DonationResult ответ на принятое пожертвование.
type DonationResult struct {
	DonationID   int     `json:"donation_id"`
	Amount       float64 `json:"amount"`
	Fee          float64 `json:"fee"`
	Total        float64 `json:"total"`
	CoverFees    bool    `json:"cover_fees"`
	ThankYouPath string  `json:"thank_you_path"`
}
