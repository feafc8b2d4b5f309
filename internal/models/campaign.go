package models

import (
	"io"
	"time"
)

// Статусы кампании.
const (
	CampaignActive = "active"
	CampaignEnded  = "ended"
)

// Category категория кампании.
type Category struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// Categories список допустимых категорий.
var Categories = []Category{
	{Slug: "homeless-support", Label: "Homeless Support"},
	{Slug: "food-pantry", Label: "Food Pantry"},
	{Slug: "senior-support", Label: "Senior Support"},
	{Slug: "children-programs", Label: "Children's Programs"},
	{Slug: "community-gardens", Label: "Community Gardens"},
}

// Campaign кампания по сбору средств.
type Campaign struct {
	ID              int             `json:"id"`
	UserUID         string          `json:"user_uid"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description,omitempty"`
	Goal            float64         `json:"goal"`
	Raised          float64         `json:"raised"`
	Location        string          `json:"location"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	EndDate         time.Time       `json:"end_date"`
	CreatedAt       time.Time       `json:"created_at"`
	PrimaryImage    string          `json:"primary_image,omitempty"`
	Images          []CampaignImage `json:"images,omitempty"`
}

// CampaignImage изображение кампании. Основное изображение показывается в списках.
type CampaignImage struct {
	ID         int    `json:"id"`
	CampaignID int    `json:"campaign_id"`
	ImageURL   string `json:"image_url"`
	IsPrimary  bool   `json:"is_primary"`
}

// DummyCampaign данные формы создания кампании до преобразования в Campaign.
// Цель и дата окончания приходят строками и разбираются в сервисе.
type DummyCampaign struct {
	Title           string `json:"title" validate:"required,min=5,max=100"`
	Description     string `json:"description" validate:"required,min=20,max=2000"`
	LongDescription string `json:"long_description" validate:"required,min=50,max=5000"`
	Goal            string `json:"goal" validate:"required"`
	Category        string `json:"category" validate:"required,oneof=homeless-support food-pantry senior-support children-programs community-gardens"`
	Location        string `json:"location" validate:"required,min=3"`
	EndDate         string `json:"end_date" validate:"required"`
}

// ImageUpload файл изображения, полученный из формы.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// CampaignUpdate новость кампании.
type CampaignUpdate struct {
	ID         int       `json:"id"`
	CampaignID int       `json:"campaign_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"date"`
}

// DummyCampaignUpdate данные для публикации новости.
type DummyCampaignUpdate struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=10,max=5000"`
}

// CampaignReminder сообщение владельцу о скором окончании кампании.
type CampaignReminder struct {
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	CampaignID int       `json:"campaign_id"`
	Title      string    `json:"title"`
	Goal       float64   `json:"goal"`
	Raised     float64   `json:"raised"`
	EndDate    time.Time `json:"end_date"`
}
