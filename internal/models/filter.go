package models

// CampaignFilter параметры фильтрации и сортировки списка кампаний.
// Все поля необязательные, пустое значение означает отсутствие фильтра.
type CampaignFilter struct {
	Search   string // Строка поиска по названию, описанию и месту
	Category string // Категории через запятую
	Location string // Места через запятую
	Sort     string // ending-soon, most-funded, most-popular
}

// Page параметры пагинации.
type Page struct {
	Limit  int
	Offset int
}
