// Package campaignquery переводит параметры фильтрации списка кампаний
// в описание запроса: набор условий (AND между группами, OR внутри группы)
// и не более одного условия сортировки.
package campaignquery

import (
	"strings"

	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// Op тип сравнения в предикате.
type Op string

const (
	// OpILike — регистронезависимое вхождение подстроки.
	OpILike Op = "ilike"
	// OpIn — значение поля входит в список.
	OpIn Op = "in"
)

// Поля кампании, с которыми работает составитель запроса.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldCategory    = "category"
	FieldEndDate     = "end_date"
	FieldRaised      = "raised"
)

// Значения параметра сортировки.
const (
	SortEndingSoon  = "ending-soon"
	SortMostFunded  = "most-funded"
	SortMostPopular = "most-popular"
)

// Predicate одно сравнение поля со значением.
// Для OpILike Value — строка, для OpIn — []string.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Clause группа предикатов, объединённых через OR.
type Clause struct {
	AnyOf []Predicate
}

// Order условие сортировки.
type Order struct {
	Field     string
	Ascending bool
}

// Query описание запроса к списку кампаний.
// Clauses объединяются через AND. Order == nil означает сортировку по умолчанию.
type Query struct {
	Clauses []Clause
	Order   *Order
}

// Compose строит описание запроса по параметрам фильтра.
// Пустые параметры в запрос не попадают.
func Compose(f models.CampaignFilter) Query {
	var q Query

	if search := strings.TrimSpace(f.Search); search != "" {
		q.Clauses = append(q.Clauses, Clause{AnyOf: []Predicate{
			{Field: FieldTitle, Op: OpILike, Value: search},
			{Field: FieldDescription, Op: OpILike, Value: search},
			{Field: FieldLocation, Op: OpILike, Value: search},
		}})
	}

	if categories := SplitList(f.Category); len(categories) > 0 {
		q.Clauses = append(q.Clauses, Clause{AnyOf: []Predicate{
			{Field: FieldCategory, Op: OpIn, Value: categories},
		}})
	}

	if locations := SplitList(f.Location); len(locations) > 0 {
		group := Clause{AnyOf: make([]Predicate, 0, len(locations))}
		for _, loc := range locations {
			group.AnyOf = append(group.AnyOf, Predicate{Field: FieldLocation, Op: OpILike, Value: loc})
		}
		q.Clauses = append(q.Clauses, group)
	}

	q.Order = orderFor(f.Sort)
	return q
}

// orderFor возвращает сортировку для известных значений.
// most-popular пока не имеет формулы ранжирования и обрабатывается как сортировка по умолчанию.
func orderFor(sort string) *Order {
	switch strings.TrimSpace(sort) {
	case SortEndingSoon:
		return &Order{Field: FieldEndDate, Ascending: true}
	case SortMostFunded:
		return &Order{Field: FieldRaised, Ascending: false}
	default:
		return nil
	}
}

// SplitList разбивает строку по запятым, обрезает пробелы и отбрасывает пустые элементы.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// Key возвращает детерминированное строковое представление запроса,
// пригодное как часть ключа кеша.
func (q Query) Key() string {
	var b strings.Builder
	for i, c := range q.Clauses {
		if i > 0 {
			b.WriteString("&")
		}
		for j, p := range c.AnyOf {
			if j > 0 {
				b.WriteString("|")
			}
			b.WriteString(p.Field)
			b.WriteString(":")
			b.WriteString(string(p.Op))
			b.WriteString(":")
			switch v := p.Value.(type) {
			case string:
				b.WriteString(strings.ToLower(v))
			case []string:
				b.WriteString(strings.Join(v, ","))
			}
		}
	}
	if q.Order != nil {
		b.WriteString("#")
		b.WriteString(q.Order.Field)
		if q.Order.Ascending {
			b.WriteString(":asc")
		} else {
			b.WriteString(":desc")
		}
	}
	return b.String()
}
