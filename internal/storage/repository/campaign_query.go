package repository

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/community-kitchen/internal/lib/campaignquery"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// columns соответствие полей запроса колонкам таблицы campaigns.
// Поля вне списка в SQL не попадают.
var columns = map[string]string{
	campaignquery.FieldTitle:       "c.title",
	campaignquery.FieldDescription: "c.description",
	campaignquery.FieldLocation:    "c.location",
	campaignquery.FieldCategory:    "c.category",
	campaignquery.FieldEndDate:     "c.end_date",
	campaignquery.FieldRaised:      "c.raised",
}

const campaignListSelect = `SELECT c.id, c.user_uid, c.title, c.description, c.goal, c.raised,
			      c.location, c.category, c.status, c.end_date, c.created_at,
			      COALESCE(ci.image_url, '')
			  FROM campaigns c
			  LEFT JOIN campaign_images ci ON ci.campaign_id = c.id AND ci.is_primary`

const defaultOrder = "c.created_at DESC, c.id DESC"

// buildListQuery переводит описание запроса в SQL с позиционными параметрами.
// В выборку попадают только активные кампании.
func buildListQuery(q campaignquery.Query, page models.Page) (string, []any, error) {
	var b strings.Builder
	args := []any{models.CampaignActive}

	b.WriteString(campaignListSelect)
	b.WriteString("\n\t\t\t  WHERE c.status = $1")

	for _, clause := range q.Clauses {
		if len(clause.AnyOf) == 0 {
			continue
		}
		parts := make([]string, 0, len(clause.AnyOf))
		for _, p := range clause.AnyOf {
			col, ok := columns[p.Field]
			if !ok {
				return "", nil, fmt.Errorf("unknown field %q", p.Field)
			}
			switch p.Op {
			case campaignquery.OpILike:
				v, ok := p.Value.(string)
				if !ok {
					return "", nil, fmt.Errorf("field %q: ilike expects string", p.Field)
				}
				args = append(args, "%"+escapeLike(v)+"%")
				parts = append(parts, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, col, len(args)))
			case campaignquery.OpIn:
				v, ok := p.Value.([]string)
				if !ok {
					return "", nil, fmt.Errorf("field %q: in expects list", p.Field)
				}
				args = append(args, v)
				parts = append(parts, fmt.Sprintf("%s = ANY($%d)", col, len(args)))
			default:
				return "", nil, fmt.Errorf("field %q: unknown op %q", p.Field, p.Op)
			}
		}
		b.WriteString(" AND (")
		b.WriteString(strings.Join(parts, " OR "))
		b.WriteString(")")
	}

	b.WriteString("\n\t\t\t  ORDER BY ")
	if q.Order != nil {
		col, ok := columns[q.Order.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown order field %q", q.Order.Field)
		}
		dir := "DESC"
		if q.Order.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&b, "%s %s, c.id", col, dir)
	} else {
		b.WriteString(defaultOrder)
	}

	args = append(args, page.Limit, page.Offset)
	fmt.Fprintf(&b, "\n\t\t\t  LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
