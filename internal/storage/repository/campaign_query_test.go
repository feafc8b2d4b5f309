package repository

import (
	"testing"

	"github.com/magabrotheeeer/community-kitchen/internal/lib/campaignquery"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	q := campaignquery.Compose(models.CampaignFilter{})

	sql, args, err := buildListQuery(q, models.Page{Limit: 12, Offset: 24})
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE c.status = $1")
	assert.Contains(t, sql, "ORDER BY c.created_at DESC, c.id DESC")
	assert.Contains(t, sql, "LIMIT $2 OFFSET $3")
	assert.NotContains(t, sql, " AND (")
	assert.Equal(t, []any{models.CampaignActive, 12, 24}, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	q := campaignquery.Compose(models.CampaignFilter{
		Search:   "soup",
		Category: "food-pantry, senior-support",
		Location: "Austin,Dallas",
		Sort:     campaignquery.SortEndingSoon,
	})

	sql, args, err := buildListQuery(q, models.Page{Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, sql, `AND (c.title ILIKE $2 ESCAPE '\' OR c.description ILIKE $3 ESCAPE '\' OR c.location ILIKE $4 ESCAPE '\')`)
	assert.Contains(t, sql, "AND (c.category = ANY($5))")
	assert.Contains(t, sql, `AND (c.location ILIKE $6 ESCAPE '\' OR c.location ILIKE $7 ESCAPE '\')`)
	assert.Contains(t, sql, "ORDER BY c.end_date ASC, c.id")
	assert.Contains(t, sql, "LIMIT $8 OFFSET $9")

	require.Len(t, args, 9)
	assert.Equal(t, "%soup%", args[1])
	assert.Equal(t, []string{"food-pantry", "senior-support"}, args[4])
	assert.Equal(t, "%Austin%", args[5])
	assert.Equal(t, "%Dallas%", args[6])
}

func TestBuildListQuery_MostFunded(t *testing.T) {
	q := campaignquery.Compose(models.CampaignFilter{Sort: campaignquery.SortMostFunded})

	sql, _, err := buildListQuery(q, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY c.raised DESC, c.id")
}

func TestBuildListQuery_EscapesLikeInput(t *testing.T) {
	q := campaignquery.Compose(models.CampaignFilter{Search: `100%_off\`})

	_, args, err := buildListQuery(q, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, `%100\%\_off\\%`, args[1])
}

func TestBuildListQuery_RejectsUnknownField(t *testing.T) {
	q := campaignquery.Query{Clauses: []campaignquery.Clause{{AnyOf: []campaignquery.Predicate{
		{Field: "password_hash", Op: campaignquery.OpILike, Value: "x"},
	}}}}

	_, _, err := buildListQuery(q, models.Page{Limit: 10})
	assert.Error(t, err)

	q = campaignquery.Query{Order: &campaignquery.Order{Field: "user_uid; DROP TABLE users"}}
	_, _, err = buildListQuery(q, models.Page{Limit: 10})
	assert.Error(t, err)
}

func TestBuildListQuery_WrongValueType(t *testing.T) {
	q := campaignquery.Query{Clauses: []campaignquery.Clause{{AnyOf: []campaignquery.Predicate{
		{Field: campaignquery.FieldCategory, Op: campaignquery.OpIn, Value: "food-pantry"},
	}}}}

	_, _, err := buildListQuery(q, models.Page{Limit: 10})
	assert.Error(t, err)
}
