package campaignquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

func TestCompose_ClauseCount(t *testing.T) {
	tests := []struct {
		name   string
		filter models.CampaignFilter
		want   int
	}{
		{name: "empty filter", filter: models.CampaignFilter{}, want: 0},
		{name: "search only", filter: models.CampaignFilter{Search: "soup"}, want: 1},
		{name: "category only", filter: models.CampaignFilter{Category: "food-pantry"}, want: 1},
		{name: "location only", filter: models.CampaignFilter{Location: "Bahri"}, want: 1},
		{name: "search and category", filter: models.CampaignFilter{Search: "soup", Category: "food-pantry"}, want: 2},
		{
			name:   "all filters with sort",
			filter: models.CampaignFilter{Search: "soup", Category: "food-pantry", Location: "Bahri", Sort: SortEndingSoon},
			want:   3,
		},
		{name: "blank values are ignored", filter: models.CampaignFilter{Search: "  ", Category: ",", Location: " , "}, want: 0},
		{name: "sort alone adds no predicate", filter: models.CampaignFilter{Sort: SortMostFunded}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compose(tt.filter)
			assert.Len(t, q.Clauses, tt.want)
		})
	}
}

func TestCompose_Search(t *testing.T) {
	q := Compose(models.CampaignFilter{Search: "kitchen"})
	require.Len(t, q.Clauses, 1)

	assert.Equal(t, []Predicate{
		{Field: FieldTitle, Op: OpILike, Value: "kitchen"},
		{Field: FieldDescription, Op: OpILike, Value: "kitchen"},
		{Field: FieldLocation, Op: OpILike, Value: "kitchen"},
	}, q.Clauses[0].AnyOf)
}

func TestCompose_Category(t *testing.T) {
	q := Compose(models.CampaignFilter{Category: "food-pantry,senior-support"})
	require.Len(t, q.Clauses, 1)
	require.Len(t, q.Clauses[0].AnyOf, 1)

	p := q.Clauses[0].AnyOf[0]
	assert.Equal(t, FieldCategory, p.Field)
	assert.Equal(t, OpIn, p.Op)
	assert.Equal(t, []string{"food-pantry", "senior-support"}, p.Value)
}

func TestCompose_Location(t *testing.T) {
	q := Compose(models.CampaignFilter{Location: "Khartoum,Omdurman"})
	require.Len(t, q.Clauses, 1)

	assert.Equal(t, []Predicate{
		{Field: FieldLocation, Op: OpILike, Value: "Khartoum"},
		{Field: FieldLocation, Op: OpILike, Value: "Omdurman"},
	}, q.Clauses[0].AnyOf)
}

func TestCompose_Sort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want *Order
	}{
		{name: "ending soon", sort: "ending-soon", want: &Order{Field: FieldEndDate, Ascending: true}},
		{name: "most funded", sort: "most-funded", want: &Order{Field: FieldRaised, Ascending: false}},
		{name: "most popular has no ordering", sort: "most-popular", want: nil},
		{name: "unknown value", sort: "random", want: nil},
		{name: "absent", sort: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compose(models.CampaignFilter{Sort: tt.sort})
			assert.Equal(t, tt.want, q.Order)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" ,, "))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a , ,b"))
}

func TestQuery_Key(t *testing.T) {
	a := Compose(models.CampaignFilter{Search: "Soup", Category: "food-pantry", Sort: SortEndingSoon})
	b := Compose(models.CampaignFilter{Search: "soup", Category: "food-pantry", Sort: SortEndingSoon})
	c := Compose(models.CampaignFilter{Search: "soup", Category: "food-pantry", Sort: SortMostFunded})

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Empty(t, Compose(models.CampaignFilter{}).Key())
}
