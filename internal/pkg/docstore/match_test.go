package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSelectOrdersNewestFirstWithIDTieBreak(t *testing.T) {
	a := newItem("tips", base)
	b := newItem("tips", base)
	c := newItem("stories", base.Add(time.Hour))
	d := newItem("tips", base.Add(-time.Hour))

	got, err := Select([]item{*d, *a, *c, *b}, Query{
		Sort: []SortKey{{Field: "createdAt", Desc: true}, {Field: "_id", Desc: true}},
	})
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, c.ID, got[0].ID)
	// b was created after a, so its ObjectID is larger.
	require.Equal(t, b.ID, got[1].ID)
	require.Equal(t, a.ID, got[2].ID)
	require.Equal(t, d.ID, got[3].ID)
}

func TestSelectFilterAndLimit(t *testing.T) {
	docs := []item{*newItem("tips", base), *newItem("stories", base), *newItem("tips", base)}

	got, err := Select(docs, Query{Filter: Filter{"category": "tips"}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "tips", got[0].Category)

	got, err = Select(docs, Query{Filter: Filter{"category": "missing"}})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCompareValuesMixedTypes(t *testing.T) {
	docs := []item{
		{ID: primitive.NewObjectID(), Votes: 3},
		{ID: primitive.NewObjectID(), Votes: 10},
		{ID: primitive.NewObjectID(), Votes: -2},
	}
	got, err := Select(docs, Query{Sort: []SortKey{{Field: "votes"}}})
	require.NoError(t, err)
	require.Equal(t, []int{-2, 3, 10}, []int{got[0].Votes, got[1].Votes, got[2].Votes})
}
