package catalog_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/feed"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/event"
)

func wrap(body string) string {
	return "/*O_o*/\ngoogle.visualization.Query.setResponse(" + body + ");"
}

func feedWith(rows ...[4]string) string {
	out := `{"table":{"rows":[{"c":[{"v":"id"},{"v":"name"},{"v":"category"},{"v":"price"},{"v":"description"},{"v":"image"}]}`
	for _, r := range rows {
		out += fmt.Sprintf(`,{"c":[{"v":%q},{"v":%q},{"v":%q},{"v":%q},{"v":""},{"v":""}]}`,
			r[0], r[1], r[2], r[3])
	}
	return wrap(out + `]}}`)
}

func newStore() *catalog.Store {
	return catalog.NewStore(feed.DefaultOptions(), nil, nil)
}

func TestLoadReturnsCategoriesFirstSeen(t *testing.T) {
	s := newStore()

	cats, err := s.Load(feedWith(
		[4]string{"1", "Hammer", "Tools", "10"},
		[4]string{"2", "Mug", "Kitchen", "3"},
		[4]string{"3", "Saw", "Tools", "15"},
		[4]string{"4", "Sticker", "", "1"},
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"Tools", "Kitchen"}, cats, "first-seen order, empties dropped")
	assert.Len(t, s.Products(), 4)
}

func TestLoadFailureRetainsPreviousCatalog(t *testing.T) {
	s := newStore()

	_, err := s.Load(feedWith([4]string{"1", "Hammer", "Tools", "10"}))
	require.NoError(t, err)

	_, err = s.Load("garbage")
	require.Error(t, err)

	assert.Len(t, s.Products(), 1, "previous catalog must survive a bad load")
	assert.Equal(t, []string{"Tools"}, s.Categories())
}

func TestLoadReplacesWholesale(t *testing.T) {
	s := newStore()

	_, err := s.Load(feedWith(
		[4]string{"1", "Hammer", "Tools", "10"},
		[4]string{"2", "Mug", "Kitchen", "3"},
	))
	require.NoError(t, err)

	_, err = s.Load(feedWith([4]string{"9", "Lamp", "Decor", "20"}))
	require.NoError(t, err)

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "9", products[0].ID)
	assert.Equal(t, []string{"Decor"}, s.Categories())
}

func TestSearch(t *testing.T) {
	s := newStore()
	_, err := s.Load(feedWith(
		[4]string{"1", "Claw Hammer", "Tools", "10"},
		[4]string{"2", "Coffee Mug", "Kitchen", "3"},
	))
	require.NoError(t, err)

	assert.Len(t, s.Search(""), 2, "empty term matches everything")
	assert.Len(t, s.Search("HAMMER"), 1, "match is case-insensitive")
	assert.Len(t, s.Search("kitch"), 1, "category text matches too")
	assert.Len(t, s.Search("no-such-thing"), 0)
}

func TestSearchDoesNotMutateCatalog(t *testing.T) {
	s := newStore()
	_, err := s.Load(feedWith(
		[4]string{"1", "Hammer", "Tools", "10"},
		[4]string{"2", "Mug", "Kitchen", "3"},
	))
	require.NoError(t, err)

	view := s.Search("Hammer")
	require.Len(t, view, 1)
	view[0].Name = "mutated"

	assert.Equal(t, "Hammer", s.Products()[0].Name)
}

func TestFilterByCategory(t *testing.T) {
	s := newStore()
	_, err := s.Load(feedWith(
		[4]string{"1", "Hammer", "Tools", "10"},
		[4]string{"2", "Mug", "Kitchen", "3"},
		[4]string{"3", "Saw", "Tools", "15"},
	))
	require.NoError(t, err)

	assert.Len(t, s.FilterByCategory(""), 3, "empty category means all")
	assert.Len(t, s.FilterByCategory("Tools"), 2)
	assert.Len(t, s.FilterByCategory("tools"), 0, "category match is exact")
}

func TestView(t *testing.T) {
	s := newStore()
	_, err := s.Load(feedWith(
		[4]string{"1", "Claw Hammer", "Tools", "10"},
		[4]string{"2", "Sledge Hammer", "Demolition", "25"},
		[4]string{"3", "Mug", "Kitchen", "3"},
	))
	require.NoError(t, err)

	hammers := s.View("hammer", "Tools")
	require.Len(t, hammers, 1)
	assert.Equal(t, "1", hammers[0].ID)
}

func TestFind(t *testing.T) {
	s := newStore()
	_, err := s.Load(feedWith([4]string{"1", "Hammer", "Tools", "10"}))
	require.NoError(t, err)

	p, ok := s.Find("1")
	assert.True(t, ok)
	assert.Equal(t, "Hammer", p.Name)

	_, ok = s.Find("nope")
	assert.False(t, ok)
}

func TestLoadFiresEvent(t *testing.T) {
	bus := event.NewBus()
	var got []interface{}
	bus.Listen(catalog.EventLoaded, func(payload interface{}) {
		got = append(got, payload)
	})

	s := catalog.NewStore(feed.DefaultOptions(), nil, bus)
	_, err := s.Load(feedWith(
		[4]string{"1", "Hammer", "Tools", "10"},
		[4]string{"2", "Mug", "Kitchen", "3"},
	))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0])
}

func TestProductHookRuns(t *testing.T) {
	hook := func(ps []models.Product) []models.Product {
		for i := range ps {
			ps[i].Image = "mirrored/" + ps[i].ID
		}
		return ps
	}

	s := catalog.NewStore(feed.DefaultOptions(), hook, nil)
	_, err := s.Load(feedWith([4]string{"1", "Hammer", "Tools", "10"}))
	require.NoError(t, err)

	assert.Equal(t, "mirrored/1", s.Products()[0].Image)
}
