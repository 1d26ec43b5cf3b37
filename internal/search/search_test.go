package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	name, description, category string
}

func (p product) SearchFields() (string, string, string) {
	return p.name, p.description, p.category
}

var fixtures = []product{
	{name: "Smartphone", description: "6.1 inch OLED", category: "Electronics"},
	{name: "Laptop", description: "Thin and light", category: "Electronics"},
	{name: "Desk Lamp", description: "Warm LED light", category: "Home"},
	{name: "Headset", description: "Noise cancelling, works with any PHONE", category: "Audio"},
}

func TestMatchPhoneScenario(t *testing.T) {
	items := []product{fixtures[0], fixtures[1]}

	got := Match("phone", items)

	require.Len(t, got, 1)
	assert.Equal(t, "Smartphone", got[0].name)
}

func TestMatchTrimsSurroundingWhitespace(t *testing.T) {
	items := []product{fixtures[0], fixtures[1]}

	for _, q := range []string{"phone ", " phone", "\tPHONE\n"} {
		got := Match(q, items)
		require.Len(t, got, 1, "query %q", q)
		assert.Equal(t, "Smartphone", got[0].name)
	}

	assert.Empty(t, Match("smart phone", items), "inner whitespace is part of the needle")
}

func TestMatchIsSubsetAndContainsQuery(t *testing.T) {
	queries := []string{"light", "ELECTRO", "  lamp ", "o", "zzz", "home"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got := Match(q, fixtures)
			needle := strings.ToLower(strings.TrimSpace(q))

			last := -1
			for _, item := range got {
				index := indexOf(fixtures, item)
				require.GreaterOrEqual(t, index, 0, "result must come from the input list")
				assert.Greater(t, index, last, "original order must be preserved")
				last = index

				hit := strings.Contains(strings.ToLower(item.name), needle) ||
					strings.Contains(strings.ToLower(item.description), needle) ||
					strings.Contains(strings.ToLower(item.category), needle)
				assert.True(t, hit, "%q does not contain %q", item.name, needle)
			}
		})
	}
}

func TestMatchSearchesAllThreeFields(t *testing.T) {
	assert.Len(t, Match("phone", fixtures), 2)
	assert.Len(t, Match("audio", fixtures), 1)
	assert.Len(t, Match("warm", fixtures), 1)
}

func TestMatchIsDeterministic(t *testing.T) {
	assert.Equal(t, Match("l", fixtures), Match("l", fixtures))
}

func TestRunEmptyQueryClears(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		cleared, results := 0, 0
		Run(q, fixtures, func([]product) { results++ }, func() { cleared++ })
		assert.Equal(t, 1, cleared)
		assert.Zero(t, results)
	}
}

func TestRunNoMatchesIsNotCleared(t *testing.T) {
	var got []product
	called, cleared := false, false

	Run("nothing-like-this", fixtures, func(items []product) {
		called = true
		got = items
	}, func() { cleared = true })

	assert.True(t, called)
	assert.False(t, cleared)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBoxClearResetsVisibleQuery(t *testing.T) {
	var last []product
	cleared := 0
	box := NewBox(fixtures, func(items []product) { last = items }, func() { cleared++ })

	box.Type("lamp")
	assert.Equal(t, "lamp", box.Query())
	require.Len(t, last, 1)

	box.Clear()
	assert.Equal(t, "", box.Query())
	assert.Equal(t, 1, cleared)

	box.Type("  ")
	assert.Equal(t, "  ", box.Query())
	assert.Equal(t, 2, cleared)
}

func indexOf(items []product, target product) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}
