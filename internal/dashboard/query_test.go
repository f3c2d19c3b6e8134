package dashboard

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegoals/internal/core"
)

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection(url.Values{"category": {"health"}, "goal": {"5"}})
	require.NoError(t, err)
	assert.Equal(t, core.Selection{Category: core.Health, GoalID: "5"}, sel)

	sel, err = ParseSelection(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, core.Selection{}, sel)

	sel, err = ParseSelection(url.Values{"category": {"hobby"}, "goal": {"2"}})
	assert.ErrorIs(t, err, core.ErrUnknownCategory)
	assert.Equal(t, core.Selection{GoalID: "2"}, sel)
}

func TestHref(t *testing.T) {
	assert.Equal(t, "/", Href("/", core.Selection{}))
	assert.Equal(t, "/?category=finance", Href("/", core.Selection{Category: core.Finance}))
	assert.Equal(t, "/?category=career&goal=1", Href("/", core.Selection{Category: core.Career, GoalID: "1"}))
}

func TestRenderHelpers(t *testing.T) {
	assert.Contains(t, string(Icon("heart", 28)), `width="28"`)
	assert.Equal(t, "", string(Icon("unknown", 10)))
	assert.Contains(t, string(ProgressBar(43)), `width: 43%`)
	assert.Contains(t, string(ProgressBar(140)), `width: 100%`)

	b := string(Badge("<b>65%</b>", "education"))
	assert.True(t, strings.Contains(b, "bg-education"))
	assert.NotContains(t, b, "<b>")
}
