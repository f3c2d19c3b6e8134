package dashboard

import (
	"net/url"
	"strings"

	"lifegoals/internal/core"
)

// Query parameter names carrying the selection.
const (
	ParamCategory = "category"
	ParamGoal     = "goal"
)

// ParseSelection reads a selection from query values. An unknown category
// is reported through err while the rest of the selection is still returned.
func ParseSelection(q url.Values) (core.Selection, error) {
	sel := core.Selection{GoalID: strings.TrimSpace(q.Get(ParamGoal))}
	raw := strings.TrimSpace(q.Get(ParamCategory))
	if raw == "" {
		return sel, nil
	}
	c, err := core.ParseCategory(raw)
	if err != nil {
		return sel, err
	}
	sel.Category = c
	return sel, nil
}

// Query encodes sel as query values. Empty fields are omitted.
func Query(sel core.Selection) url.Values {
	q := url.Values{}
	if sel.HasCategory() {
		q.Set(ParamCategory, sel.Category.String())
	}
	if sel.GoalID != "" {
		q.Set(ParamGoal, sel.GoalID)
	}
	return q
}

// Href returns the link path for sel relative to base.
func Href(base string, sel core.Selection) string {
	if enc := Query(sel).Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}
