package core

import (
	"fmt"
	"strings"
)

// Category is the closed set of goal categories. The zero value means
// "no category" and is only meaningful inside a Selection.
type Category uint8

const (
	Career Category = iota + 1
	Health
	Education
	Finance
)

// CategoryConfig is the display configuration carried by each category.
type CategoryConfig struct {
	Key   string // query/storage key, e.g. "career"
	Name  string // default display name
	Icon  string // icon identifier understood by the icon renderer
	Color string // colour token suffix, e.g. "career" for bg-career
}

// categoryConfigs is indexed by Category; index 0 is the empty category.
var categoryConfigs = [...]CategoryConfig{
	Career:    {Key: "career", Name: "Career", Icon: "briefcase", Color: "career"},
	Health:    {Key: "health", Name: "Health", Icon: "heart", Color: "health"},
	Education: {Key: "education", Name: "Education", Icon: "graduation-cap", Color: "education"},
	Finance:   {Key: "finance", Name: "Finance", Icon: "trending-up", Color: "finance"},
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Career, Health, Education, Finance}
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	return c >= Career && int(c) < len(categoryConfigs)
}

// Config returns the display configuration of c. Invalid categories yield
// the zero config.
func (c Category) Config() CategoryConfig {
	if !c.IsValid() {
		return CategoryConfig{}
	}
	return categoryConfigs[c]
}

// String implements fmt.Stringer
func (c Category) String() string {
	return c.Config().Key
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory maps a key such as "health" to its Category. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if categoryConfigs[c].Key == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
