package goals

import (
	"context"

	"lifegoals/internal/core"
)

// Ports for outbound adapters.
type (
	// Lister returns the complete goal list in display order.
	Lister interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
	}

	// Pinger reports whether a goal source is reachable. Adapters that have
	// nothing to check do not implement it.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
