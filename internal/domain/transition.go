package domain

import (
	"fmt"

	"github.com/HadiRehman/NLSA-USA/internal/optional"
)

// ValidateTransition checks a requested status change against the stored
// player. Moving into Approved requires every required stat to resolve from
// the incoming payload or, failing that, the stored stats.
func ValidateTransition(existing *Player, status optional.Value[Status], incoming StatsPatch) error {
	to, ok := status.Get()
	if !ok {
		return nil
	}
	if !to.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("invalid status %q", to)}
	}
	if existing == nil || to == existing.Status || to != StatusApproved {
		return nil
	}

	var missing []string
	for _, f := range RequiredStats {
		if _, ok := resolveStat(existing.Stats, incoming, f); !ok {
			missing = append(missing, string(f))
		}
	}
	return missingFields("missing required stats for approval", missing)
}

// resolveStat prefers a supplied incoming value, explicit null included.
func resolveStat(stored Stats, incoming StatsPatch, f StatField) (StatValue, bool) {
	in := incoming.Get(f)
	if in.Present() {
		v, ok := in.Get()
		if !ok || v.Blank() {
			return "", false
		}
		return v, true
	}
	return stored.Lookup(f)
}

// Transition is a status change produced by an upsert.
type Transition struct {
	From Status
	To   Status
}

// Changed reports whether the payload moves the player to a different status.
func (t Transition) Changed() bool {
	return t.To != "" && t.From != t.To
}

// TransitionFor derives the transition an upsert makes; To is empty when the
// payload carries no status.
func TransitionFor(existing *Player, status optional.Value[Status]) Transition {
	var t Transition
	if existing != nil {
		t.From = existing.Status
	}
	if s, ok := status.Get(); ok {
		t.To = s
	}
	return t
}
