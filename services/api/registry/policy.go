package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownZone is returned for identifiers missing from the registry when
// the strict policy is active.
var ErrUnknownZone = errors.New("unknown zone")

// FallbackPolicy decides what an analyzer does with an identifier it cannot
// resolve.
type FallbackPolicy string

const (
	// FallbackDefault substitutes the domain's default profile and marks the
	// report with profile_fallback.
	FallbackDefault FallbackPolicy = "default"
	// FallbackStrict rejects the call with ErrUnknownZone.
	FallbackStrict FallbackPolicy = "strict"
)

// ParsePolicy parses a policy name; empty means FallbackDefault.
func ParsePolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackDefault:
		return FallbackDefault, nil
	case FallbackStrict:
		return FallbackStrict, nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q", s)
	}
}

// Resolve is called after a failed lookup. It returns nil when the caller may
// substitute its default profile.
func (p FallbackPolicy) Resolve(kind, id string) error {
	if p == FallbackStrict {
		return fmt.Errorf("%w: %s %q", ErrUnknownZone, kind, id)
	}
	return nil
}
