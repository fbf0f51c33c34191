package analysis

// Rule is one condition -> messages entry of a recommendation table. A nil
// When always fires.
type Rule[C any] struct {
	When func(C) bool
	Say  func(C) []string
}

// Recommend evaluates rules top to bottom. Every rule whose condition holds
// contributes its messages; when none fire the result is just fallback.
func Recommend[C any](ctx C, rules []Rule[C], fallback string) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.When != nil && !r.When(ctx) {
			continue
		}
		out = append(out, r.Say(ctx)...)
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}

// Line adapts a single-message function to Rule.Say.
func Line[C any](f func(C) string) func(C) []string {
	return func(c C) []string { return []string{f(c)} }
}
