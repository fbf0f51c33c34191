package campus

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

// optionReader pulls typed values out of string options and remembers the
// first parse failure and every key it was asked for.
type optionReader struct {
	raw  map[string]string
	seen map[string]bool
	err  error
}

func newOptionReader(raw map[string]string) *optionReader {
	return &optionReader{raw: raw, seen: make(map[string]bool, len(raw))}
}

func (r *optionReader) str(key string) string {
	r.seen[key] = true
	return strings.TrimSpace(r.raw[key])
}

func (r *optionReader) int(key string) int {
	v := r.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil && r.err == nil {
		r.err = analysis.Invalid(key, v, "must be an integer")
	}
	return n
}

func (r *optionReader) float(key string) float64 {
	v := r.str(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && r.err == nil {
		r.err = analysis.Invalid(key, v, "must be a number")
	}
	return f
}

func (r *optionReader) time(key string) time.Time {
	v := r.str(key)
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil && r.err == nil {
		r.err = analysis.Invalid(key, v, "must be an RFC 3339 timestamp")
	}
	return t
}

// done reports the first parse failure, then any option the domain does not
// understand.
func (r *optionReader) done() error {
	if r.err != nil {
		return r.err
	}
	var unknown []string
	for k := range r.raw {
		if !r.seen[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return analysis.Invalid(unknown[0], r.raw[unknown[0]], "is not an option for this domain")
	}
	return nil
}
