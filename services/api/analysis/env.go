package analysis

import (
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Env carries the collaborators every analyzer is constructed with.
type Env struct {
	Registry *registry.Registry
	Policy   registry.FallbackPolicy
	Clock    signal.Clock
	Log      logrus.FieldLogger
}

// Now reads the configured clock, defaulting to UTC wall time.
func (e Env) Now() time.Time {
	if e.Clock == nil {
		return signal.SystemClock()
	}
	return e.Clock()
}

// Logger never returns nil.
func (e Env) Logger() logrus.FieldLogger {
	if e.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return e.Log
}

// Fallback applies the policy to an unresolved identifier and logs the
// substitution when it is allowed.
func (e Env) Fallback(kind, id, substitute string) error {
	if err := e.Policy.Resolve(kind, id); err != nil {
		return err
	}
	e.Logger().WithFields(logrus.Fields{"kind": kind, "id": id, "substitute": substitute}).
		Warn("unknown identifier, using default profile")
	return nil
}

// Num formats a number without trailing zeros for messages.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
