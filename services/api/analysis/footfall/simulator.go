package footfall

import (
	"context"
	"math"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

var directions = []string{"North-South", "East-West", "Converging", "Diverging"}

// Simulator draws flow as capacity x period multiplier with 10% Gaussian
// jitter, floored at zero.
type Simulator struct {
	noise signal.Noise
}

func NewSimulator(noise signal.Noise) *Simulator {
	return &Simulator{noise: noise}
}

func (s *Simulator) Observe(_ context.Context, zone registry.FootfallZone, period Period) (Observation, error) {
	base := float64(zone.CapacityPPH) * period.Multiplier
	flow := int(math.Max(0, base+s.noise.Normal(0, base*0.1)))
	return Observation{
		CurrentPPH: flow,
		Direction:  directions[s.noise.Intn(len(directions))],
	}, nil
}
