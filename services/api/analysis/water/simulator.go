package water

import (
	"context"
	"math"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Simulator draws readings around each parameter's baseline. Degraded zones
// get turbidity and TDS excursions well past their limits.
type Simulator struct {
	params []registry.WaterParameter
	noise  signal.Noise
}

func NewSimulator(params []registry.WaterParameter, noise signal.Noise) *Simulator {
	return &Simulator{params: params, noise: noise}
}

func (s *Simulator) Readings(_ context.Context, zone registry.WaterZone) (signal.Sample, error) {
	out := make(signal.Sample, len(s.params))
	for _, p := range s.params {
		v := s.noise.Normal(p.Mean, p.StdDev)
		if p.Absolute {
			v = math.Abs(v)
		}
		out[p.Name] = v
	}

	if zone.Degraded {
		out["turbidity_ntu"] = s.noise.Uniform(5, 12)
		out["tds_ppm"] = s.noise.Uniform(600, 900)
	}
	return out, nil
}
