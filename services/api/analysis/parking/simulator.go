package parking

import (
	"context"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Simulator draws occupancy around the peak or off-peak base rate with 5%
// Gaussian jitter.
type Simulator struct {
	noise signal.Noise
}

func NewSimulator(noise signal.Noise) *Simulator {
	return &Simulator{noise: noise}
}

func (s *Simulator) Occupied(_ context.Context, lot registry.ParkingLot, at time.Time) (int, error) {
	base := offPeakRate
	if IsPeak(at) {
		base = peakRate
	}
	occ := int(float64(lot.Capacity) * (base + s.noise.Normal(0, 0.05)))
	return max(0, min(lot.Capacity, occ)), nil
}
