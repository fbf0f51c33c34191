package waste

import (
	"context"
	"math"
	"time"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

// Simulator scales the area baseline by a weekend factor and 8% Gaussian
// day-to-day variation.
type Simulator struct {
	noise signal.Noise
}

func NewSimulator(noise signal.Noise) *Simulator {
	return &Simulator{noise: noise}
}

func (s *Simulator) Daily(_ context.Context, area registry.WasteArea, start time.Time, days int) ([]Day, error) {
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		factor := 1.0
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			factor = WeekendFactor
		}
		total := area.DailyKG * factor * (1 + s.noise.Normal(0, 0.08))
		out = append(out, Day{Date: d, TotalKg: math.Max(0, total)})
	}
	return out, nil
}
