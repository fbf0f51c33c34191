package greenery

import (
	"context"

	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

var textures = []string{"Sandy loam", "Clay loam", "Loam", "Silty clay"}

// Simulator draws a soil probe reading uniformly within typical campus
// ranges.
type Simulator struct {
	noise signal.Noise
}

func NewSimulator(noise signal.Noise) *Simulator {
	return &Simulator{noise: noise}
}

func (s *Simulator) Soil(context.Context, string) (Soil, error) {
	return Soil{
		Readings: signal.Sample{
			PH:            s.noise.Uniform(5.8, 7.8),
			Moisture:      s.noise.Uniform(30, 75),
			Nitrogen:      s.noise.Uniform(15, 110),
			Phosphorus:    s.noise.Uniform(10, 60),
			Potassium:     s.noise.Uniform(80, 300),
			OrganicMatter: s.noise.Uniform(0.5, 4.5),
			Salinity:      s.noise.Uniform(0.2, 1.8),
		},
		Texture: textures[s.noise.Intn(len(textures))],
	}, nil
}
